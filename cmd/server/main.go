package main

import (
	"context"
	"log"
	"net/http"

	"github.com/videoflix/videoflix/internal/api"
	"github.com/videoflix/videoflix/internal/catalog"
	"github.com/videoflix/videoflix/internal/config"
	"github.com/videoflix/videoflix/internal/hls"
	"github.com/videoflix/videoflix/internal/storage"
)

func main() {
	cfg := config.Load()

	mediaStore, err := storage.NewLocalStorage(cfg.MediaRoot)
	if err != nil {
		log.Fatal("Failed to initialize media storage:", err)
	}

	hlsLibrary, err := hls.NewLibrary(cfg.HLSRoot)
	if err != nil {
		log.Fatal("Failed to initialize HLS library:", err)
	}

	db, err := catalog.NewDB(cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	log.Printf("Running database migrations from %s", cfg.MigrationsPath)
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	var remote *storage.S3Store
	if cfg.S3.Bucket != "" {
		remote, err = storage.NewS3Store(context.Background(), cfg.S3)
		if err != nil {
			log.Printf("Warning: failed to initialize S3 store: %v", err)
		}
	} else {
		log.Printf("No S3 bucket configured; bucket-hosted variants will not resolve")
	}

	app := &api.App{
		VideoRepo: catalog.NewVideoRepository(db),
		Media:     mediaStore,
		HLS:       hlsLibrary,
		Remote:    remote,
		BaseURL:   cfg.PublicBaseURL,
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Media root: %s", cfg.MediaRoot)
	log.Printf("HLS root: %s", cfg.HLSRoot)
	log.Printf("Database type: %s", cfg.DB.Type)
	if cfg.DB.Type == "postgres" {
		log.Printf("Database connection: %s@%s:%d/%s", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	} else {
		log.Printf("Database path: %s", cfg.DB.SQLitePath)
	}

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
