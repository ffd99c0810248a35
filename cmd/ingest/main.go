// Command ingest registers transcoder output with the catalog: it copies a
// deposited variant file under the media root (or records a remote URL) and
// inserts the corresponding video_files row.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/videoflix/videoflix/internal/catalog"
	"github.com/videoflix/videoflix/internal/config"
	"github.com/videoflix/videoflix/internal/models"
	"github.com/videoflix/videoflix/internal/storage"
)

func main() {
	var (
		videoID     = flag.Int64("video", 0, "Existing video id (0 creates a new video)")
		title       = flag.String("title", "", "Title for a newly created video")
		description = flag.String("description", "", "Description for a newly created video")
		quality     = flag.String("quality", models.Quality720p, "Quality label for the variant")
		file        = flag.String("file", "", "Path to the deposited variant file")
		remoteURL   = flag.String("url", "", "Remote location (http(s):// or s3://) instead of a local file")
	)
	flag.Parse()

	if *file == "" && *remoteURL == "" {
		log.Fatal("Either -file or -url is required")
	}

	cfg := config.Load()

	db, err := catalog.NewDB(cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	repo := catalog.NewVideoRepository(db)

	id := *videoID
	if id == 0 {
		if *title == "" {
			log.Fatal("-title is required when creating a new video")
		}
		id, err = repo.InsertVideo(*title, *description)
		if err != nil {
			log.Fatal("Failed to create video:", err)
		}
		fmt.Printf("Created video %d\n", id)
	} else {
		if _, err := repo.FindVideo(id); err != nil {
			log.Fatalf("Video %d not found: %v", id, err)
		}
	}

	variant := &models.VideoFile{
		VideoID:   id,
		Quality:   *quality,
		Processed: true,
	}

	if *remoteURL != "" {
		variant.Location = *remoteURL
	} else {
		mediaStore, err := storage.NewLocalStorage(cfg.MediaRoot)
		if err != nil {
			log.Fatal("Failed to initialize media storage:", err)
		}

		src, err := os.Open(*file)
		if err != nil {
			log.Fatal("Failed to open variant file:", err)
		}
		defer src.Close()

		name, err := mediaStore.SaveFile(src, *file)
		if err != nil {
			log.Fatal("Failed to store variant file:", err)
		}

		size, err := mediaStore.FileSize(name)
		if err != nil {
			log.Fatal("Failed to stat stored file:", err)
		}

		variant.Location = name
		variant.FileSize = size
	}

	if err := repo.InsertVariant(variant); err != nil {
		log.Fatal("Failed to register variant:", err)
	}

	fmt.Printf("Registered %s variant for video %d (%s)\n", variant.Quality, id, variant.Location)
}
