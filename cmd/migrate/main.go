package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/videoflix/videoflix/internal/catalog"
	"github.com/videoflix/videoflix/internal/config"
)

func main() {
	var (
		migrationsPath = flag.String("migrations", "", "Path to migrations directory (defaults to MIGRATIONS_PATH)")
		status         = flag.Bool("status", false, "Show migration status only")
	)
	flag.Parse()

	cfg := config.Load()
	if *migrationsPath == "" {
		*migrationsPath = cfg.MigrationsPath
	}

	db, err := catalog.NewDB(cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	migrator := catalog.NewMigrator(db.Conn(), cfg.DB.Type)

	if !*status {
		fmt.Printf("Running migrations from %s...\n", *migrationsPath)
		if err := db.RunMigrations(*migrationsPath); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		fmt.Println("Migrations completed successfully!")
		return
	}

	if err := migrator.Initialize(); err != nil {
		log.Fatal("Failed to initialize migrator:", err)
	}

	applied, err := migrator.GetAppliedMigrations()
	if err != nil {
		log.Fatal("Failed to get applied migrations:", err)
	}

	migrations, err := migrator.LoadMigrations(*migrationsPath)
	if err != nil {
		log.Fatal("Failed to load migrations:", err)
	}

	fmt.Println("Migration Status:")
	fmt.Println("=================")
	for _, m := range migrations {
		state := "pending"
		if applied[m.Version] {
			state = "applied"
		}
		fmt.Printf("%s - %s [%s]\n", m.Version, m.Name, state)
	}
}
