package main

import (
	"log"

	"github.com/macrolog/backend/config"
	"github.com/macrolog/backend/internal/database"
)

// Applies the schema without starting the server. The server also
// migrates at startup; this exists for deploy pipelines that migrate
// before rolling instances.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations applied")
}
