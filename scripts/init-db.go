package main

import (
	"fmt"
	"log"

	"pedebot/internal/config"
	"pedebot/internal/database"
	"pedebot/internal/migrations"
)

// Drops and reseeds the demo catalog. Destructive; development use only.
func main() {
	fmt.Println("Initializing database...")

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping and reseeding catalog tables...")
	if err := migrations.Reset(db); err != nil {
		log.Fatal("Failed to reset database:", err)
	}

	fmt.Println("Database initialized successfully!")
}
