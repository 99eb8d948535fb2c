package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"water-distribution-service/internal/adapters/repositories"
	"water-distribution-service/internal/config"
	"water-distribution-service/internal/platform/db"
)

// dbtool initializes and seeds the catalog against DATABASE_URL, for
// pointing ad-hoc environments at an external database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/catalog.json")
	initAndSeed(db, seedPath)
}

func initAndSeed(db *sql.DB, seedPath string) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	seeded, err := repositories.SeedFromJSON(db, seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete: vehicles=%d users=%d (fleet entries are served from memory at runtime)",
		len(seeded.Vehicles), len(seeded.Users))
}
