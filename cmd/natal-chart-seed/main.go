// Command natal-chart-seed populates the interpretation store with default
// rows: every planet-sign and planet-house pair plus aspect, shape, and
// distribution entries. Existing rows are kept, so re-running is safe.
// Intended to run once, out-of-band from the serving process.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/astrilabs/natal-chart-api/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	db, err := store.OpenSQLite(dsn)
	if err != nil {
		log.Fatalf("failed to open interpretation store: %v", err)
	}
	defer db.Close()

	n, err := store.Seed(context.Background(), db)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Printf("seed complete: %d interpretation keys ensured", n)
}
