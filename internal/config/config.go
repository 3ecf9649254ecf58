package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string

	// DatabaseURL is the SQLite DSN for the interpretation store. Empty
	// selects the embedded default database file.
	DatabaseURL string

	// Geocoding credentials. GeoNames is preferred when both are set;
	// neither set restricts the API to direct-coordinate requests.
	GeoNamesUsername      string
	GoogleGeocodingAPIKey string

	// GeocodeTimeout bounds the external geocoding call, the pipeline's
	// only network suspension point.
	GeocodeTimeout time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:                  getenvDefault("PORT", "8080"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		GeoNamesUsername:      os.Getenv("GEONAMES_USERNAME"),
		GoogleGeocodingAPIKey: os.Getenv("GOOGLE_GEOCODING_API_KEY"),
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	}

	timeoutStr := getenvDefault("GEOCODE_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODE_TIMEOUT: %w", err)
	}
	cfg.GeocodeTimeout = timeout

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
