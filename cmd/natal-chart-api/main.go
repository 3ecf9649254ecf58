package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ringsaturn/tzf"

	httpapi "github.com/astrilabs/natal-chart-api/internal/api/http"
	"github.com/astrilabs/natal-chart-api/internal/chart"
	"github.com/astrilabs/natal-chart-api/internal/config"
	"github.com/astrilabs/natal-chart-api/internal/ephemeris"
	"github.com/astrilabs/natal-chart-api/internal/geo"
	"github.com/astrilabs/natal-chart-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Interpretation store: embedded SQLite, seeded out-of-band.
	interpStore, err := store.OpenSQLite(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open interpretation store: %v", err)
	}
	defer interpStore.Close()

	// Geocoder selection: GeoNames when its credential is present, else
	// Google, else none (coordinate-mode requests only).
	geocoder, err := buildGeocoder(cfg)
	if err != nil {
		log.Fatalf("failed to set up geocoder: %v", err)
	}
	if geocoder == nil {
		log.Println("INFO: no geocoding credential configured; city/nation requests will be rejected")
	}

	eph := ephemeris.New()
	defer eph.Close()

	service := chart.NewService(geocoder, eph, interpStore)

	app := fiber.New(fiber.Config{
		AppName:               "natal-chart-api",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "natal-chart-api",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func buildGeocoder(cfg *config.AppConfig) (chart.Geocoder, error) {
	if cfg.GeoNamesUsername != "" {
		client := &http.Client{Timeout: cfg.GeocodeTimeout}
		return geo.NewGeoNames(client, cfg.GeoNamesUsername), nil
	}

	if cfg.GoogleGeocodingAPIKey != "" {
		// The embedded timezone polygon index is expensive to build;
		// do it once at startup.
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			return nil, err
		}
		return geo.NewGoogle(cfg.GoogleGeocodingAPIKey, finder, cfg.GeocodeTimeout), nil
	}

	return nil, nil
}
