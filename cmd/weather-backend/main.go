package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/mysky/weather-backend/internal/api/http"
	"github.com/mysky/weather-backend/internal/config"
	"github.com/mysky/weather-backend/internal/httpcache"
	"github.com/mysky/weather-backend/internal/openmeteo"
	"github.com/mysky/weather-backend/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := buildLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Response caching sits below the outbound HTTP client, keyed by full
	// request URL with per-endpoint expiry.
	policy, err := httpcache.EndpointTTLs(map[string]time.Duration{
		cfg.GeocodingURL:  cfg.Cache.Geocoding,
		cfg.ForecastURL:   cfg.Cache.Forecast,
		cfg.AirQualityURL: cfg.Cache.AirQuality,
	})
	if err != nil {
		logger.Fatal("invalid cache configuration", zap.Error(err))
	}
	cache := httpcache.New(http.DefaultTransport, policy, logger.Named("httpcache"))
	if err := cache.StartSweeper(cfg.Cache.SweepInterval); err != nil {
		logger.Fatal("failed to start cache sweeper", zap.Error(err))
	}
	defer cache.StopSweeper()

	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: cache,
	}

	client := openmeteo.NewClient(openmeteo.Config{
		GeocodingURL:      cfg.GeocodingURL,
		ForecastURL:       cfg.ForecastURL,
		AirQualityURL:     cfg.AirQualityURL,
		SearchResultCount: cfg.SearchResultCount,
		ForecastDays:      cfg.ForecastDays,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.RequestBurst,
	}, httpClient, logger.Named("openmeteo"))

	service := weather.NewService(client, client, client, logger.Named("weather"))

	app := fiber.New(fiber.Config{
		AppName:               "weather-backend",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
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

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-backend",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
