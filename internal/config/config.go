package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// CacheTTLs holds the per-data-type expiry windows for the HTTP cache.
type CacheTTLs struct {
	Forecast      time.Duration
	Geocoding     time.Duration
	AirQuality    time.Duration
	SweepInterval time.Duration
}

type AppConfig struct {
	GeocodingURL  string
	ForecastURL   string
	AirQualityURL string

	// HTTPTimeout is the single outbound request timeout.
	HTTPTimeout time.Duration

	SearchResultCount int
	ForecastDays      int

	RequestsPerSecond float64
	RequestBurst      int

	Cache CacheTTLs

	Port  string
	Debug bool
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.GeocodingURL = getenvDefault("GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search")
	cfg.ForecastURL = getenvDefault("FORECAST_URL", "https://api.open-meteo.com/v1/forecast")
	cfg.AirQualityURL = getenvDefault("AIR_QUALITY_URL", "https://air-quality-api.open-meteo.com/v1/air-quality")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.SearchResultCount = getenvInt("SEARCH_RESULT_COUNT", 5)
	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 16)

	cfg.RequestsPerSecond = getenvFloat("RATE_LIMIT_RPS", 10)
	cfg.RequestBurst = getenvInt("RATE_LIMIT_BURST", 5)

	if cfg.Cache.Forecast, err = getenvDuration("CACHE_FORECAST_TTL", "1h"); err != nil {
		return nil, err
	}
	if cfg.Cache.Geocoding, err = getenvDuration("CACHE_GEOCODING_TTL", "24h"); err != nil {
		return nil, err
	}
	if cfg.Cache.AirQuality, err = getenvDuration("CACHE_AIR_QUALITY_TTL", "1h"); err != nil {
		return nil, err
	}
	if cfg.Cache.SweepInterval, err = getenvDuration("CACHE_SWEEP_INTERVAL", "10m"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.Debug = getenvBool("DEBUG", false)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
