package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mysky/weather-backend/internal/weather"
)

// Config holds the endpoint URLs and request parameters for the Open-Meteo
// APIs. All three endpoints are key-free.
type Config struct {
	GeocodingURL  string
	ForecastURL   string
	AirQualityURL string

	// SearchResultCount is the default number of geocoding candidates.
	SearchResultCount int
	// ForecastDays is the forecast horizon in days.
	ForecastDays int

	// Outbound rate limiting, in requests per second plus burst.
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns the production Open-Meteo endpoints and defaults.
func DefaultConfig() Config {
	return Config{
		GeocodingURL:      "https://geocoding-api.open-meteo.com/v1/search",
		ForecastURL:       "https://api.open-meteo.com/v1/forecast",
		AirQualityURL:     "https://air-quality-api.open-meteo.com/v1/air-quality",
		SearchResultCount: 5,
		ForecastDays:      16,
		RequestsPerSecond: 10,
		Burst:             5,
	}
}

// Client talks to the Open-Meteo geocoding, forecast and air-quality APIs.
// It implements weather.Geocoder, weather.ForecastFetcher and
// weather.AirQualityFetcher.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	circuit    *gobreaker.CircuitBreaker
	log        *zap.Logger
}

// NewClient creates a Client. A nil httpClient gets a 30s-timeout default and
// a nil logger silences the client.
func NewClient(cfg Config, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.SearchResultCount <= 0 {
		cfg.SearchResultCount = 5
	}
	if cfg.ForecastDays <= 0 {
		cfg.ForecastDays = 16
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "open-meteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		circuit:    cb,
		log:        log,
	}
}

// getJSON issues a single rate-limited GET through the circuit breaker and
// decodes the response body into out. There is no retry: a failed request
// fails the call.
func (c *Client) getJSON(ctx context.Context, op, baseURL string, values url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	u := fmt.Sprintf("%s?%s", baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.httpClient.Do(req)
		if execErr != nil {
			return nil, &weather.NetworkError{Op: op, Err: execErr}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, &weather.NetworkError{Op: op, StatusCode: resp.StatusCode}
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &weather.NetworkError{Op: op, Err: err}
		}
		c.log.Error("request failed", zap.String("op", op), zap.Error(err))
		return err
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error("response decode failed", zap.String("op", op), zap.Error(err))
		return &weather.APIResponseError{Op: op, Err: err}
	}

	c.log.Debug("request completed",
		zap.String("op", op),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
