package weather

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Report bundles everything the presentation layer needs for one location:
// the normalized forecast and, when available, the latest air-quality sample.
type Report struct {
	Forecast   ForecastResult    `json:"forecast"`
	AirQuality *AirQualitySample `json:"airQuality,omitempty"`
}

// Service orchestrates the fetchers and the normalization pipeline.
type Service struct {
	geocoder   Geocoder
	forecasts  ForecastFetcher
	airQuality AirQualityFetcher
	log        *zap.Logger
	now        func() time.Time
}

// NewService creates a new Service. A nil logger silences the service.
func NewService(geocoder Geocoder, forecasts ForecastFetcher, airQuality AirQualityFetcher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		geocoder:   geocoder,
		forecasts:  forecasts,
		airQuality: airQuality,
		log:        log,
		now:        time.Now,
	}
}

// WithClock overrides the reference clock used for normalization. It mutates
// the service without synchronization, so call it during construction, before
// the service is shared.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SearchCities resolves a city query to place candidates. A blank query
// returns an empty list without calling the geocoder.
func (s *Service) SearchCities(ctx context.Context, query string, count int) ([]PlaceCandidate, error) {
	if strings.TrimSpace(query) == "" {
		return []PlaceCandidate{}, nil
	}

	cities, err := s.geocoder.SearchCities(ctx, query, count)
	if err != nil {
		s.log.Error("city search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	s.log.Debug("city search completed",
		zap.String("query", query),
		zap.Int("results", len(cities)))
	return cities, nil
}

// GetReport fetches the forecast and air-quality data concurrently, waits for
// both, and normalizes the forecast. A transport failure of either fetch fails
// the whole report; a location without air-quality coverage yields a report
// with a nil sample.
func (s *Service) GetReport(ctx context.Context, lat, lon float64) (Report, error) {
	var (
		wg          sync.WaitGroup
		raw         RawForecast
		forecastErr error
		sample      *AirQualitySample
		airErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		raw, forecastErr = s.forecasts.FetchForecast(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		sample, airErr = s.airQuality.FetchAirQuality(ctx, lat, lon)
	}()
	wg.Wait()

	if forecastErr != nil {
		s.log.Error("forecast fetch failed",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(forecastErr))
		return Report{}, forecastErr
	}
	if airErr != nil {
		if !errors.Is(airErr, ErrNoData) {
			s.log.Error("air quality fetch failed",
				zap.Float64("lat", lat),
				zap.Float64("lon", lon),
				zap.Error(airErr))
			return Report{}, airErr
		}
		s.log.Debug("no air quality coverage",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon))
		sample = nil
	}

	result := Normalize(raw, s.now())
	s.log.Debug("forecast normalized",
		zap.Int("days", len(result.DailyForecasts)),
		zap.String("timezone", result.Timezone))

	return Report{Forecast: result, AirQuality: sample}, nil
}

// GetAirQuality fetches just the latest air-quality sample.
func (s *Service) GetAirQuality(ctx context.Context, lat, lon float64) (*AirQualitySample, error) {
	sample, err := s.airQuality.FetchAirQuality(ctx, lat, lon)
	if err != nil {
		if !errors.Is(err, ErrNoData) {
			s.log.Error("air quality fetch failed",
				zap.Float64("lat", lat),
				zap.Float64("lon", lon),
				zap.Error(err))
		}
		return nil, err
	}
	return sample, nil
}

// Now reports the service's reference clock. The API layer uses it so that
// hour-of-day classification follows the same clock as normalization.
func (s *Service) Now() time.Time {
	return s.now()
}
