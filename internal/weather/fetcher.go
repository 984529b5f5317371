package weather

import "context"

// Geocoder resolves a free-text city query to ranked place candidates.
type Geocoder interface {
	SearchCities(ctx context.Context, query string, count int) ([]PlaceCandidate, error)
}

// ForecastFetcher fetches the raw hourly and daily forecast arrays for a
// coordinate pair.
type ForecastFetcher interface {
	FetchForecast(ctx context.Context, lat, lon float64) (RawForecast, error)
}

// AirQualityFetcher fetches the most recent air-quality sample for a
// coordinate pair. Returns ErrNoData when the provider has no samples.
type AirQualityFetcher interface {
	FetchAirQuality(ctx context.Context, lat, lon float64) (*AirQualitySample, error)
}
