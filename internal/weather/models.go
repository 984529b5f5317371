package weather

import (
	"sort"

	"github.com/mysky/weather-backend/internal/common"
)

// PlaceCandidate is a single geocoding match for a free-text city query.
type PlaceCandidate struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	Region      string  `json:"region,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
}

// DisplayName builds the "name, region, country" label, skipping blank segments.
func DisplayName(name, region, country string) string {
	return common.JoinNonEmpty(", ", name, region, country)
}

// HourlyEntry is one normalized hour of forecast data. Units are the provider's
// native ones: °C, mm, km/h and degrees.
type HourlyEntry struct {
	Time          string  `json:"time"`
	Hour          int     `json:"hour"`
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feelsLike"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection float64 `json:"windDirection"`
}

// DailySummary is the provider's per-day aggregate for one calendar day.
type DailySummary struct {
	Date             string  `json:"date"`
	TempMax          float64 `json:"tempMax"`
	TempMin          float64 `json:"tempMin"`
	FeelsLikeMax     float64 `json:"feelsLikeMax"`
	FeelsLikeMin     float64 `json:"feelsLikeMin"`
	PrecipitationSum float64 `json:"precipitationSum"`
	WindSpeedMax     float64 `json:"windSpeedMax"`
	WindDirection    float64 `json:"windDirection"`
	WeatherCode      *int    `json:"weatherCode,omitempty"`
}

// CurrentWeather is the derived "right now" snapshot of a forecast.
type CurrentWeather struct {
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feelsLike"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection float64 `json:"windDirection"`
}

// ForecastResult is the day-keyed, view-ready forecast model. It is built once
// per fetch and replaced wholesale on refresh.
type ForecastResult struct {
	Current        CurrentWeather           `json:"current"`
	DailyForecasts map[string][]HourlyEntry `json:"dailyForecasts"`
	DailySummaries map[string]DailySummary  `json:"dailySummaries"`
	Timezone       string                   `json:"timezone"`
}

// DayKeys returns every day present in the hourly buckets or the daily
// summaries, sorted ascending. Day keys are YYYY-MM-DD strings, so string
// order is chronological order.
func (r ForecastResult) DayKeys() []string {
	seen := make(map[string]struct{}, len(r.DailyForecasts)+len(r.DailySummaries))
	keys := make([]string, 0, len(r.DailyForecasts)+len(r.DailySummaries))
	for k := range r.DailyForecasts {
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for k := range r.DailySummaries {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// AirQualitySample is the most recent hourly air-quality reading.
type AirQualitySample struct {
	Time        string  `json:"time"`
	EuropeanAQI float64 `json:"europeanAqi"`
	USAQI       float64 `json:"usAqi"`
	PM25        float64 `json:"pm25"`
	PM10        float64 `json:"pm10"`
}

// RawForecast is the undecoded forecast payload shape: parallel hourly and
// daily arrays plus the reported timezone. Fetchers decode into it and
// Normalize consumes it.
type RawForecast struct {
	Hourly   RawHourly `json:"hourly"`
	Daily    RawDaily  `json:"daily"`
	Timezone string    `json:"timezone"`
}

// RawHourly holds the hourly parallel arrays. Arrays may be shorter than Time;
// missing values normalize to zero.
type RawHourly struct {
	Time                []string  `json:"time"`
	Temperature         []float64 `json:"temperature_2m"`
	ApparentTemperature []float64 `json:"apparent_temperature"`
	Precipitation       []float64 `json:"precipitation"`
	WindSpeed           []float64 `json:"wind_speed_10m"`
	WindDirection       []float64 `json:"wind_direction_10m"`
}

// RawDaily holds the daily parallel arrays, keyed by provider date strings.
type RawDaily struct {
	Time                  []string  `json:"time"`
	WeatherCode           []int     `json:"weather_code"`
	TempMax               []float64 `json:"temperature_2m_max"`
	TempMin               []float64 `json:"temperature_2m_min"`
	FeelsLikeMax          []float64 `json:"apparent_temperature_max"`
	FeelsLikeMin          []float64 `json:"apparent_temperature_min"`
	PrecipitationSum      []float64 `json:"precipitation_sum"`
	WindSpeedMax          []float64 `json:"wind_speed_10m_max"`
	WindDirectionDominant []float64 `json:"wind_direction_10m_dominant"`
}
