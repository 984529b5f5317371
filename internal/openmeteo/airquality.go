package openmeteo

import (
	"context"
	"net/url"
	"strings"

	"github.com/mysky/weather-backend/internal/weather"
)

var airQualityFields = []string{
	"european_aqi",
	"us_aqi",
	"pm2_5",
	"pm10",
}

// FetchAirQuality fetches the hourly air-quality series and returns the most
// recent sample, which is the first hour the provider reports. An empty series
// yields weather.ErrNoData.
func (c *Client) FetchAirQuality(ctx context.Context, lat, lon float64) (*weather.AirQualitySample, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(lat))
	values.Set("longitude", formatCoord(lon))
	values.Set("hourly", strings.Join(airQualityFields, ","))
	values.Set("timezone", "auto")

	var payload struct {
		Hourly struct {
			Time        []string  `json:"time"`
			EuropeanAQI []float64 `json:"european_aqi"`
			USAQI       []float64 `json:"us_aqi"`
			PM25        []float64 `json:"pm2_5"`
			PM10        []float64 `json:"pm10"`
		} `json:"hourly"`
	}
	if err := c.getJSON(ctx, "air quality", c.cfg.AirQualityURL, values, &payload); err != nil {
		return nil, err
	}

	if len(payload.Hourly.Time) == 0 {
		return nil, weather.ErrNoData
	}

	return &weather.AirQualitySample{
		Time:        payload.Hourly.Time[0],
		EuropeanAQI: firstOrZero(payload.Hourly.EuropeanAQI),
		USAQI:       firstOrZero(payload.Hourly.USAQI),
		PM25:        firstOrZero(payload.Hourly.PM25),
		PM10:        firstOrZero(payload.Hourly.PM10),
	}, nil
}

func firstOrZero(values []float64) float64 {
	if len(values) > 0 {
		return values[0]
	}
	return 0
}
