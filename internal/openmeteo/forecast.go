package openmeteo

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/zsefvlol/timezonemapper"

	"github.com/mysky/weather-backend/internal/weather"
)

var hourlyFields = []string{
	"temperature_2m",
	"apparent_temperature",
	"precipitation",
	"wind_speed_10m",
	"wind_direction_10m",
}

var dailyFields = []string{
	"weather_code",
	"temperature_2m_max",
	"temperature_2m_min",
	"apparent_temperature_max",
	"apparent_temperature_min",
	"precipitation_sum",
	"wind_speed_10m_max",
	"wind_direction_10m_dominant",
}

// FetchForecast fetches the raw hourly and daily forecast arrays for the
// configured horizon. The provider resolves the timezone itself; when it
// reports none, the timezone is derived from the coordinates.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64) (weather.RawForecast, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(lat))
	values.Set("longitude", formatCoord(lon))
	values.Set("hourly", strings.Join(hourlyFields, ","))
	values.Set("daily", strings.Join(dailyFields, ","))
	values.Set("timezone", "auto")
	values.Set("forecast_days", strconv.Itoa(c.cfg.ForecastDays))

	var raw weather.RawForecast
	if err := c.getJSON(ctx, "weather forecast", c.cfg.ForecastURL, values, &raw); err != nil {
		return weather.RawForecast{}, err
	}

	if raw.Timezone == "" {
		raw.Timezone = timezonemapper.LatLngToTimezoneString(lat, lon)
	}
	return raw, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
