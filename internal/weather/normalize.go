package weather

import (
	"time"
)

const dayKeyLayout = "2006-01-02"

// hourlyTimeLayouts covers the timestamp shapes the provider emits: RFC3339
// with an offset or trailing Z, and zone-less local time when the forecast is
// requested with an automatic timezone.
var hourlyTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

func parseHourlyTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range hourlyTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Normalize converts raw parallel forecast arrays into the day-keyed model.
// now is the reference instant: hours older than now minus one hour are
// dropped, and "today" for the current-weather derivation is now's date key.
// Normalize is a pure transform; it never fails on missing or short arrays
// (fields default to zero) and skips hourly indices whose timestamp cannot be
// parsed.
func Normalize(raw RawForecast, now time.Time) ForecastResult {
	cutoff := now.Add(-time.Hour)

	forecasts := make(map[string][]HourlyEntry)
	for i, stamp := range raw.Hourly.Time {
		t, err := parseHourlyTime(stamp)
		if err != nil {
			continue
		}
		if t.Before(cutoff) {
			// Already-elapsed hour.
			continue
		}

		key := t.Format(dayKeyLayout)
		forecasts[key] = append(forecasts[key], HourlyEntry{
			Time:          stamp,
			Hour:          t.Hour(),
			Temperature:   floatAt(raw.Hourly.Temperature, i),
			FeelsLike:     floatAt(raw.Hourly.ApparentTemperature, i),
			Precipitation: floatAt(raw.Hourly.Precipitation, i),
			WindSpeed:     floatAt(raw.Hourly.WindSpeed, i),
			WindDirection: floatAt(raw.Hourly.WindDirection, i),
		})
	}

	summaries := make(map[string]DailySummary, len(raw.Daily.Time))
	for j, date := range raw.Daily.Time {
		summary := DailySummary{
			Date:             date,
			TempMax:          floatAt(raw.Daily.TempMax, j),
			TempMin:          floatAt(raw.Daily.TempMin, j),
			FeelsLikeMax:     floatAt(raw.Daily.FeelsLikeMax, j),
			FeelsLikeMin:     floatAt(raw.Daily.FeelsLikeMin, j),
			PrecipitationSum: floatAt(raw.Daily.PrecipitationSum, j),
			WindSpeedMax:     floatAt(raw.Daily.WindSpeedMax, j),
			WindDirection:    floatAt(raw.Daily.WindDirectionDominant, j),
		}
		if j < len(raw.Daily.WeatherCode) {
			code := raw.Daily.WeatherCode[j]
			summary.WeatherCode = &code
		}
		summaries[date] = summary
	}

	timezone := raw.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	return ForecastResult{
		Current:        deriveCurrent(forecasts, summaries, now),
		DailyForecasts: forecasts,
		DailySummaries: summaries,
		Timezone:       timezone,
	}
}

// deriveCurrent picks the current-weather snapshot: the first remaining hourly
// entry of today, falling back to today's daily summary, else zeroes.
func deriveCurrent(forecasts map[string][]HourlyEntry, summaries map[string]DailySummary, now time.Time) CurrentWeather {
	today := now.Format(dayKeyLayout)

	if hours := forecasts[today]; len(hours) > 0 {
		h := hours[0]
		return CurrentWeather{
			Temperature:   h.Temperature,
			FeelsLike:     h.FeelsLike,
			Precipitation: h.Precipitation,
			WindSpeed:     h.WindSpeed,
			WindDirection: h.WindDirection,
		}
	}

	if s, ok := summaries[today]; ok {
		return CurrentWeather{
			Temperature:   s.TempMax,
			FeelsLike:     s.FeelsLikeMax,
			Precipitation: s.PrecipitationSum,
			WindSpeed:     s.WindSpeedMax,
			WindDirection: s.WindDirection,
		}
	}

	return CurrentWeather{}
}

func floatAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
