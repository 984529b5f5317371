package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mysky/weather-backend/internal/weather"
)

type stubGeocoder struct {
	result []weather.PlaceCandidate
	err    error
}

func (s *stubGeocoder) SearchCities(ctx context.Context, query string, count int) ([]weather.PlaceCandidate, error) {
	return s.result, s.err
}

type stubForecasts struct {
	raw weather.RawForecast
	err error
}

func (s *stubForecasts) FetchForecast(ctx context.Context, lat, lon float64) (weather.RawForecast, error) {
	return s.raw, s.err
}

type stubAirQuality struct {
	sample *weather.AirQualitySample
	err    error
}

func (s *stubAirQuality) FetchAirQuality(ctx context.Context, lat, lon float64) (*weather.AirQualitySample, error) {
	return s.sample, s.err
}

var fixedNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func testApp(geo *stubGeocoder, forecasts *stubForecasts, air *stubAirQuality) *fiber.App {
	app := fiber.New()
	svc := weather.NewService(geo, forecasts, air, nil).
		WithClock(func() time.Time { return fixedNow })
	RegisterRoutes(app, svc)
	return app
}

func forecastFixture() weather.RawForecast {
	return weather.RawForecast{
		Hourly: weather.RawHourly{
			Time:                []string{"2024-01-15T13:00", "2024-01-15T14:00"},
			Temperature:         []float64{10, 11},
			ApparentTemperature: []float64{8, 9},
			Precipitation:       []float64{0, 0.2},
			WindSpeed:           []float64{5, 7},
			WindDirection:       []float64{180, 190},
		},
		Daily: weather.RawDaily{
			Time:                  []string{"2024-01-15"},
			WeatherCode:           []int{61},
			TempMax:               []float64{12},
			TempMin:               []float64{4},
			FeelsLikeMax:          []float64{10},
			FeelsLikeMin:          []float64{2},
			PrecipitationSum:      []float64{0.6},
			WindSpeedMax:          []float64{12},
			WindDirectionDominant: []float64{180},
		},
		Timezone: "Europe/Berlin",
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	app := testApp(&stubGeocoder{}, &stubForecasts{}, &stubAirQuality{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cities/search", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestSearchCountRange(t *testing.T) {
	app := testApp(&stubGeocoder{}, &stubForecasts{}, &stubAirQuality{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cities/search?q=berlin&count=50", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestSearchReturnsCandidates(t *testing.T) {
	geo := &stubGeocoder{result: []weather.PlaceCandidate{
		{Name: "Berlin", Country: "Germany", Region: "Berlin", Latitude: 52.52, Longitude: 13.41, DisplayName: "Berlin, Berlin, Germany"},
	}}
	app := testApp(geo, &stubForecasts{}, &stubAirQuality{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cities/search?q=berlin", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		Results []weather.PlaceCandidate `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0].DisplayName != "Berlin, Berlin, Germany" {
		t.Fatalf("unexpected results: %+v", body.Results)
	}
}

func TestReportRejectsInvalidCoordinates(t *testing.T) {
	app := testApp(&stubGeocoder{}, &stubForecasts{}, &stubAirQuality{})

	for _, target := range []string{
		"/api/v1/weather/report",
		"/api/v1/weather/report?lat=200&lon=13.41",
		"/api/v1/weather/report?lat=52.52&lon=nope",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestReportBuildsDayOrderedView(t *testing.T) {
	sample := &weather.AirQualitySample{Time: "2024-01-15T12:00", EuropeanAQI: 34}
	app := testApp(&stubGeocoder{}, &stubForecasts{raw: forecastFixture()}, &stubAirQuality{sample: sample})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/report?lat=52.52&lon=13.41", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		Current  weather.CurrentWeather `json:"current"`
		Timezone string                 `json:"timezone"`
		Days     []struct {
			Date      string                  `json:"date"`
			Condition weather.ConditionResult `json:"condition"`
			Hours     []weather.HourlyEntry   `json:"hours"`
		} `json:"days"`
		AirQuality *weather.AirQualitySample `json:"airQuality"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Timezone != "Europe/Berlin" {
		t.Errorf("expected timezone Europe/Berlin, got %q", body.Timezone)
	}
	if body.Current.Temperature != 10 {
		t.Errorf("expected current temperature from first hour, got %v", body.Current.Temperature)
	}
	if len(body.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(body.Days))
	}
	// Daily weather code 61 wins over the dominant-condition fallback.
	if body.Days[0].Condition.Tag != weather.ConditionLightRain {
		t.Errorf("expected light_rain from code 61, got %q", body.Days[0].Condition.Tag)
	}
	if len(body.Days[0].Hours) != 2 {
		t.Errorf("expected 2 hourly entries, got %d", len(body.Days[0].Hours))
	}
	if body.AirQuality == nil || body.AirQuality.EuropeanAQI != 34 {
		t.Errorf("expected air quality in view, got %+v", body.AirQuality)
	}
}

func TestReportUpstreamFailureMapsToBadGateway(t *testing.T) {
	app := testApp(&stubGeocoder{}, &stubForecasts{err: &weather.NetworkError{Op: "weather forecast", StatusCode: 503}}, &stubAirQuality{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/report?lat=52.52&lon=13.41", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
}

func TestAirQualityNotFound(t *testing.T) {
	app := testApp(&stubGeocoder{}, &stubForecasts{}, &stubAirQuality{err: weather.ErrNoData})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/air-quality?lat=52.52&lon=13.41", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
