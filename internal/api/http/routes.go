package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mysky/weather-backend/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/cities/search", func(c *fiber.Ctx) error {
		var req searchQuery
		req.Query = c.Query("q")
		req.Count = c.QueryInt("count", 0)

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cities, err := service.SearchCities(c.Context(), req.Query, req.Count)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(fiber.Map{"results": cities})
	})

	v1.Get("/weather/report", func(c *fiber.Ctx) error {
		coords, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.GetReport(c.Context(), coords.Lat, coords.Lon)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(buildReportView(report, service.Now()))
	})

	v1.Get("/air-quality", func(c *fiber.Ctx) error {
		coords, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sample, err := service.GetAirQuality(c.Context(), coords.Lat, coords.Lon)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(sample)
	})
}

// searchQuery holds query parameters for the city search endpoint.
type searchQuery struct {
	Query string `validate:"required"`
	Count int    `validate:"omitempty,min=1,max=10"`
}

// coordsQuery holds the coordinate pair shared by the forecast and
// air-quality endpoints.
type coordsQuery struct {
	Lat float64 `validate:"min=-90,max=90"`
	Lon float64 `validate:"min=-180,max=180"`
}

func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	var q coordsQuery

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errors.New("invalid lat; expected a decimal degree value")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, errors.New("invalid lon; expected a decimal degree value")
	}

	q.Lat = lat
	q.Lon = lon
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// dayView is one calendar day of the report: the provider summary, the
// dominant condition and the remaining hourly entries.
type dayView struct {
	Date      string                  `json:"date"`
	Summary   weather.DailySummary    `json:"summary"`
	Condition weather.ConditionResult `json:"condition"`
	Hours     []weather.HourlyEntry   `json:"hours"`
}

// buildReportView flattens a report into the day-ordered shape the
// presentation layer renders. Days classify by their weather code when the
// provider sent one, otherwise by the dominant condition over their hours.
func buildReportView(report weather.Report, now time.Time) fiber.Map {
	forecast := report.Forecast

	keys := forecast.DayKeys()
	days := make([]dayView, 0, len(keys))
	for _, date := range keys {
		hours := forecast.DailyForecasts[date]
		summary, hasSummary := forecast.DailySummaries[date]

		var cond weather.ConditionResult
		if hasSummary && summary.WeatherCode != nil {
			cond = weather.FromWMOCode(*summary.WeatherCode)
		} else {
			cond = weather.ForDay(hours)
		}

		days = append(days, dayView{
			Date:      date,
			Summary:   summary,
			Condition: cond,
			Hours:     hours,
		})
	}

	current := forecast.Current
	currentCondition := weather.FromReadings(
		current.Temperature,
		current.Precipitation,
		current.WindSpeed,
		now.Hour(),
	)

	view := fiber.Map{
		"current":          current,
		"currentCondition": currentCondition,
		"days":             days,
		"timezone":         forecast.Timezone,
	}
	if report.AirQuality != nil {
		view["airQuality"] = report.AirQuality
	}
	return view
}

func mapServiceError(err error) error {
	if errors.Is(err, weather.ErrNoData) {
		return fiber.NewError(fiber.StatusNotFound, "no data for requested location")
	}

	var netErr *weather.NetworkError
	if errors.As(err, &netErr) {
		return fiber.NewError(fiber.StatusBadGateway, "upstream weather service unavailable")
	}

	var respErr *weather.APIResponseError
	if errors.As(err, &respErr) {
		return fiber.NewError(fiber.StatusBadGateway, "unexpected upstream response")
	}

	return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
}
