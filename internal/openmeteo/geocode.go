package openmeteo

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/mysky/weather-backend/internal/weather"
)

// SearchCities resolves a city query against the geocoding API. A blank query
// returns an empty candidate list without issuing a request; count falls back
// to the configured default when not positive.
func (c *Client) SearchCities(ctx context.Context, query string, count int) ([]weather.PlaceCandidate, error) {
	if strings.TrimSpace(query) == "" {
		return []weather.PlaceCandidate{}, nil
	}
	if count <= 0 {
		count = c.cfg.SearchResultCount
	}

	values := url.Values{}
	values.Set("name", query)
	values.Set("count", strconv.Itoa(count))
	values.Set("language", "en")
	values.Set("format", "json")

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Admin1    string  `json:"admin1"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "city search", c.cfg.GeocodingURL, values, &payload); err != nil {
		return nil, err
	}

	cities := make([]weather.PlaceCandidate, 0, len(payload.Results))
	for _, r := range payload.Results {
		cities = append(cities, weather.PlaceCandidate{
			Name:        r.Name,
			Country:     r.Country,
			Region:      r.Admin1,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			DisplayName: weather.DisplayName(r.Name, r.Admin1, r.Country),
		})
	}
	return cities, nil
}
