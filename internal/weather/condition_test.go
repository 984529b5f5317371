package weather

import "testing"

func TestFromWMOCodeKnownCodes(t *testing.T) {
	cases := []struct {
		code int
		tag  Condition
		desc string
	}{
		{0, ConditionClear, "Clear Sky"},
		{2, ConditionPartlyCloudy, "Partly Cloudy"},
		{45, ConditionFog, "Fog"},
		{51, ConditionLightDrizzle, "Light Drizzle"},
		{65, ConditionHeavyRain, "Heavy Rain"},
		{75, ConditionHeavySnow, "Heavy Snow"},
		{82, ConditionHeavyRainShower, "Heavy Rain Shower"},
		{95, ConditionThunderstorm, "Thunderstorm"},
		{96, ConditionThunderstormHail, "Thunderstorm with Hail"},
		{99, ConditionThunderstormHeavyHail, "Thunderstorm with Heavy Hail"},
	}
	for _, tc := range cases {
		got := FromWMOCode(tc.code)
		if got.Tag != tc.tag {
			t.Errorf("code %d: expected tag %q, got %q", tc.code, tc.tag, got.Tag)
		}
		if got.Description != tc.desc {
			t.Errorf("code %d: expected description %q, got %q", tc.code, tc.desc, got.Description)
		}
	}
}

// Every code in 0-99 without a table entry must classify as unknown with the
// "Unknown" description and the unknown icon.
func TestFromWMOCodeUnmappedCodes(t *testing.T) {
	for code := 0; code < 100; code++ {
		if _, ok := wmoConditions[code]; ok {
			continue
		}
		got := FromWMOCode(code)
		if got.Tag != ConditionUnknown {
			t.Errorf("code %d: expected unknown tag, got %q", code, got.Tag)
		}
		if got.Description != "Unknown" {
			t.Errorf("code %d: expected description \"Unknown\", got %q", code, got.Description)
		}
		if got.Icon != "unknown.png" {
			t.Errorf("code %d: expected unknown icon, got %q", code, got.Icon)
		}
	}
}

func TestFromReadingsPriorityOrder(t *testing.T) {
	cases := []struct {
		name   string
		temp   float64
		precip float64
		wind   float64
		hour   int
		tag    Condition
		desc   string
	}{
		{"heavy precip with strong wind", 20, 8, 35, 12, ConditionThunderstorm, "Thunderstorm"},
		{"heavy precip calm", 20, 8, 10, 12, ConditionHeavyRain, "Heavy Rain"},
		{"moderate precip", 20, 3, 10, 12, ConditionModerateRain, "Moderate Rain"},
		{"light precip", 20, 0.2, 10, 12, ConditionLightRain, "Light Rain"},
		{"very strong wind", 20, 0, 55, 12, ConditionWindy, "Very Windy"},
		{"strong wind", 20, 0, 35, 12, ConditionWindy, "Windy"},
		{"hot", 31, 0, 10, 12, ConditionHot, "Hot"},
		{"freezing", -1, 0, 10, 12, ConditionFreezing, "Freezing"},
		{"cold", 3, 0, 10, 12, ConditionCold, "Cold"},
		{"mild day", 18, 0, 10, 12, ConditionClear, "Clear"},
		{"mild night", 18, 0, 10, 23, ConditionClearNight, "Clear Night"},
		{"mild dawn boundary", 18, 0, 10, 6, ConditionClear, "Clear"},
		{"mild dusk boundary", 18, 0, 10, 20, ConditionClear, "Clear"},
		{"precipitation beats heat", 31, 8, 10, 12, ConditionHeavyRain, "Heavy Rain"},
		{"wind beats heat", 31, 0, 35, 12, ConditionWindy, "Windy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromReadings(tc.temp, tc.precip, tc.wind, tc.hour)
			if got.Tag != tc.tag {
				t.Fatalf("expected tag %q, got %q", tc.tag, got.Tag)
			}
			if got.Description != tc.desc {
				t.Fatalf("expected description %q, got %q", tc.desc, got.Description)
			}
		})
	}
}

func hourlySamples(temps, precips, winds []float64) []HourlyEntry {
	entries := make([]HourlyEntry, len(temps))
	for i := range temps {
		entries[i] = HourlyEntry{
			Temperature:   temps[i],
			Precipitation: precips[i],
			WindSpeed:     winds[i],
		}
	}
	return entries
}

func TestForDayEmptyInput(t *testing.T) {
	got := ForDay(nil)
	if got.Tag != ConditionUnknown {
		t.Fatalf("expected unknown for empty input, got %q", got.Tag)
	}
	if got.Description != "Unknown" {
		t.Fatalf("expected description \"Unknown\", got %q", got.Description)
	}
}

func TestForDayDominantCondition(t *testing.T) {
	mild := []float64{15, 15, 15, 15, 15}
	calm := []float64{10, 10, 10, 10, 10}

	cases := []struct {
		name    string
		temps   []float64
		precips []float64
		winds   []float64
		tag     Condition
		desc    string
	}{
		{
			// 100% rainy hours, 15mm total.
			"rain dominated heavy",
			mild, []float64{3, 3, 3, 3, 3}, calm,
			ConditionHeavyRain, "Heavy Rain",
		},
		{
			// 100% rainy hours, 6mm total.
			"rain dominated moderate",
			mild, []float64{1.2, 1.2, 1.2, 1.2, 1.2}, calm,
			ConditionModerateRain, "Moderate Rain",
		},
		{
			// 100% rainy hours, 2.5mm total.
			"rain dominated light",
			mild, []float64{0.5, 0.5, 0.5, 0.5, 0.5}, calm,
			ConditionLightRain, "Light Rain",
		},
		{
			// 40% rainy hours does not dominate; mild temp and calm wind
			// leave the rain share above 30%.
			"some rain is partly cloudy",
			mild, []float64{0, 0, 0, 8, 9}, calm,
			ConditionPartlyCloudy, "Partly Cloudy",
		},
		{
			// 20% rainy hours falls all the way through to clear.
			"little rain is clear",
			mild, []float64{0, 0, 0, 0, 9}, calm,
			ConditionClear, "Clear",
		},
		{
			"very windy",
			mild, []float64{0, 0, 0, 0, 0}, []float64{10, 10, 45, 10, 10},
			ConditionWindy, "Very Windy",
		},
		{
			"windy",
			mild, []float64{0, 0, 0, 0, 0}, []float64{10, 10, 30, 10, 10},
			ConditionWindy, "Windy",
		},
		{
			"hot day",
			[]float64{29, 29, 29, 29, 29}, []float64{0, 0, 0, 0, 0}, calm,
			ConditionHot, "Hot",
		},
		{
			"freezing day",
			[]float64{0, 0, 0, 0, 0}, []float64{0, 0, 0, 0, 0}, calm,
			ConditionFreezing, "Freezing",
		},
		{
			"cold day",
			[]float64{5, 5, 5, 5, 5}, []float64{0, 0, 0, 0, 0}, calm,
			ConditionCold, "Cold",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ForDay(hourlySamples(tc.temps, tc.precips, tc.winds))
			if got.Tag != tc.tag {
				t.Fatalf("expected tag %q, got %q", tc.tag, got.Tag)
			}
			if got.Description != tc.desc {
				t.Fatalf("expected description %q, got %q", tc.desc, got.Description)
			}
		})
	}
}

// Every tag the threshold classifiers can produce must carry a real
// description and a real icon.
func TestThresholdTagsHaveTableEntries(t *testing.T) {
	reachable := []Condition{
		ConditionThunderstorm,
		ConditionHeavyRain,
		ConditionModerateRain,
		ConditionLightRain,
		ConditionWindy,
		ConditionHot,
		ConditionFreezing,
		ConditionCold,
		ConditionClear,
		ConditionClearNight,
		ConditionPartlyCloudy,
	}
	for _, tag := range reachable {
		if tag.Description() == "Unknown" {
			t.Errorf("tag %q has no description entry", tag)
		}
		if tag.Icon() == "unknown.png" {
			t.Errorf("tag %q has no icon entry", tag)
		}
	}
}

// The icon table must cover every tag the WMO code table can emit.
func TestWMOTagsHaveIcons(t *testing.T) {
	for code, tag := range wmoConditions {
		if tag.Icon() == "unknown.png" {
			t.Errorf("code %d tag %q has no icon entry", code, tag)
		}
		if tag.Description() == "Unknown" {
			t.Errorf("code %d tag %q has no description entry", code, tag)
		}
	}
}
