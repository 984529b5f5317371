package weather

// Condition is a normalized weather-state tag drawn from a closed enumeration.
type Condition string

const (
	ConditionClear                 Condition = "clear"
	ConditionClearNight            Condition = "clear_night"
	ConditionMainlyClear           Condition = "mainly_clear"
	ConditionPartlyCloudy          Condition = "partly_cloudy"
	ConditionOvercast              Condition = "overcast"
	ConditionFog                   Condition = "fog"
	ConditionLightDrizzle          Condition = "light_drizzle"
	ConditionModerateDrizzle       Condition = "moderate_drizzle"
	ConditionDenseDrizzle          Condition = "dense_drizzle"
	ConditionLightFreezingDrizzle  Condition = "light_freezing_drizzle"
	ConditionDenseFreezingDrizzle  Condition = "dense_freezing_drizzle"
	ConditionLightRain             Condition = "light_rain"
	ConditionModerateRain          Condition = "moderate_rain"
	ConditionHeavyRain             Condition = "heavy_rain"
	ConditionLightFreezingRain     Condition = "light_freezing_rain"
	ConditionHeavyFreezingRain     Condition = "heavy_freezing_rain"
	ConditionLightSnow             Condition = "light_snow"
	ConditionModerateSnow          Condition = "moderate_snow"
	ConditionHeavySnow             Condition = "heavy_snow"
	ConditionSnowGrains            Condition = "snow_grains"
	ConditionLightRainShower       Condition = "light_rain_shower"
	ConditionModerateRainShower    Condition = "moderate_rain_shower"
	ConditionHeavyRainShower       Condition = "heavy_rain_shower"
	ConditionLightSnowShower       Condition = "light_snow_shower"
	ConditionHeavySnowShower       Condition = "heavy_snow_shower"
	ConditionThunderstorm          Condition = "thunderstorm"
	ConditionThunderstormHail      Condition = "thunderstorm_hail"
	ConditionThunderstormHeavyHail Condition = "thunderstorm_heavy_hail"
	ConditionWindy                 Condition = "windy"
	ConditionHot                   Condition = "hot"
	ConditionCold                  Condition = "cold"
	ConditionFreezing              Condition = "freezing"
	ConditionUnknown               Condition = "unknown"
)

// wmoConditions maps WMO weather interpretation codes (WW, 0-99) to condition
// tags, following the Open-Meteo code documentation. Codes absent from the
// table classify as unknown.
var wmoConditions = map[int]Condition{
	0: ConditionClear,

	1: ConditionMainlyClear,
	2: ConditionPartlyCloudy,
	3: ConditionOvercast,

	45: ConditionFog,
	48: ConditionFog,

	51: ConditionLightDrizzle,
	53: ConditionModerateDrizzle,
	55: ConditionDenseDrizzle,
	56: ConditionLightFreezingDrizzle,
	57: ConditionDenseFreezingDrizzle,

	61: ConditionLightRain,
	63: ConditionModerateRain,
	65: ConditionHeavyRain,
	66: ConditionLightFreezingRain,
	67: ConditionHeavyFreezingRain,

	71: ConditionLightSnow,
	73: ConditionModerateSnow,
	75: ConditionHeavySnow,
	77: ConditionSnowGrains,

	80: ConditionLightRainShower,
	81: ConditionModerateRainShower,
	82: ConditionHeavyRainShower,
	85: ConditionLightSnowShower,
	86: ConditionHeavySnowShower,

	95: ConditionThunderstorm,
	96: ConditionThunderstormHail,
	99: ConditionThunderstormHeavyHail,
}

var conditionDescriptions = map[Condition]string{
	ConditionClear:                 "Clear Sky",
	ConditionClearNight:            "Clear Night",
	ConditionMainlyClear:           "Mainly Clear",
	ConditionPartlyCloudy:          "Partly Cloudy",
	ConditionOvercast:              "Overcast",
	ConditionFog:                   "Fog",
	ConditionLightDrizzle:          "Light Drizzle",
	ConditionModerateDrizzle:       "Moderate Drizzle",
	ConditionDenseDrizzle:          "Dense Drizzle",
	ConditionLightFreezingDrizzle:  "Light Freezing Drizzle",
	ConditionDenseFreezingDrizzle:  "Dense Freezing Drizzle",
	ConditionLightRain:             "Light Rain",
	ConditionModerateRain:          "Moderate Rain",
	ConditionHeavyRain:             "Heavy Rain",
	ConditionLightFreezingRain:     "Light Freezing Rain",
	ConditionHeavyFreezingRain:     "Heavy Freezing Rain",
	ConditionLightSnow:             "Light Snow",
	ConditionModerateSnow:          "Moderate Snow",
	ConditionHeavySnow:             "Heavy Snow",
	ConditionSnowGrains:            "Snow Grains",
	ConditionLightRainShower:       "Light Rain Shower",
	ConditionModerateRainShower:    "Moderate Rain Shower",
	ConditionHeavyRainShower:       "Heavy Rain Shower",
	ConditionLightSnowShower:       "Light Snow Shower",
	ConditionHeavySnowShower:       "Heavy Snow Shower",
	ConditionThunderstorm:          "Thunderstorm",
	ConditionThunderstormHail:      "Thunderstorm with Hail",
	ConditionThunderstormHeavyHail: "Thunderstorm with Heavy Hail",
	ConditionWindy:                 "Windy",
	ConditionHot:                   "Hot",
	ConditionCold:                  "Cold",
	ConditionFreezing:              "Freezing",
}

var conditionIcons = map[Condition]string{
	ConditionClear:                 "sunny.png",
	ConditionClearNight:            "clear_night.png",
	ConditionMainlyClear:           "partly_cloudy.png",
	ConditionPartlyCloudy:          "partly_cloudy.png",
	ConditionOvercast:              "overcast.png",
	ConditionFog:                   "fog.png",
	ConditionLightDrizzle:          "light_rain.png",
	ConditionModerateDrizzle:       "light_rain.png",
	ConditionDenseDrizzle:          "light_rain.png",
	ConditionLightFreezingDrizzle:  "freezing_rain.png",
	ConditionDenseFreezingDrizzle:  "freezing_rain.png",
	ConditionLightRain:             "light_rain.png",
	ConditionModerateRain:          "rain.png",
	ConditionHeavyRain:             "heavy_rain.png",
	ConditionLightFreezingRain:     "freezing_rain.png",
	ConditionHeavyFreezingRain:     "freezing_rain.png",
	ConditionLightSnow:             "light_snow.png",
	ConditionModerateSnow:          "snow.png",
	ConditionHeavySnow:             "heavy_snow.png",
	ConditionSnowGrains:            "snow.png",
	ConditionLightRainShower:       "light_rain.png",
	ConditionModerateRainShower:    "rain.png",
	ConditionHeavyRainShower:       "heavy_rain.png",
	ConditionLightSnowShower:       "light_snow.png",
	ConditionHeavySnowShower:       "heavy_snow.png",
	ConditionThunderstorm:          "thunderstorm.png",
	ConditionThunderstormHail:      "thunderstorm.png",
	ConditionThunderstormHeavyHail: "thunderstorm.png",
	ConditionWindy:                 "windy.png",
	ConditionHot:                   "hot.png",
	ConditionCold:                  "cold.png",
	ConditionFreezing:              "freezing.png",
	ConditionUnknown:               "unknown.png",
}

// Description returns the human-readable label for the tag, "Unknown" for any
// tag without an entry.
func (c Condition) Description() string {
	if d, ok := conditionDescriptions[c]; ok {
		return d
	}
	return "Unknown"
}

// Icon returns the icon asset identifier for the tag, the unknown icon for any
// tag without an entry.
func (c Condition) Icon() string {
	if icon, ok := conditionIcons[c]; ok {
		return icon
	}
	return "unknown.png"
}

// ConditionResult is a classified condition: tag plus its presentation fields.
type ConditionResult struct {
	Tag         Condition `json:"tag"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

func classified(tag Condition) ConditionResult {
	return ConditionResult{Tag: tag, Description: tag.Description(), Icon: tag.Icon()}
}

// labeled builds a result with an explicit description. The threshold
// classifiers grade some descriptions finer than the per-tag table does
// ("Very Windy" vs "Windy").
func labeled(tag Condition, description string) ConditionResult {
	return ConditionResult{Tag: tag, Description: description, Icon: tag.Icon()}
}

// Classification thresholds for the fallback detectors. Precipitation in mm,
// wind in km/h, temperature in °C.
const (
	precipLight    = 0.1
	precipModerate = 2.5
	precipHeavy    = 7.5

	windStrong     = 30.0
	windVeryStrong = 50.0

	tempHot      = 30.0
	tempFreezing = 0.0
	tempCold     = 5.0
)

// FromWMOCode classifies a single WMO weather interpretation code.
func FromWMOCode(code int) ConditionResult {
	tag, ok := wmoConditions[code]
	if !ok {
		tag = ConditionUnknown
	}
	return classified(tag)
}

// FromReadings classifies a single sample by thresholds, for use when no
// weather code is available. Precipitation beats wind beats temperature;
// otherwise the hour decides between day and night clear sky.
func FromReadings(tempC, precipMM, windKmh float64, hour int) ConditionResult {
	switch {
	case precipMM > precipHeavy:
		if windKmh > windStrong {
			return labeled(ConditionThunderstorm, "Thunderstorm")
		}
		return labeled(ConditionHeavyRain, "Heavy Rain")
	case precipMM > precipModerate:
		return labeled(ConditionModerateRain, "Moderate Rain")
	case precipMM > precipLight:
		return labeled(ConditionLightRain, "Light Rain")
	}

	switch {
	case windKmh > windVeryStrong:
		return labeled(ConditionWindy, "Very Windy")
	case windKmh > windStrong:
		return labeled(ConditionWindy, "Windy")
	}

	switch {
	case tempC > tempHot:
		return labeled(ConditionHot, "Hot")
	case tempC < tempFreezing:
		return labeled(ConditionFreezing, "Freezing")
	case tempC < tempCold:
		return labeled(ConditionCold, "Cold")
	}

	if hour >= 6 && hour <= 20 {
		return labeled(ConditionClear, "Clear")
	}
	return labeled(ConditionClearNight, "Clear Night")
}

// ForDay picks the single dominant condition for a day's hourly samples.
// Empty input classifies as unknown.
func ForDay(samples []HourlyEntry) ConditionResult {
	if len(samples) == 0 {
		return classified(ConditionUnknown)
	}

	var sumTemp, totalPrecip, maxWind float64
	rainyHours := 0
	for _, h := range samples {
		sumTemp += h.Temperature
		totalPrecip += h.Precipitation
		if h.WindSpeed > maxWind {
			maxWind = h.WindSpeed
		}
		if h.Precipitation > 0 {
			rainyHours++
		}
	}

	avgTemp := sumTemp / float64(len(samples))
	rainPct := float64(rainyHours) / float64(len(samples)) * 100

	switch {
	case rainPct > 60:
		if totalPrecip > 10 {
			return labeled(ConditionHeavyRain, "Heavy Rain")
		}
		if totalPrecip > 5 {
			return labeled(ConditionModerateRain, "Moderate Rain")
		}
		return labeled(ConditionLightRain, "Light Rain")
	case maxWind > 40:
		return labeled(ConditionWindy, "Very Windy")
	case maxWind > 25:
		return labeled(ConditionWindy, "Windy")
	case avgTemp > 28:
		return labeled(ConditionHot, "Hot")
	case avgTemp < 2:
		return labeled(ConditionFreezing, "Freezing")
	case avgTemp < 8:
		return labeled(ConditionCold, "Cold")
	case rainPct > 30:
		return labeled(ConditionPartlyCloudy, "Partly Cloudy")
	}
	return labeled(ConditionClear, "Clear")
}
