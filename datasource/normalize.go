package datasource

import (
	"math"
	"strings"

	"tn-weather/models"
)

// Defaults substituted for fields a vendor omits.
const (
	DefaultTemperature   = 28
	DefaultHumidity      = 65
	DefaultWindSpeed     = 8 // km/h
	DefaultWindDirection = "SW"
	DefaultPressure      = 29.92 // inHg
	DefaultUVIndex       = 6
	DefaultVisibility    = 10 // km
	DefaultDewPoint      = 22
	DefaultCloudCover    = 40
)

// inHgPerMillibar converts millibars (hPa) to inches of mercury.
const inHgPerMillibar = 0.02953

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Location formats the display name for a Tamil Nadu city.
func Location(city string) string {
	return city + ", Tamil Nadu"
}

// MillibarsToInHg converts vendor pressure to inches of mercury.
func MillibarsToInHg(mb float64) float64 {
	return mb * inHgPerMillibar
}

// DegreeToDirection maps a wind bearing to a 16-point compass label.
// Bearings outside [0, 360] fall back to DefaultWindDirection.
func DegreeToDirection(deg float64) string {
	if math.IsNaN(deg) || deg < 0 || deg > 360 {
		return DefaultWindDirection
	}
	return compassPoints[int(math.Round(deg/22.5))%16]
}

// DewPoint estimates the dew point with the Magnus approximation.
// A nil temperature or a missing humidity yields DefaultDewPoint.
func DewPoint(tempC, humidity *float64) int {
	if tempC == nil || humidity == nil || *humidity <= 0 {
		return DefaultDewPoint
	}
	const a, b = 17.27, 237.7
	t := *tempC
	alpha := (a*t)/(b+t) + math.Log(*humidity/100)
	return int(math.Round(b * alpha / (a - alpha)))
}

// MapCondition maps a free-text description onto the condition vocabulary.
func MapCondition(description string) string {
	desc := strings.ToLower(description)

	switch {
	case strings.Contains(desc, "thunder") || strings.Contains(desc, "storm"):
		return models.ConditionThunderstorm
	case strings.Contains(desc, "rain") || strings.Contains(desc, "drizzle"):
		if strings.Contains(desc, "heavy") {
			return models.ConditionHeavyRain
		}
		if strings.Contains(desc, "light") {
			return models.ConditionLightRain
		}
		return models.ConditionRain
	case strings.Contains(desc, "cloud"):
		if strings.Contains(desc, "partly") {
			return models.ConditionPartlyCloudy
		}
		return models.ConditionCloudy
	case strings.Contains(desc, "clear") || strings.Contains(desc, "sunny"):
		return models.ConditionClear
	case strings.Contains(desc, "fog") || strings.Contains(desc, "mist"):
		return models.ConditionFog
	case strings.Contains(desc, "hot"):
		return models.ConditionHotHumid
	}
	return models.ConditionPartlyCloudy
}

// MapIcon maps a free-text description onto the icon vocabulary.
func MapIcon(description string) string {
	desc := strings.ToLower(description)

	switch {
	case strings.Contains(desc, "thunder"):
		return models.IconThunderstorms
	case strings.Contains(desc, "rain") || strings.Contains(desc, "drizzle"):
		if strings.Contains(desc, "light") && !strings.Contains(desc, "heavy") {
			return models.IconLightRain
		}
		return models.IconRain
	case strings.Contains(desc, "snow") || strings.Contains(desc, "sleet"):
		return models.IconSnow
	case strings.Contains(desc, "cloud"):
		if strings.Contains(desc, "partly") {
			return models.IconPartlyCloudy
		}
		return models.IconCloudy
	case strings.Contains(desc, "clear") || strings.Contains(desc, "sunny"):
		return models.IconSunny
	case strings.Contains(desc, "fog") || strings.Contains(desc, "mist"):
		return models.IconFog
	}
	return models.IconPartlyCloudy
}

// AirQualityLevel labels a US-EPA air quality index (1-6).
func AirQualityLevel(epaIndex int) string {
	switch epaIndex {
	case 1:
		return "Good"
	case 2:
		return "Moderate"
	case 3:
		return "Unhealthy for Sensitive Groups"
	case 4:
		return "Unhealthy"
	case 5:
		return "Very Unhealthy"
	case 6:
		return "Hazardous"
	}
	return "Unknown"
}

// Round converts a measurement to the nearest whole unit.
func Round(v float64) int {
	return int(math.Round(v))
}

// OrDefault rounds v, or returns def when v is nil.
func OrDefault(v *float64, def int) int {
	if v == nil {
		return def
	}
	return Round(*v)
}
