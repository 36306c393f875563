package datasource

import (
	"math"
	"testing"

	"tn-weather/models"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestDegreeToDirection(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{11, "N"},
		{12, "NNE"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{348, "NNW"},
		{350, "N"},
		{360, "N"},
		{-1, DefaultWindDirection},
		{361, DefaultWindDirection},
		{math.NaN(), DefaultWindDirection},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DegreeToDirection(tt.deg), "deg %v", tt.deg)
	}
}

func TestDewPoint(t *testing.T) {
	assert.Equal(t, 18, DewPoint(ptr(30), ptr(50)))
	assert.Equal(t, 26, DewPoint(ptr(30), ptr(80)))
	assert.Equal(t, DefaultDewPoint, DewPoint(nil, ptr(50)))
	assert.Equal(t, DefaultDewPoint, DewPoint(ptr(30), nil))
	assert.Equal(t, DefaultDewPoint, DewPoint(ptr(30), ptr(0)))
}

func TestMillibarsToInHg(t *testing.T) {
	assert.InDelta(t, 29.92, MillibarsToInHg(1013.25), 0.01)
	assert.Equal(t, 0.0, MillibarsToInHg(0))
}

func TestMapCondition(t *testing.T) {
	tests := map[string]string{
		"thunderstorm with rain": models.ConditionThunderstorm,
		"Severe Thunderstorm":    models.ConditionThunderstorm,
		"heavy intensity rain":   models.ConditionHeavyRain,
		"light drizzle":          models.ConditionLightRain,
		"moderate rain":          models.ConditionRain,
		"partly cloudy":          models.ConditionPartlyCloudy,
		"overcast clouds":        models.ConditionCloudy,
		"clear sky":              models.ConditionClear,
		"Sunny":                  models.ConditionClear,
		"mist":                   models.ConditionFog,
		"hot":                    models.ConditionHotHumid,
		"haze":                   models.ConditionPartlyCloudy,
		"":                       models.ConditionPartlyCloudy,
	}
	for desc, want := range tests {
		assert.Equal(t, want, MapCondition(desc), "description %q", desc)
	}
}

func TestMapIcon(t *testing.T) {
	tests := map[string]string{
		"thunderstorm with heavy rain": models.IconThunderstorms,
		"light rain":                   models.IconLightRain,
		"light and heavy rain":         models.IconRain,
		"rain":                         models.IconRain,
		"light snow":                   models.IconSnow,
		"sleet":                        models.IconSnow,
		"partly cloudy":                models.IconPartlyCloudy,
		"broken clouds":                models.IconCloudy,
		"clear sky":                    models.IconSunny,
		"fog":                          models.IconFog,
		"dust":                         models.IconPartlyCloudy,
	}
	for desc, want := range tests {
		assert.Equal(t, want, MapIcon(desc), "description %q", desc)
	}
}

func TestAirQualityLevel(t *testing.T) {
	assert.Equal(t, "Good", AirQualityLevel(1))
	assert.Equal(t, "Unhealthy for Sensitive Groups", AirQualityLevel(3))
	assert.Equal(t, "Hazardous", AirQualityLevel(6))
	assert.Equal(t, "Unknown", AirQualityLevel(0))
	assert.Equal(t, "Unknown", AirQualityLevel(7))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 7, OrDefault(nil, 7))
	assert.Equal(t, 33, OrDefault(ptr(32.5), 7))
	assert.Equal(t, 0, OrDefault(ptr(0), 7))
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "Kanyakumari, Tamil Nadu", Location("Kanyakumari"))
}
