package models

import (
	"time"
)

// Condition labels used for display and icon selection
const (
	ConditionClear        = "Clear"
	ConditionPartlyCloudy = "Partly Cloudy"
	ConditionCloudy       = "Cloudy"
	ConditionLightRain    = "Light Rain"
	ConditionRain         = "Rain"
	ConditionHeavyRain    = "Heavy Rain"
	ConditionThunderstorm = "Thunderstorms"
	ConditionFog          = "Fog"
	ConditionHotHumid     = "Hot & Humid"
)

// Icon keys understood by the dashboard
const (
	IconSunny         = "sunny"
	IconPartlyCloudy  = "partly-cloudy"
	IconCloudy        = "cloudy"
	IconLightRain     = "light-rain"
	IconRain          = "rain"
	IconSnow          = "snow"
	IconThunderstorms = "thunderstorms"
	IconFog           = "fog"
)

// WeatherRecord is the vendor-independent view of current conditions for a city.
// Exactly one of IsRealData and IsMockData is set.
type WeatherRecord struct {
	Location      string      `json:"location"`
	Temperature   int         `json:"temperature"` // Celsius
	RealFeel      int         `json:"realFeel"`    // Celsius
	Condition     string      `json:"condition"`
	Icon          string      `json:"icon"`
	Humidity      int         `json:"humidity"`      // percentage
	WindSpeed     int         `json:"windSpeed"`     // km/h
	WindDirection string      `json:"windDirection"` // 16-point compass
	Pressure      float64     `json:"pressure"`      // inches of mercury
	UVIndex       int         `json:"uvIndex"`
	Visibility    int         `json:"visibility"` // km
	DewPoint      int         `json:"dewPoint"`   // Celsius
	CloudCover    int         `json:"cloudCover"` // percentage
	AirQuality    *AirQuality `json:"airQuality,omitempty"`
	LastUpdated   string      `json:"lastUpdated"` // RFC 3339
	IsRealData    bool        `json:"isRealData,omitempty"`
	IsMockData    bool        `json:"isMockData,omitempty"`
}

// AirQuality is reported only by vendors that support it.
type AirQuality struct {
	EPAIndex int     `json:"epaIndex"` // 1 (good) to 6 (hazardous)
	PM25     float64 `json:"pm25"`
	Level    string  `json:"level"`
}

// PrecipitationSample is one 15-minute step of the precipitation outlook.
type PrecipitationSample struct {
	Label     string `json:"time"`
	Intensity int    `json:"intensity"` // 0 (none) to 3 (heavy)
}

// PrecipitationOutlook covers the next two hours.
type PrecipitationOutlook struct {
	Summary string                `json:"summary"`
	Samples []PrecipitationSample `json:"precipitation"`
}

// HourlyForecastSample is one entry of the 12-hour forecast; entry 0 is now.
type HourlyForecastSample struct {
	Time          string `json:"time"`
	Temperature   int    `json:"temp"`
	Condition     string `json:"condition"`
	Precipitation int    `json:"precipitation"` // probability, percentage
	Icon          string `json:"icon"`
}

// Snapshot bundles one fetch-or-fallback cycle with its derived forecasts.
type Snapshot struct {
	City       string                 `json:"city"`
	Current    WeatherRecord          `json:"current"`
	MinuteCast PrecipitationOutlook   `json:"minuteCast"`
	Hourly     []HourlyForecastSample `json:"hourly"`
	FetchedAt  time.Time              `json:"fetchedAt"`
	Seq        uint64                 `json:"seq"`
}
