package openweathermap

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tn-weather/datasource"
	"tn-weather/models"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 endpoint
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Source is an implementation of the datasource.Vendor interface for OpenWeatherMap
type Source struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Ensure Source implements datasource.Vendor
var _ datasource.Vendor = (*Source)(nil)

// NewSource creates a new OpenWeatherMap data source. An empty baseURL selects DefaultBaseURL.
func NewSource(apiKey, baseURL string, timeout time.Duration) *Source {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Source{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the name of this data source
func (o *Source) Name() string {
	return "OpenWeatherMap"
}

// Response represents the /weather response structure
type Response struct {
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Pressure  *float64 `json:"pressure"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
	Clouds *struct {
		All *float64 `json:"all"`
	} `json:"clouds"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Visibility *float64 `json:"visibility"`
	Name       string   `json:"name"`
	Dt         int64    `json:"dt"`
}

// Fetch requests current conditions for a city in India, in metric units
func (o *Source) Fetch(ctx context.Context, city string) (datasource.RawPayload, error) {
	params := url.Values{}
	params.Add("q", city+",IN")
	params.Add("appid", o.apiKey)
	params.Add("units", "metric")

	return datasource.Get(ctx, o.client, o.Name(), o.baseURL+"/weather", params)
}

// Normalize maps a /weather payload onto the canonical record.
// OpenWeatherMap reports wind in m/s, visibility in metres and pressure in hPa.
func (o *Source) Normalize(payload datasource.RawPayload, city string, fetchedAt time.Time) models.WeatherRecord {
	var resp Response
	if !datasource.DecodeLenient(payload, &resp) {
		resp = Response{}
	}

	description := ""
	if len(resp.Weather) > 0 {
		description = resp.Weather[0].Description
		if description == "" {
			description = resp.Weather[0].Main
		}
	}

	record := models.WeatherRecord{
		Location:      datasource.Location(city),
		Temperature:   datasource.DefaultTemperature,
		RealFeel:      datasource.DefaultTemperature,
		Condition:     datasource.MapCondition(description),
		Icon:          datasource.MapIcon(description),
		Humidity:      datasource.DefaultHumidity,
		WindSpeed:     datasource.DefaultWindSpeed,
		WindDirection: datasource.DefaultWindDirection,
		Pressure:      datasource.DefaultPressure,
		UVIndex:       datasource.DefaultUVIndex,
		Visibility:    datasource.DefaultVisibility,
		CloudCover:    datasource.DefaultCloudCover,
		LastUpdated:   fetchedAt.UTC().Format(time.RFC3339),
		IsRealData:    true,
	}

	if resp.Name != "" {
		record.Location = datasource.Location(resp.Name)
	}
	if resp.Dt > 0 {
		record.LastUpdated = time.Unix(resp.Dt, 0).UTC().Format(time.RFC3339)
	}

	var temp, humidity *float64
	if m := resp.Main; m != nil {
		temp, humidity = m.Temp, m.Humidity
		record.Temperature = datasource.OrDefault(m.Temp, datasource.DefaultTemperature)
		record.RealFeel = datasource.OrDefault(m.FeelsLike, record.Temperature)
		record.Humidity = datasource.OrDefault(m.Humidity, datasource.DefaultHumidity)
		if m.Pressure != nil {
			record.Pressure = datasource.MillibarsToInHg(*m.Pressure)
		}
	}
	record.DewPoint = datasource.DewPoint(temp, humidity)

	if w := resp.Wind; w != nil {
		if w.Speed != nil {
			record.WindSpeed = datasource.Round(*w.Speed * 3.6)
		}
		if w.Deg != nil {
			record.WindDirection = datasource.DegreeToDirection(*w.Deg)
		}
	}

	if resp.Clouds != nil {
		record.CloudCover = datasource.OrDefault(resp.Clouds.All, datasource.DefaultCloudCover)
	}
	if resp.Visibility != nil {
		record.Visibility = datasource.Round(*resp.Visibility / 1000)
	}

	return record
}
