package weatherapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tn-weather/datasource"
	"tn-weather/models"
)

// DefaultBaseURL is the WeatherAPI.com v1 endpoint
const DefaultBaseURL = "https://api.weatherapi.com/v1"

// lastUpdatedLayout is the local-time format of current.last_updated
const lastUpdatedLayout = "2006-01-02 15:04"

// ist is the zone WeatherAPI reports Tamil Nadu times in
var ist = time.FixedZone("IST", 5*60*60+30*60)

// Source is an implementation of the datasource.Vendor interface for WeatherAPI.com
type Source struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Ensure Source implements datasource.Vendor
var _ datasource.Vendor = (*Source)(nil)

// NewSource creates a new WeatherAPI data source. An empty baseURL selects DefaultBaseURL.
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
func (w *Source) Name() string {
	return "WeatherAPI"
}

// Response represents the current.json response structure.
// Pointer fields distinguish "absent" from zero.
type Response struct {
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
	Current *struct {
		TempC      *float64 `json:"temp_c"`
		FeelsLikeC *float64 `json:"feelslike_c"`
		Condition  *struct {
			Text string `json:"text"`
			Code int    `json:"code"`
		} `json:"condition"`
		Humidity    *float64 `json:"humidity"`
		WindKph     *float64 `json:"wind_kph"`
		WindDir     string   `json:"wind_dir"`
		WindDegree  *float64 `json:"wind_degree"`
		PressureMb  *float64 `json:"pressure_mb"`
		UV          *float64 `json:"uv"`
		VisKm       *float64 `json:"vis_km"`
		DewpointC   *float64 `json:"dewpoint_c"`
		Cloud       *float64 `json:"cloud"`
		LastUpdated string   `json:"last_updated"`
		AirQuality  *struct {
			PM25     *float64 `json:"pm2_5"`
			EPAIndex *int     `json:"us-epa-index"`
		} `json:"air_quality"`
	} `json:"current"`
}

// Fetch requests current conditions, qualifying the city with the state and country
func (w *Source) Fetch(ctx context.Context, city string) (datasource.RawPayload, error) {
	params := url.Values{}
	params.Add("key", w.apiKey)
	params.Add("q", fmt.Sprintf("%s, Tamil Nadu, India", city))
	params.Add("aqi", "yes")

	return datasource.Get(ctx, w.client, w.Name(), w.baseURL+"/current.json", params)
}

// Normalize maps a current.json payload onto the canonical record
func (w *Source) Normalize(payload datasource.RawPayload, city string, fetchedAt time.Time) models.WeatherRecord {
	var resp Response
	// A payload that does not decode is treated like an empty one.
	if !datasource.DecodeLenient(payload, &resp) {
		resp = Response{}
	}

	record := models.WeatherRecord{
		Location:      datasource.Location(city),
		Temperature:   datasource.DefaultTemperature,
		RealFeel:      datasource.DefaultTemperature,
		Condition:     datasource.MapCondition(""),
		Icon:          datasource.MapIcon(""),
		Humidity:      datasource.DefaultHumidity,
		WindSpeed:     datasource.DefaultWindSpeed,
		WindDirection: datasource.DefaultWindDirection,
		Pressure:      datasource.DefaultPressure,
		UVIndex:       datasource.DefaultUVIndex,
		Visibility:    datasource.DefaultVisibility,
		DewPoint:      datasource.DefaultDewPoint,
		CloudCover:    datasource.DefaultCloudCover,
		LastUpdated:   fetchedAt.UTC().Format(time.RFC3339),
		IsRealData:    true,
	}

	if resp.Location != nil && resp.Location.Name != "" {
		record.Location = datasource.Location(resp.Location.Name)
	}

	cur := resp.Current
	if cur == nil {
		return record
	}

	record.Temperature = datasource.OrDefault(cur.TempC, datasource.DefaultTemperature)
	record.RealFeel = datasource.OrDefault(cur.FeelsLikeC, record.Temperature)
	record.Humidity = datasource.OrDefault(cur.Humidity, datasource.DefaultHumidity)
	record.WindSpeed = datasource.OrDefault(cur.WindKph, datasource.DefaultWindSpeed)
	record.UVIndex = datasource.OrDefault(cur.UV, datasource.DefaultUVIndex)
	record.Visibility = datasource.OrDefault(cur.VisKm, datasource.DefaultVisibility)
	record.CloudCover = datasource.OrDefault(cur.Cloud, datasource.DefaultCloudCover)

	if cur.Condition != nil {
		if text := strings.TrimSpace(cur.Condition.Text); text != "" {
			record.Condition = text
		}
		record.Icon = IconForCode(cur.Condition.Code, cur.Condition.Text)
	}

	switch {
	case cur.WindDir != "":
		record.WindDirection = cur.WindDir
	case cur.WindDegree != nil:
		record.WindDirection = datasource.DegreeToDirection(*cur.WindDegree)
	}

	if cur.PressureMb != nil {
		record.Pressure = datasource.MillibarsToInHg(*cur.PressureMb)
	}

	if cur.DewpointC != nil {
		record.DewPoint = datasource.Round(*cur.DewpointC)
	} else {
		record.DewPoint = datasource.DewPoint(cur.TempC, cur.Humidity)
	}

	if cur.LastUpdated != "" {
		if t, err := time.ParseInLocation(lastUpdatedLayout, cur.LastUpdated, ist); err == nil {
			record.LastUpdated = t.Format(time.RFC3339)
		}
	}

	if aq := cur.AirQuality; aq != nil && aq.EPAIndex != nil {
		record.AirQuality = &models.AirQuality{
			EPAIndex: *aq.EPAIndex,
			Level:    datasource.AirQualityLevel(*aq.EPAIndex),
		}
		if aq.PM25 != nil {
			record.AirQuality.PM25 = *aq.PM25
		}
	}

	return record
}
