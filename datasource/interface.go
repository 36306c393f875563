package datasource

import (
	"context"
	"time"

	"tn-weather/models"
)

// RawPayload is the undecoded body of a successful vendor response.
type RawPayload []byte

// Vendor defines the interface for any weather data provider.
// Fetch talks to the network; Normalize is a pure mapping of whatever Fetch
// returned and never fails.
type Vendor interface {
	// Name returns the vendor's display name
	Name() string

	// Fetch retrieves current conditions for a city, using the vendor's query name
	Fetch(ctx context.Context, city string) (RawPayload, error)

	// Normalize converts a payload into the canonical record for city.
	// fetchedAt is used when the vendor omits its own update time.
	Normalize(payload RawPayload, city string, fetchedAt time.Time) models.WeatherRecord
}
