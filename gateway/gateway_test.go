package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tn-weather/datasource"
	"tn-weather/models"
	"tn-weather/observability"
	"tn-weather/providers/weatherapi"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-key"

// 09:00 IST
var testNow = time.Date(2025, 6, 1, 3, 30, 0, 0, time.UTC)

const sunnyPayload = `{
  "current": {
    "temp_c": 32,
    "condition": {"text": "Sunny", "code": 1000},
    "humidity": 75,
    "wind_kph": 12,
    "wind_dir": "SW",
    "pressure_mb": 1013
  },
  "location": {"name": "Chennai"}
}`

func testGateway(t *testing.T, apiKey string, handler http.HandlerFunc) (*Gateway, *observability.Metrics) {
	t.Helper()

	baseURL := "http://127.0.0.1:0"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}

	metrics := observability.NewMetricsForTesting()
	g := New(
		Config{APIKey: apiKey, Timeout: 2 * time.Second, ProbeTimeout: time.Second},
		weatherapi.NewSource(apiKey, baseURL, 5*time.Second),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics,
		clockwork.NewFakeClockAt(testNow),
	)
	return g, metrics
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestFetchCurrent_NoCredentialServesMock(t *testing.T) {
	called := false
	g, metrics := testGateway(t, "", func(w http.ResponseWriter, _ *http.Request) {
		called = true
	})

	rec := g.FetchCurrent(context.Background(), "Chennai")

	assert.False(t, called, "no network access without a credential")
	assert.Equal(t, 28, rec.Temperature)
	assert.Contains(t, rec.Condition, "Mock Data")
	assert.True(t, rec.IsMockData)
	assert.False(t, rec.IsRealData)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchTotal.WithLabelValues("WeatherAPI", observability.OutcomeNoCredential)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CredentialConfigured))
}

func TestFetchCurrent_Success(t *testing.T) {
	g, metrics := testGateway(t, testKey, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Chennai, Tamil Nadu, India", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(sunnyPayload))
	})

	rec := g.FetchCurrent(context.Background(), "Chennai")

	assert.Equal(t, 32, rec.Temperature)
	assert.Equal(t, "Sunny", rec.Condition)
	assert.Equal(t, models.IconSunny, rec.Icon)
	assert.InDelta(t, 29.92, rec.Pressure, 0.01)
	assert.Equal(t, "Chennai, Tamil Nadu", rec.Location)
	assert.True(t, rec.IsRealData)
	assert.False(t, rec.IsMockData)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchTotal.WithLabelValues("WeatherAPI", observability.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CredentialConfigured))
}

func TestFetchCurrent_FailuresFallBackToMock(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		outcome string
	}{
		{"unauthorized", respond(http.StatusUnauthorized, `{"error":{"message":"API key is invalid."}}`), observability.OutcomeUnauthorized},
		{"rate limited", respond(http.StatusTooManyRequests, `{}`), observability.OutcomeRateLimited},
		{"server error", respond(http.StatusInternalServerError, `oops`), observability.OutcomeVendorStatus},
		{"not json", respond(http.StatusOK, `<html></html>`), observability.OutcomeMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, metrics := testGateway(t, testKey, tt.handler)

			rec := g.FetchCurrent(context.Background(), "Madurai")

			assert.True(t, rec.IsMockData)
			assert.False(t, rec.IsRealData)
			assert.Equal(t, "Madurai, Tamil Nadu", rec.Location)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchTotal.WithLabelValues("WeatherAPI", tt.outcome)))
		})
	}
}

func TestFetchCurrent_TimeoutFallsBackToMock(t *testing.T) {
	release := make(chan struct{})
	g, metrics := testGateway(t, testKey, func(w http.ResponseWriter, _ *http.Request) {
		<-release
	})
	t.Cleanup(func() { close(release) })
	g.cfg.Timeout = 50 * time.Millisecond

	rec := g.FetchCurrent(context.Background(), "Salem")

	assert.True(t, rec.IsMockData)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchTotal.WithLabelValues("WeatherAPI", observability.OutcomeTimeout)))
}

func TestFetchCurrent_UnreachableVendorFallsBackToMock(t *testing.T) {
	g, metrics := testGateway(t, testKey, nil)

	rec := g.FetchCurrent(context.Background(), "Vellore")

	assert.True(t, rec.IsMockData)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchTotal.WithLabelValues("WeatherAPI", observability.OutcomeTransport)))
}

func TestFetchCurrent_LocalThrottleIsNotTransport(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, sunnyPayload))
	t.Cleanup(srv.Close)

	metrics := observability.NewMetricsForTesting()
	g := New(
		Config{APIKey: testKey, Service: "WeatherAPI", Timeout: 2 * time.Second},
		datasource.NewRateLimitedVendor(weatherapi.NewSource(testKey, srv.URL, 5*time.Second), 0.01, 1),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics,
		clockwork.NewFakeClockAt(testNow),
	)

	first := g.FetchCurrent(context.Background(), "Chennai")
	require.True(t, first.IsRealData)

	// The single token is spent; the next one is 100s away.
	second := g.FetchCurrent(context.Background(), "Chennai")
	assert.True(t, second.IsMockData)

	fetches := func(outcome string) float64 {
		return testutil.ToFloat64(metrics.FetchTotal.WithLabelValues("WeatherAPI", outcome))
	}
	assert.Equal(t, 1.0, fetches(observability.OutcomeThrottled))
	assert.Equal(t, 0.0, fetches(observability.OutcomeTransport))
	assert.Equal(t, 0.0, fetches(observability.OutcomeTimeout))
}

func TestMockRecord(t *testing.T) {
	g, _ := testGateway(t, "", nil)

	want := models.WeatherRecord{
		Location:      "Ooty, Tamil Nadu",
		Temperature:   28,
		RealFeel:      32,
		Condition:     "Mock Data - Get API Key for Real Weather",
		Icon:          models.IconPartlyCloudy,
		Humidity:      75,
		WindSpeed:     12,
		WindDirection: "SW",
		Pressure:      29.85,
		UVIndex:       6,
		Visibility:    8,
		DewPoint:      24,
		CloudCover:    60,
		LastUpdated:   "2025-06-01T03:30:00Z",
		IsMockData:    true,
	}

	if diff := cmp.Diff(want, g.MockRecord("Ooty")); diff != "" {
		t.Errorf("MockRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestMockRecord_AnyCity(t *testing.T) {
	g, _ := testGateway(t, "", nil)

	for _, city := range append(AvailableCities(), "Atlantis", "") {
		rec := g.MockRecord(city)
		assert.Equal(t, city+", Tamil Nadu", rec.Location)
		assert.True(t, rec.IsMockData)
		assert.False(t, rec.IsRealData)
	}
}

func TestSnapshot(t *testing.T) {
	g, _ := testGateway(t, "", nil)

	snap := g.Snapshot(context.Background(), "Chennai")

	assert.Equal(t, "Chennai", snap.City)
	assert.True(t, snap.Current.IsMockData)
	assert.Len(t, snap.MinuteCast.Samples, 8)
	assert.Len(t, snap.Hourly, 12)
	assert.Equal(t, "9 AM", snap.Hourly[0].Time)
	assert.Equal(t, testNow, snap.FetchedAt)
	assert.Zero(t, snap.Seq)
}

func TestCheckStatus(t *testing.T) {
	t.Run("no key", func(t *testing.T) {
		g, _ := testGateway(t, "", nil)
		status := g.CheckStatus(context.Background())
		assert.Equal(t, models.APIStatus{Status: models.StatusNoKey, Message: "API key not configured"}, status)
	})

	t.Run("connected", func(t *testing.T) {
		g, _ := testGateway(t, testKey, func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasPrefix(r.URL.Query().Get("q"), "Chennai"))
			_, _ = w.Write([]byte(sunnyPayload))
		})
		status := g.CheckStatus(context.Background())
		assert.Equal(t, models.StatusConnected, status.Status)
		assert.Equal(t, "Real-time weather data active", status.Message)
		assert.Equal(t, "WeatherAPI", status.Service)
	})

	t.Run("invalid key", func(t *testing.T) {
		g, _ := testGateway(t, testKey, respond(http.StatusUnauthorized, `{}`))
		status := g.CheckStatus(context.Background())
		assert.Equal(t, models.StatusError, status.Status)
		assert.Equal(t, "Invalid API key", status.Message)
		assert.Equal(t, http.StatusUnauthorized, status.HTTPStatus)
	})

	t.Run("other failure", func(t *testing.T) {
		g, _ := testGateway(t, testKey, respond(http.StatusServiceUnavailable, `down`))
		status := g.CheckStatus(context.Background())
		assert.Equal(t, models.StatusError, status.Status)
		assert.True(t, strings.HasPrefix(status.Message, "Connection failed: "))
		assert.Equal(t, http.StatusServiceUnavailable, status.HTTPStatus)
	})
}

func TestConnectionStatus(t *testing.T) {
	tests := []struct {
		in   models.APIStatus
		want models.ConnectionStatus
	}{
		{models.APIStatus{Status: models.StatusNoKey}, models.ConnectionStatus{Message: "API key required for real weather data", Type: "warning"}},
		{models.APIStatus{Status: models.StatusConnected}, models.ConnectionStatus{Connected: true, Message: "Real-time weather data active", Type: "success"}},
		{models.APIStatus{Status: models.StatusError, Message: "Invalid API key"}, models.ConnectionStatus{Message: "Invalid API key", Type: "error"}},
		{models.APIStatus{}, models.ConnectionStatus{Message: "Checking connection...", Type: "info"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ConnectionStatus(tt.in))
	}
}

func TestAvailableCities(t *testing.T) {
	cities := AvailableCities()

	require.Len(t, cities, 14)
	assert.IsIncreasing(t, cities)
	assert.Equal(t, "Chennai", cities[0])
	assert.Contains(t, cities, "Thoothukudi")
	assert.True(t, IsSupported("Madurai"))
	assert.False(t, IsSupported("Bengaluru"))
	assert.Equal(t, "Bengaluru", QueryName("Bengaluru"))
}
