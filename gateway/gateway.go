package gateway

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tn-weather/datasource"
	"tn-weather/models"
	"tn-weather/observability"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Mock values served whenever a live read is not possible.
const (
	MockTemperature   = 28
	MockRealFeel      = 32
	MockCondition     = "Mock Data - Get API Key for Real Weather"
	MockHumidity      = 75
	MockWindSpeed     = 12
	MockWindDirection = "SW"
	MockPressure      = 29.85
	MockUVIndex       = 6
	MockVisibility    = 8
	MockDewPoint      = 24
	MockCloudCover    = 60
)

// Defaults applied by New for zero Config fields.
const (
	DefaultTimeout      = 10 * time.Second
	DefaultProbeTimeout = 5 * time.Second
	DefaultProbeCity    = "Chennai"
)

// Config holds the gateway's static settings. It is read-only after New.
type Config struct {
	// APIKey is the vendor credential; empty means mock data only
	APIKey string
	// Service names the vendor in status reports and metric labels
	Service      string
	Timeout      time.Duration
	ProbeTimeout time.Duration
	ProbeCity    string
}

// Gateway produces weather records for Tamil Nadu cities, preferring a live
// vendor read and falling back to mock data.
type Gateway struct {
	cfg     Config
	vendor  datasource.Vendor
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// New creates a gateway over vendor.
func New(cfg Config, vendor datasource.Vendor, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Gateway {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.Service == "" {
		cfg.Service = vendor.Name()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.ProbeCity == "" {
		cfg.ProbeCity = DefaultProbeCity
	}

	g := &Gateway{
		cfg:     cfg,
		vendor:  vendor,
		logger:  logger.With("component", "gateway"),
		metrics: metrics,
		clock:   clock,
	}

	if g.HasCredential() {
		metrics.CredentialConfigured.Set(1)
	} else {
		metrics.CredentialConfigured.Set(0)
	}

	return g
}

// HasCredential reports whether a vendor key is configured.
func (g *Gateway) HasCredential() bool {
	return g.cfg.APIKey != ""
}

// Service returns the vendor name used in reports.
func (g *Gateway) Service() string {
	return g.cfg.Service
}

// FetchCurrent returns the current record for city. It never fails: without a
// credential, or when the vendor call fails for any reason, it returns MockRecord.
func (g *Gateway) FetchCurrent(ctx context.Context, city string) models.WeatherRecord {
	log := g.logger.With("request_id", uuid.NewString(), "city", city, "vendor", g.cfg.Service)

	if !g.HasCredential() {
		g.fallback(log, observability.OutcomeNoCredential, nil)
		return g.MockRecord(city)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	start := g.clock.Now()
	payload, err := g.vendor.Fetch(fetchCtx, QueryName(city))
	g.metrics.VendorDuration.WithLabelValues(g.cfg.Service).Observe(g.clock.Since(start).Seconds())
	if err != nil {
		g.fallback(log, classify(err), err)
		return g.MockRecord(city)
	}

	record := g.vendor.Normalize(payload, city, g.clock.Now())
	g.metrics.FetchTotal.WithLabelValues(g.cfg.Service, observability.OutcomeSuccess).Inc()
	log.Debug("fetched current weather", "condition", record.Condition, "temperature", record.Temperature)

	return record
}

// MockRecord returns the fixed synthetic record for city. Any city name is accepted.
func (g *Gateway) MockRecord(city string) models.WeatherRecord {
	return models.WeatherRecord{
		Location:      datasource.Location(city),
		Temperature:   MockTemperature,
		RealFeel:      MockRealFeel,
		Condition:     MockCondition,
		Icon:          models.IconPartlyCloudy,
		Humidity:      MockHumidity,
		WindSpeed:     MockWindSpeed,
		WindDirection: MockWindDirection,
		Pressure:      MockPressure,
		UVIndex:       MockUVIndex,
		Visibility:    MockVisibility,
		DewPoint:      MockDewPoint,
		CloudCover:    MockCloudCover,
		LastUpdated:   g.clock.Now().UTC().Format(time.RFC3339),
		IsMockData:    true,
	}
}

// Snapshot runs one fetch-or-fallback cycle for city and derives both forecasts
// from the resulting record. Seq is left for the caller to assign.
func (g *Gateway) Snapshot(ctx context.Context, city string) models.Snapshot {
	record := g.FetchCurrent(ctx, city)
	now := g.clock.Now()

	return models.Snapshot{
		City:       city,
		Current:    record,
		MinuteCast: DerivePrecipitationOutlook(record),
		Hourly:     DeriveHourlyForecast(record, now),
		FetchedAt:  now,
	}
}

func (g *Gateway) fallback(log *slog.Logger, outcome string, err error) {
	g.metrics.FetchTotal.WithLabelValues(g.cfg.Service, outcome).Inc()

	if err == nil {
		log.Info("serving mock data", "reason", outcome)
		return
	}

	attrs := []any{"reason", outcome, "error", err}
	if code := datasource.StatusCode(err); code != 0 {
		attrs = append(attrs, "status", code)
	}
	log.Warn("vendor fetch failed, serving mock data", attrs...)
}

// classify maps a vendor error onto a fallback reason.
func classify(err error) string {
	switch {
	case errors.Is(err, datasource.ErrThrottled):
		return observability.OutcomeThrottled
	case datasource.IsUnauthorized(err):
		return observability.OutcomeUnauthorized
	case datasource.IsRateLimited(err):
		return observability.OutcomeRateLimited
	case datasource.StatusCode(err) != 0:
		return observability.OutcomeVendorStatus
	case errors.Is(err, datasource.ErrMalformedPayload):
		return observability.OutcomeMalformed
	case datasource.IsTimeout(err):
		return observability.OutcomeTimeout
	default:
		return observability.OutcomeTransport
	}
}
