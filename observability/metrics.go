package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes recorded by the gateway.
const (
	OutcomeSuccess      = "success"
	OutcomeNoCredential = "no_credential"
	OutcomeUnauthorized = "unauthorized"
	OutcomeRateLimited  = "rate_limited"
	OutcomeVendorStatus = "vendor_status"
	OutcomeMalformed    = "malformed"
	OutcomeTimeout      = "timeout"
	OutcomeTransport    = "transport"
	OutcomeThrottled    = "throttled"
)

// Metrics holds the Prometheus collectors for the weather gateway.
type Metrics struct {
	FetchTotal           *prometheus.CounterVec   // labels: vendor, outcome
	VendorDuration       *prometheus.HistogramVec // labels: vendor
	CacheTotal           *prometheus.CounterVec   // labels: result={hit,miss}
	CredentialConfigured prometheus.Gauge
}

// NewMetrics creates and registers all gateway metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchTotal,
		m.VendorDuration,
		m.CacheTotal,
		m.CredentialConfigured,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tnweather",
			Name:      "fetch_total",
			Help:      "Current-weather fetches by vendor and outcome; anything but success was served mock data.",
		}, []string{"vendor", "outcome"}),
		VendorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tnweather",
			Name:      "vendor_request_duration_seconds",
			Help:      "Vendor API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"vendor"}),
		CacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tnweather",
			Name:      "cache_total",
			Help:      "Vendor payload cache lookups by result.",
		}, []string{"result"}),
		CredentialConfigured: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tnweather",
			Name:      "credential_configured",
			Help:      "1 when a vendor API key is configured, 0 when only mock data can be served.",
		}),
	}
}
