// Package providers assembles the configured weather vendor with its
// rate-limiting and caching decorators.
package providers

import (
	"fmt"
	"log/slog"

	"tn-weather/cache"
	"tn-weather/config"
	"tn-weather/datasource"
	"tn-weather/observability"
	"tn-weather/providers/openweathermap"
	"tn-weather/providers/weatherapi"

	"github.com/jonboulle/clockwork"
)

// New returns the vendor selected by cfg.Vendor, wrapped as
// adapter -> rate limiter (when RateLimitRPS > 0) -> cache (when CacheTTL > 0),
// along with the adapter's own display name.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) (datasource.Vendor, string, error) {
	var vendor datasource.Vendor
	switch cfg.Vendor {
	case config.VendorWeatherAPI:
		vendor = weatherapi.NewSource(cfg.APIKey, cfg.BaseURL, cfg.FetchTimeout)
	case config.VendorOpenWeatherMap:
		vendor = openweathermap.NewSource(cfg.APIKey, cfg.BaseURL, cfg.FetchTimeout)
	default:
		return nil, "", fmt.Errorf("unknown vendor %q", cfg.Vendor)
	}
	service := vendor.Name()

	if cfg.RateLimitRPS > 0 {
		burst := max(cfg.RateLimitBurst, len(cfg.Cities))
		vendor = datasource.NewRateLimitedVendor(vendor, cfg.RateLimitRPS, burst)
	}
	if cfg.CacheTTL > 0 {
		vendor = cache.NewCachedVendor(vendor, cfg.CacheTTL, clock, metrics, logger)
	}

	logger.Info("vendor configured",
		"vendor", vendor.Name(),
		"rate_limit_rps", cfg.RateLimitRPS,
		"cache_ttl", cfg.CacheTTL,
		"api_key", cfg.HasCredential(),
	)

	return vendor, service, nil
}
