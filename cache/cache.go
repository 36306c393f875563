package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tn-weather/datasource"
	"tn-weather/models"
	"tn-weather/observability"

	"github.com/jonboulle/clockwork"
)

// CachedVendor wraps a Vendor and keeps successful payloads for a fixed TTL.
// Errors are never cached.
type CachedVendor struct {
	vendor  datasource.Vendor
	cache   map[string]cacheEntry
	mutex   sync.RWMutex
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
	hits    int
	misses  int
}

// cacheEntry represents a cached payload with the time it was fetched
type cacheEntry struct {
	Payload   datasource.RawPayload
	Timestamp time.Time
}

// NewCachedVendor creates a new cached wrapper around a vendor
func NewCachedVendor(vendor datasource.Vendor, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *CachedVendor {
	return &CachedVendor{
		vendor:  vendor,
		cache:   make(map[string]cacheEntry),
		ttl:     ttl,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// Name returns the name of the underlying vendor with a [Cached] suffix
func (c *CachedVendor) Name() string {
	return c.vendor.Name() + " [Cached]"
}

// Fetch returns a cached payload when one is younger than the TTL,
// otherwise fetches and stores a fresh one.
func (c *CachedVendor) Fetch(ctx context.Context, city string) (datasource.RawPayload, error) {
	key := strings.ToLower(strings.TrimSpace(city))

	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if found {
		if age := c.clock.Since(entry.Timestamp); age < c.ttl {
			c.record("hit")
			c.logger.Debug("cache hit", "city", city, "vendor", c.vendor.Name(), "age", age.Round(time.Second))
			return entry.Payload, nil
		}
	}

	c.record("miss")
	c.logger.Debug("cache miss", "city", city, "vendor", c.vendor.Name())

	payload, err := c.vendor.Fetch(ctx, city)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.cache[key] = cacheEntry{
		Payload:   payload,
		Timestamp: c.clock.Now(),
	}
	c.mutex.Unlock()

	return payload, nil
}

// Normalize forwards to the underlying vendor
func (c *CachedVendor) Normalize(payload datasource.RawPayload, city string, fetchedAt time.Time) models.WeatherRecord {
	return c.vendor.Normalize(payload, city, fetchedAt)
}

// stats returns counts of cache hits and misses
func (c *CachedVendor) stats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.hits, c.misses
}

func (c *CachedVendor) record(result string) {
	c.mutex.Lock()
	if result == "hit" {
		c.hits++
	} else {
		c.misses++
	}
	c.mutex.Unlock()
	c.metrics.CacheTotal.WithLabelValues(result).Inc()
}

// Ensure CachedVendor implements the Vendor interface
var _ datasource.Vendor = (*CachedVendor)(nil)
