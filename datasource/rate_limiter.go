package datasource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tn-weather/models"

	"golang.org/x/time/rate"
)

// ErrThrottled reports a fetch that never reached the vendor because the
// local token bucket had no token before the caller's deadline.
var ErrThrottled = errors.New("rate limit wait canceled")

// RateLimitedVendor wraps a Vendor with a token bucket.
// A wait that would outlast the caller's deadline fails immediately.
type RateLimitedVendor struct {
	vendor  Vendor
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedVendor creates a new rate limited vendor
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedVendor(vendor Vendor, rps float64, burst int) *RateLimitedVendor {
	return &RateLimitedVendor{
		vendor:  vendor,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", vendor.Name()),
	}
}

// Fetch waits for limiter permission, then forwards to the underlying vendor
func (r *RateLimitedVendor) Fetch(ctx context.Context, city string) (RawPayload, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThrottled, err)
	}
	return r.vendor.Fetch(ctx, city)
}

// Normalize forwards to the underlying vendor
func (r *RateLimitedVendor) Normalize(payload RawPayload, city string, fetchedAt time.Time) models.WeatherRecord {
	return r.vendor.Normalize(payload, city, fetchedAt)
}

// Name returns the vendor name
func (r *RateLimitedVendor) Name() string {
	return r.name
}

var _ Vendor = (*RateLimitedVendor)(nil)
