package datasource

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrMalformedPayload is returned when a 2xx response body is not JSON.
var ErrMalformedPayload = errors.New("body is not valid JSON")

// StatusError reports a non-2xx vendor response.
type StatusError struct {
	Vendor     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Vendor, e.StatusCode, e.Body)
}

// StatusCode returns the vendor HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether the vendor rejected the credential.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsRateLimited reports whether the vendor throttled the request.
func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}

// IsTimeout reports whether err came from a deadline or a client timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
