package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxBodySize caps how much of a vendor response is read.
const maxBodySize = 1 << 20

// Get issues a single GET to endpoint and returns the body of a 2xx JSON response.
// Non-2xx responses are returned as *StatusError.
func Get(ctx context.Context, client *http.Client, vendor, endpoint string, params url.Values) (RawPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Vendor: vendor, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to parse response: %w", ErrMalformedPayload)
	}

	return RawPayload(body), nil
}
