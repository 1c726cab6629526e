// Package upstream performs the outbound HTTP requests against the
// third-party weather providers. One GET per call: no retries, no
// caching, no breaker. Failures are logged to the diagnostic channel and
// returned as errors for the caller to translate into fallback text.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nimbusmcp/nimbus/internal/logging"
)

// Client wraps a single http.Client with the fixed header set the
// providers expect.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// New returns a Client whose requests are bounded by timeout.
func New(timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// GetJSON issues a GET against rawURL with the given query parameters and
// decodes the JSON response into out. List-valued parameters must already
// be comma-joined by the caller, the convention the Open-Meteo endpoints
// use. Any transport error, non-2xx status, or undecodable body is
// returned as an error.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	target := rawURL
	if len(params) > 0 {
		target = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		logging.Errorf("GET %s -> %v", rawURL, err)
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Errorf("GET %s -> %v", rawURL, err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Errorf("GET %s -> status %s", rawURL, resp.Status)
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logging.Errorf("GET %s -> decode: %v", rawURL, err)
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
