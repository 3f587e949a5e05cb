// ABOUTME: JSON-over-HTTP client bound to one endpoint with fixed headers and a per-call timeout
// ABOUTME: One attempt per call; non-2xx statuses come back as *ai.APIError

package httputil

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	pilog "github.com/mauromedda/automate-go/internal/log"
	"github.com/mauromedda/automate-go/pkg/ai"
)

const (
	// DefaultTimeout bounds a whole call including reading the response body.
	DefaultTimeout = 5 * time.Minute

	maxErrorBody = 4096
)

// Client posts JSON documents to paths under a base URL.
type Client struct {
	http    *http.Client
	baseURL string
	header  http.Header
}

// NewClient creates a client for baseURL. Surrounding whitespace and trailing
// slashes are trimmed; any path on the base URL (e.g. "/v1") is kept.
// A zero timeout selects DefaultTimeout.
func NewClient(baseURL string, headers map[string]string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	h := make(http.Header, len(headers)+1)
	h.Set("Content-Type", "application/json")
	for k, v := range headers {
		h.Set(k, v)
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		header:  h,
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostJSON encodes in, posts it to path and decodes a 2xx body into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header = c.header.Clone()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	pilog.Debug("http: POST %s%s → %d (%s, %d bytes sent)",
		c.baseURL, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ai.APIError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
