// Package upstream is the outbound HTTP plumbing shared by the provider adapters: one
// rate-limited, time-bounded GET with JSON decoding and request metrics.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"flex_reviews/internal/adapters/observability"
)

// StatusError is returned for any non-200 response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream: bad status %d", e.Code)
	}
	return fmt.Sprintf("upstream: bad status %d: %s", e.Code, e.Body)
}

type Client struct {
	service string
	hc      *http.Client
	rl      *rate.Limiter
	timeout time.Duration
}

func New(service string, timeout time.Duration, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		service: service,
		hc:      &http.Client{Timeout: timeout},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		timeout: timeout,
	}
}

// HTTPClient exposes the underlying client so tests can swap its transport.
func (c *Client) HTTPClient() *http.Client { return c.hc }

// GetJSON performs a single GET bounded by the client timeout and decodes a 200 body
// into out. There are no retries; callers decide how to degrade on error.
func (c *Client) GetJSON(ctx context.Context, endpoint, url string, header http.Header, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	status := 0
	defer func() { observability.ObserveExternal(c.service, endpoint, status, time.Since(start)) }()

	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "flex-reviews/1.0")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode != http.StatusOK {
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", c.service, endpoint, err)
	}
	return nil
}

// Observe records a call that was skipped before reaching the network.
func (c *Client) Observe(endpoint string) {
	observability.ObserveExternal(c.service, endpoint, 0, 0)
}
