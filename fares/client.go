package fares

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/transit-journeys/journey"
)

// DefaultTimeout bounds every call to the fare source.
const DefaultTimeout = 5 * time.Second

// optionsResponse mirrors the fare source's trip-options payload. The
// source is unversioned; an error list can be embedded in an otherwise
// successful response and counts as a failure.
type optionsResponse struct {
	Options []journey.EnrichmentOption `json:"options"`
	Errors  []string                   `json:"errors,omitempty"`
}

// Client is the guarded HTTP client for the secondary fare source. It never
// returns an error to its caller: every failure path degrades to a nil
// result, leaving "continue without enrichment" to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *CircuitBreaker
}

// NewClient creates a fare client. timeout falls back to DefaultTimeout;
// breaker falls back to a default-configured one.
func NewClient(baseURL string, timeout time.Duration, breaker *CircuitBreaker) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if breaker == nil {
		breaker = NewCircuitBreaker(0, 0)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
	}
}

// FetchOptions fetches enrichment candidates for one origin/destination
// request. Returns nil when the source is unconfigured, the breaker is
// open, or the call fails in any way.
func (c *Client) FetchOptions(ctx context.Context, q journey.TripQuery) []journey.EnrichmentOption {
	if c.baseURL == "" {
		return nil
	}
	if !c.breaker.Allow() {
		log.Printf("fares: source unavailable, short-circuiting")
		return nil
	}
	body, err := json.Marshal(q)
	if err != nil {
		c.fail(err)
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/trip-options", bytes.NewReader(body))
	if err != nil {
		c.fail(err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.fail(err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		c.fail(fmt.Errorf("HTTP %d from fare source", resp.StatusCode))
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.fail(err)
		return nil
	}
	var out optionsResponse
	if err := json.Unmarshal(data, &out); err != nil {
		c.fail(fmt.Errorf("decode fare response: %w", err))
		return nil
	}
	if len(out.Errors) > 0 {
		c.fail(errors.New(strings.Join(out.Errors, "; ")))
		return nil
	}
	c.breaker.RecordSuccess()
	return out.Options
}

func (c *Client) fail(err error) {
	c.breaker.RecordFailure()
	log.Printf("fares: %v", err)
}
