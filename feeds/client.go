package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Endpoint is one resolved upstream feed URL and its payload encoding.
type Endpoint struct {
	URL    string
	Format string // FormatProtobuf or FormatJSON
}

// ErrUnknownEndpoint is returned when a (family, id) pair has no configured
// endpoint. This is a programming/configuration error and is never retried.
type ErrUnknownEndpoint struct {
	Family Family
	FeedID string
}

func (e *ErrUnknownEndpoint) Error() string {
	return fmt.Sprintf("no endpoint configured for feed %s/%s", e.Family, e.FeedID)
}

// FetchError is raised for any non-success upstream response.
type FetchError struct {
	Family Family
	FeedID string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("HTTP %d fetching feed %s/%s", e.Status, e.Family, e.FeedID)
}

// Client fetches upstream feeds with API-key authentication and a cheap
// metadata-only probe to detect change before a full fetch.
type Client struct {
	httpClient   *http.Client
	apiKeyHeader string
	apiKey       string
	endpoints    map[string]Endpoint
}

// NewClient creates a feed client. Endpoints are registered afterwards from
// configuration; an unregistered (family, id) pair fails fast on use.
func NewClient(timeout time.Duration, apiKeyHeader, apiKey string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		apiKeyHeader: apiKeyHeader,
		apiKey:       apiKey,
		endpoints:    map[string]Endpoint{},
	}
}

// Register adds an endpoint for a (family, id) pair.
func (c *Client) Register(family Family, id string, ep Endpoint) {
	if ep.Format == "" {
		ep.Format = FormatProtobuf
	}
	c.endpoints[endpointKey(family, id)] = ep
}

func endpointKey(family Family, id string) string {
	return string(family) + "/" + id
}

func (c *Client) endpoint(family Family, id string) (Endpoint, error) {
	ep, ok := c.endpoints[endpointKey(family, id)]
	if !ok {
		return Endpoint{}, &ErrUnknownEndpoint{Family: family, FeedID: id}
	}
	return ep, nil
}

func (c *Client) newRequest(ctx context.Context, method, url, format string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}
	if format == FormatJSON {
		req.Header.Set("Accept", "application/json")
	}
	return req, nil
}

// CheckModified issues a metadata-only request and compares the returned
// validator against the known one. Probe-level transport failures fail open:
// the feed is reported modified so no update is ever missed. Only an
// unconfigured endpoint returns an error.
func (c *Client) CheckModified(ctx context.Context, family Family, id string, known Validator) (ProbeResult, error) {
	ep, err := c.endpoint(family, id)
	if err != nil {
		return ProbeResult{}, err
	}
	req, err := c.newRequest(ctx, http.MethodHead, ep.URL, ep.Format)
	if err != nil {
		return ProbeResult{Modified: true}, nil
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ProbeResult{Modified: true}, nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ProbeResult{Modified: true}, nil
	}
	current := Validator{
		LastModified: resp.Header.Get("Last-Modified"),
		ETag:         resp.Header.Get("ETag"),
	}
	if known.IsZero() || current.IsZero() {
		return ProbeResult{Modified: true, Validator: current}, nil
	}
	modified := current.LastModified != known.LastModified
	if current.ETag != "" && known.ETag != "" {
		modified = modified || current.ETag != known.ETag
	}
	return ProbeResult{Modified: modified, Validator: current}, nil
}

// Fetch performs the authenticated full request for the resolved endpoint.
// Any non-success response raises a *FetchError carrying the HTTP status;
// there is no fallback path.
func (c *Client) Fetch(ctx context.Context, family Family, id string) ([]byte, Validator, string, error) {
	ep, err := c.endpoint(family, id)
	if err != nil {
		return nil, Validator{}, "", err
	}
	req, err := c.newRequest(ctx, http.MethodGet, ep.URL, ep.Format)
	if err != nil {
		return nil, Validator{}, "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, Validator{}, "", fmt.Errorf("fetch feed %s/%s: %w", family, id, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, Validator{}, "", &FetchError{Family: family, FeedID: id, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Validator{}, "", fmt.Errorf("read feed %s/%s: %w", family, id, err)
	}
	v := Validator{
		LastModified: resp.Header.Get("Last-Modified"),
		ETag:         resp.Header.Get("ETag"),
	}
	return data, v, ep.Format, nil
}
