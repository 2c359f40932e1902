package esi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public ESI endpoint.
const DefaultBaseURL = "https://esi.evetech.net/latest"

// Options configures a Client. Zero values fall back to the defaults used by NewClient.
type Options struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxConcurrent     int
	HTTPClient        *http.Client
}

// Client is a rate-limited ESI HTTP client. It is safe for concurrent use and
// is meant to be created once per process.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	sem       chan struct{}
}

// NewClient creates an ESI client. The underlying http.Client timeout bounds every
// request, so a stalled call surfaces as an error instead of blocking forever.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "eve-pricebot/1.0 (github.com)"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 20
	}
	if opts.Burst <= 0 {
		opts.Burst = int(opts.RequestsPerSecond)
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 20
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		http:      hc,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		sem:       make(chan struct{}, opts.MaxConcurrent),
	}
}

// HealthCheck pings ESI to verify connectivity.
func (c *Client) HealthCheck(ctx context.Context) bool {
	var status struct {
		Players int `json:"players"`
	}
	return c.GetJSON(ctx, "/status/", nil, &status) == nil
}

// GetJSON issues a GET against path (relative to the base URL) and decodes JSON into dst.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, dst interface{}) error {
	_, err := c.do(ctx, http.MethodGet, path, query, nil, dst)
	return err
}

// PostJSON issues a POST with a JSON body and decodes the JSON response into dst.
func (c *Client) PostJSON(ctx context.Context, path string, body, dst interface{}) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body, dst)
	return err
}

func (c *Client) endpoint(path string, query url.Values) string {
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	q.Set("datasource", "tranquility")
	return c.baseURL + path + "?" + q.Encode()
}

// do performs one request. It returns the response headers so callers can read
// pagination metadata. Non-2xx statuses are returned as *StatusError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dst interface{}) (http.Header, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-c.sem }()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	u := c.endpoint(path, query)
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.Header, &StatusError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return resp.Header, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return resp.Header, nil
}

// pagesHeader parses the X-Pages header, returning 0 when it is absent or invalid.
func pagesHeader(h http.Header) int {
	if h == nil {
		return 0
	}
	n, err := strconv.Atoi(h.Get("X-Pages"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
