// Package gitlab is a minimal GitLab REST API client scoped to the
// endpoints needed for contribution tracking.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default client settings.
const (
	DefaultMaxRetries     = 3
	DefaultInitialBackoff = 500 * time.Millisecond
	DefaultTimeout        = 30 * time.Second
	DefaultPerPage        = 100
	DefaultPageCap        = 10

	apiPrefix = "/api/v4"
)

// Config holds client construction settings.
type Config struct {
	// BaseURL is the GitLab instance root, e.g. https://gitlab.com.
	BaseURL string

	// Token is sent as PRIVATE-TOKEN. Empty means anonymous access.
	Token string

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client

	// MaxRetries bounds retry attempts for retryable failures.
	MaxRetries int

	// InitialBackoff is the first retry delay, doubled per attempt.
	InitialBackoff time.Duration

	// PerPage is the page size for list endpoints.
	PerPage int

	// PageCap bounds how many pages a single listing will follow.
	PageCap int

	// Sleeper overrides the retry sleep behavior, used in tests.
	Sleeper sleepFunc
}

// WithDefaults fills zero values with defaults.
func (c Config) WithDefaults() Config {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = DefaultInitialBackoff
	}
	if c.PerPage <= 0 {
		c.PerPage = DefaultPerPage
	}
	if c.PageCap <= 0 {
		c.PageCap = DefaultPageCap
	}
	return c
}

// Client talks to a single GitLab instance.
type Client struct {
	cfg     Config
	baseURL *url.URL
}

// NewClient builds a Client for the configured instance.
func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.WithDefaults()
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	parsed, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", cfg.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", cfg.BaseURL)
	}

	return &Client{cfg: cfg, baseURL: parsed}, nil
}

// apiURL builds a full URL for an API path plus query parameters.
func (c *Client) apiURL(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + apiPrefix + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// getJSON performs a GET against a full URL, decodes the body into out, and
// returns the response headers for pagination. Retryable failures are retried
// with exponential backoff.
func (c *Client) getJSON(ctx context.Context, fullURL string, out any) (http.Header, error) {
	var header http.Header

	err := doWithRetry(ctx, c.cfg.MaxRetries, c.cfg.InitialBackoff, c.cfg.Sleeper, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if c.cfg.Token != "" {
			req.Header.Set("PRIVATE-TOKEN", c.cfg.Token)
		}

		resp, err := c.cfg.HTTPClient.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return NewStatusError(resp.StatusCode, fmt.Errorf("GET %s: %s", fullURL, strings.TrimSpace(string(body))))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response from %s: %w", fullURL, err)
		}
		header = resp.Header
		return nil
	})
	if err != nil {
		return nil, err
	}
	return header, nil
}

// getOne fetches a single object endpoint.
func getOne[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	var out T
	if _, err := c.getJSON(ctx, c.apiURL(path, query), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// fetchAll fetches a list endpoint and follows Link rel="next" headers
// until the results are exhausted or the page cap is reached.
func fetchAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("per_page", fmt.Sprintf("%d", c.cfg.PerPage))

	var all []T
	next := c.apiURL(path, query)
	for page := 0; page < c.cfg.PageCap && next != ""; page++ {
		var batch []T
		header, err := c.getJSON(ctx, next, &batch)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		next = extractNextLink(header.Get("Link"))
	}
	return all, nil
}

// extractNextLink pulls the rel="next" URL out of an RFC 5988 Link header.
// It returns an empty string when there is no next page.
func extractNextLink(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		if strings.TrimSpace(section[1]) != `rel="next"` {
			continue
		}
		link := strings.TrimSpace(section[0])
		return strings.Trim(link, "<>")
	}
	return ""
}
