package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mbeutel/teamscribe/internal/logging"
)

const (
	// BaseURL is the stable Graph API surface.
	BaseURL = "https://graph.microsoft.com/v1.0"

	// BetaURL is the preview surface offering endpoints not yet available
	// on the stable one.
	BetaURL = "https://graph.microsoft.com/beta"

	fallbackTimezone = "UTC"

	requestTimeout = 60 * time.Second
)

// Recorder receives one measurement per Graph request. Status is the HTTP
// status code, or 0 when the request never reached the service.
type Recorder interface {
	RecordGraphRequest(ctx context.Context, surface string, status int, duration time.Duration)
}

// RequestOptions selects the API surface and header behavior for one call.
type RequestOptions struct {
	// Beta routes the request to the preview surface.
	Beta bool

	// NoTimezone suppresses the Prefer timezone header.
	NoTimezone bool
}

// ClientConfig configures a Graph client.
type ClientConfig struct {
	// Timezone overrides the IANA timezone sent in the Prefer header.
	// Empty means resolve the host's local timezone.
	Timezone string

	// BaseURL and BetaURL override the Graph surfaces. Used by tests;
	// empty means the production URLs.
	BaseURL string
	BetaURL string

	// HTTPClient overrides the transport. Nil means a default client
	// with a request timeout.
	HTTPClient *http.Client

	// Recorder observes request outcomes. Nil disables recording.
	Recorder Recorder
}

// Client is the authenticated fetch layer for Microsoft Graph.
type Client struct {
	httpClient *http.Client
	baseURL    string
	betaURL    string
	timezone   string
	recorder   Recorder
}

// NewClient creates a Graph client.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		httpClient: cfg.HTTPClient,
		baseURL:    cfg.BaseURL,
		betaURL:    cfg.BetaURL,
		timezone:   cfg.Timezone,
		recorder:   cfg.Recorder,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: requestTimeout}
	}
	if c.baseURL == "" {
		c.baseURL = BaseURL
	}
	if c.betaURL == "" {
		c.betaURL = BetaURL
	}
	return c
}

// Get performs an authenticated GET against the given API-relative path and
// decodes the JSON response into out. A nil return means success; any
// failure is an *APIError and never a panic or untyped error.
func (c *Client) Get(ctx context.Context, token, path string, opts RequestOptions, out any) *APIError {
	body, apiErr := c.do(ctx, token, path, opts)
	if apiErr != nil {
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Status: 0, Message: fmt.Sprintf("Failed to decode Graph response: %v", err)}
	}
	return nil
}

// GetRaw performs an authenticated GET and returns the response body as
// text. Used for non-JSON payloads such as subtitle-track transcript
// content.
func (c *Client) GetRaw(ctx context.Context, token, path string, opts RequestOptions) (string, *APIError) {
	body, apiErr := c.do(ctx, token, path, opts)
	if apiErr != nil {
		return "", apiErr
	}
	return string(body), nil
}

func (c *Client) do(ctx context.Context, token, path string, opts RequestOptions) ([]byte, *APIError) {
	base := c.baseURL
	surface := "stable"
	if opts.Beta {
		base = c.betaURL
		surface = "beta"
	}
	url := base + "/" + strings.TrimPrefix(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, networkError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	if !opts.NoTimezone {
		req.Header.Set("Prefer", fmt.Sprintf("outlook.timezone=%q", c.preferredTimezone()))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(ctx, surface, 0, time.Since(start))
		return nil, networkError(err)
	}
	c.record(ctx, surface, resp.StatusCode, time.Since(start))
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := classify(resp.StatusCode, string(body))
		slog.Debug("graph request failed",
			logging.Operation("graph.get"),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Bool("beta", opts.Beta))
		return nil, apiErr
	}

	return body, nil
}

func (c *Client) record(ctx context.Context, surface string, status int, duration time.Duration) {
	if c.recorder != nil {
		c.recorder.RecordGraphRequest(ctx, surface, status, duration)
	}
}

// preferredTimezone resolves the IANA timezone for the Prefer header: the
// configured override, else the host's local timezone, else UTC.
func (c *Client) preferredTimezone() string {
	if c.timezone != "" {
		return c.timezone
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	return fallbackTimezone
}
