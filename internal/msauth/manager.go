package msauth

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/mbeutel/teamscribe/internal/config"
	"github.com/mbeutel/teamscribe/internal/credentials"
	"github.com/mbeutel/teamscribe/internal/instrumentation"
	"github.com/mbeutel/teamscribe/internal/logging"
)

const (
	// ExpiryBuffer is how long before absolute expiry a stored access
	// token is already treated as expired.
	ExpiryBuffer = 120 * time.Second

	// DefaultAuthTimeout bounds the wait for the browser round trip.
	DefaultAuthTimeout = 5 * time.Minute

	// fallbackTokenLifetime is used when the token endpoint omits
	// expires_in. Azure AD access tokens live about an hour.
	fallbackTokenLifetime = time.Hour
)

// Manager owns the token lifecycle: it hands out a usable access token for
// every outgoing call, refreshing or re-authorizing as needed.
type Manager struct {
	cfg      *config.Config
	store    *credentials.Store
	endpoint oauth2.Endpoint
	timeout  time.Duration
	now      func() time.Time
	openURL  func(string)
	metrics  *instrumentation.Metrics
}

// NewManager creates a Manager for the given client registration and
// credential store.
func NewManager(cfg *config.Config, store *credentials.Store) *Manager {
	return &Manager{
		cfg:      cfg,
		store:    store,
		endpoint: endpoints.AzureAD(cfg.TenantID),
		timeout:  DefaultAuthTimeout,
		now:      time.Now,
		openURL:  openBrowser,
		metrics:  &instrumentation.Metrics{},
	}
}

// SetMetrics installs a metrics recorder for auth and refresh attempts.
func (m *Manager) SetMetrics(metrics *instrumentation.Metrics) {
	if metrics != nil {
		m.metrics = metrics
	}
}

// AccessToken returns an access token usable right now. The decision is
// evaluated fresh on every call against the stored record:
//
//   - no record: run the interactive authorization flow
//   - record valid beyond the expiry buffer: return it unchanged
//   - record within or past the buffer: silent refresh, falling back to
//     interactive authorization when the refresh fails
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	rec, ok := m.store.Load()
	if !ok {
		fresh, err := m.Authorize(ctx)
		if err != nil {
			return "", err
		}
		return fresh.AccessToken, nil
	}

	if rec.ExpiresAt.After(m.now().Add(ExpiryBuffer)) {
		return rec.AccessToken, nil
	}

	if fresh, ok := m.refresh(ctx, rec); ok {
		return fresh.AccessToken, nil
	}

	fresh, err := m.Authorize(ctx)
	if err != nil {
		return "", err
	}
	return fresh.AccessToken, nil
}

// refresh exchanges the stored refresh token for a new credential record.
// It never returns an error: every failure path resolves to "no new
// credential", deleting the stale record so a later Load cannot hand out
// an unusable token.
func (m *Manager) refresh(ctx context.Context, rec *credentials.Record) (*credentials.Record, bool) {
	logger := logging.WithOperation(slog.Default(), "auth.refresh")

	conf := m.oauthConfig("")
	src := conf.TokenSource(m.tokenContext(ctx), &oauth2.Token{RefreshToken: rec.RefreshToken})

	tok, err := src.Token()
	if err != nil {
		m.metrics.RecordTokenRefresh(ctx, "failure")
		logger.Warn("silent token refresh failed, interactive sign-in required", logging.Err(err))
		if derr := m.store.Delete(); derr != nil {
			logger.Warn("failed to delete stale credentials", logging.Err(derr))
		}
		return nil, false
	}

	m.metrics.RecordTokenRefresh(ctx, "success")

	fresh := m.recordFromToken(tok)
	if fresh.RefreshToken == "" {
		// Azure AD rotates refresh tokens but is allowed to omit one.
		fresh.RefreshToken = rec.RefreshToken
	}
	if err := m.store.Save(fresh); err != nil {
		// The in-memory token is still usable for this invocation.
		logger.Warn("failed to persist refreshed credentials", logging.Err(err))
	}

	logger.Debug("access token refreshed",
		slog.Time("expires_at", fresh.ExpiresAt),
		slog.String("token", logging.SanitizeToken(fresh.AccessToken)))
	return fresh, true
}

func (m *Manager) oauthConfig(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     m.cfg.ClientID,
		ClientSecret: m.cfg.ClientSecret,
		Endpoint:     m.endpoint,
		RedirectURL:  redirectURL,
		Scopes:       Scopes,
	}
}

// tokenContext installs the HTTP client used for token endpoint calls.
// When a fixed redirect URL is configured, an Origin header derived from it
// is attached to every request; Azure AD requires this for SPA-registered
// client types.
func (m *Manager) tokenContext(ctx context.Context) context.Context {
	client := &http.Client{Timeout: 30 * time.Second}
	if origin := m.origin(); origin != "" {
		client.Transport = &originTransport{origin: origin}
	}
	return context.WithValue(ctx, oauth2.HTTPClient, client)
}

func (m *Manager) origin() string {
	if m.cfg.RedirectURL == "" {
		return ""
	}
	u, err := url.Parse(m.cfg.RedirectURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// recordFromToken assembles a credential record from a token response.
func (m *Manager) recordFromToken(tok *oauth2.Token) *credentials.Record {
	expiry := tok.Expiry
	if expiry.IsZero() {
		expiry = m.now().Add(fallbackTokenLifetime)
	}

	scope, _ := tok.Extra("scope").(string)

	return &credentials.Record{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    expiry,
		Scope:        scope,
	}
}

// originTransport adds a fixed Origin header to every outgoing request.
type originTransport struct {
	origin string
}

func (t *originTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Origin", t.origin)
	return http.DefaultTransport.RoundTrip(clone)
}
