package msauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/mbeutel/teamscribe/internal/credentials"
	"github.com/mbeutel/teamscribe/internal/logging"
)

const defaultCallbackPath = "/callback"

// callbackOutcome is the single result of one browser round trip: exactly
// one of code or err is set, and it is delivered exactly once.
type callbackOutcome struct {
	code string
	err  error
}

// Authorize runs one interactive delegated-authorization round trip and
// returns a fresh, persisted credential record.
//
// The local callback listener is released on every exit path: success,
// every failure branch, and timeout.
func (m *Manager) Authorize(ctx context.Context) (rec *credentials.Record, err error) {
	logger := logging.WithOperation(slog.Default(), "auth.authorize")
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		m.metrics.RecordAuth(ctx, result)
	}()

	ln, redirectURL, callbackPath, err := m.bindListener()
	if err != nil {
		return nil, err
	}
	defer ln.Close()

	state, err := randomState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}
	verifier := oauth2.GenerateVerifier()

	conf := m.oauthConfig(redirectURL)
	authURL := conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))

	results := make(chan callbackOutcome, 1)
	srv := &http.Server{Handler: callbackHandler(callbackPath, state, results)}
	go func() {
		if serveErr := srv.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) && !errors.Is(serveErr, net.ErrClosed) {
			logger.Debug("callback listener stopped", logging.Err(serveErr))
		}
	}()
	defer srv.Close()

	m.openURL(authURL)
	logger.Info("waiting for browser sign-in", slog.String("redirect_url", redirectURL))

	var code string
	select {
	case out := <-results:
		if out.err != nil {
			return nil, out.err
		}
		code = out.code
	case <-time.After(m.timeout):
		return nil, fmt.Errorf("Authentication timed out after %s.", timeoutPhrase(m.timeout))
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	tok, err := conf.Exchange(m.tokenContext(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, fmt.Errorf("token exchange failed with status %d: %s",
				retrieveErr.Response.StatusCode, strings.TrimSpace(string(retrieveErr.Body)))
		}
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	rec = m.recordFromToken(tok)
	if err := m.store.Save(rec); err != nil {
		return nil, err
	}

	logger.Info("signed in",
		slog.Time("expires_at", rec.ExpiresAt),
		slog.String("token", logging.SanitizeToken(rec.AccessToken)))
	return rec, nil
}

// bindListener acquires the local callback socket. A configured redirect
// URL pins the port and path; otherwise an ephemeral OS-assigned port is
// used with the default callback path.
func (m *Manager) bindListener() (net.Listener, string, string, error) {
	if m.cfg.RedirectURL != "" {
		u, err := url.Parse(m.cfg.RedirectURL)
		if err != nil {
			return nil, "", "", fmt.Errorf("invalid redirect URL %q: %w", m.cfg.RedirectURL, err)
		}
		port := u.Port()
		if port == "" {
			if u.Scheme == "https" {
				port = "443"
			} else {
				port = "80"
			}
		}
		host := u.Hostname()
		if host == "" {
			host = "localhost"
		}
		path := u.Path
		if path == "" {
			path = defaultCallbackPath
		}

		ln, err := net.Listen("tcp", net.JoinHostPort(host, port))
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to bind callback listener on %s:%s: %w", host, port, err)
		}
		return ln, m.cfg.RedirectURL, path, nil
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to bind callback listener: %w", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	redirectURL := fmt.Sprintf("http://localhost:%d%s", port, defaultCallbackPath)
	return ln, redirectURL, defaultCallbackPath, nil
}

// callbackHandler accepts exactly one meaningful request on the callback
// path. The state check always precedes code inspection so a forged
// callback can never reach the exchange step.
func callbackHandler(path, state string, results chan<- callbackOutcome) http.Handler {
	var once sync.Once
	deliver := func(out callbackOutcome) {
		once.Do(func() { results <- out })
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}

		q := r.URL.Query()

		if errCode := q.Get("error"); errCode != "" {
			desc := q.Get("error_description")
			if desc == "" {
				desc = errCode
			}
			writeCallbackPage(w, http.StatusBadRequest, "Sign-in failed", desc)
			deliver(callbackOutcome{err: fmt.Errorf("Authentication failed: %s", desc)})
			return
		}

		if q.Get("state") != state {
			writeCallbackPage(w, http.StatusBadRequest, "Sign-in failed", "State mismatch.")
			deliver(callbackOutcome{err: errors.New("State mismatch in OAuth callback")})
			return
		}

		code := q.Get("code")
		if code == "" {
			writeCallbackPage(w, http.StatusBadRequest, "Sign-in failed", "Missing authorization code.")
			deliver(callbackOutcome{err: errors.New("No authorization code in callback")})
			return
		}

		writeCallbackPage(w, http.StatusOK, "Signed in",
			"You can close this window and return to your terminal.")
		deliver(callbackOutcome{code: code})
	})
}

func writeCallbackPage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<html><body><h1>%s</h1><p>%s</p></body></html>", title, message)
}

// randomState generates the anti-forgery state value for one authorization
// session.
func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// timeoutPhrase renders a timeout for the user-facing error message.
// Whole minutes read as "N minutes"; anything else uses Go duration
// syntax.
func timeoutPhrase(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		if n := int(d / time.Minute); n != 1 {
			return fmt.Sprintf("%d minutes", n)
		}
		return "1 minute"
	}
	return d.String()
}
