package msauth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeutel/teamscribe/internal/config"
	"github.com/mbeutel/teamscribe/internal/credentials"
)

func seedRecord(t *testing.T, store *credentials.Store, expiresIn time.Duration) *credentials.Record {
	t.Helper()
	rec := &credentials.Record{
		AccessToken:  "stored-access-token",
		RefreshToken: "stored-refresh-token",
		ExpiresAt:    time.Now().Add(expiresIn),
		Scope:        "Calendars.Read offline_access",
	}
	require.NoError(t, store.Save(rec))
	return rec
}

func TestAccessTokenValidRecordReturnedUnchanged(t *testing.T) {
	te := &tokenEndpoint{}
	srv := httptest.NewServer(te.handler())
	defer srv.Close()

	m, store := newFlowManager(t, srv.URL)
	seedRecord(t, store, time.Hour)

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored-access-token", token)
	assert.Empty(t, te.exchanges(), "a valid token must not touch the token endpoint")
}

func TestAccessTokenWithinExpiryBufferRefreshes(t *testing.T) {
	te := &tokenEndpoint{}
	srv := httptest.NewServer(te.handler())
	defer srv.Close()

	m, store := newFlowManager(t, srv.URL)
	// 90 seconds remaining is inside the 120 second buffer: expired.
	seedRecord(t, store, 90*time.Second)

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-access-token", token)

	exchanges := te.exchanges()
	require.Len(t, exchanges, 1)
	assert.Equal(t, "refresh_token", exchanges[0].Get("grant_type"))
	assert.Equal(t, "stored-refresh-token", exchanges[0].Get("refresh_token"))

	// The refreshed record is persisted wholesale.
	stored, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "new-access-token", stored.AccessToken)
	assert.Equal(t, "new-refresh-token", stored.RefreshToken)
}

func TestAccessTokenPastExpiryRefreshes(t *testing.T) {
	te := &tokenEndpoint{}
	srv := httptest.NewServer(te.handler())
	defer srv.Close()

	m, store := newFlowManager(t, srv.URL)
	seedRecord(t, store, -time.Hour)

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-access-token", token)
}

func TestRefreshFailureDeletesStaleRecord(t *testing.T) {
	te := &tokenEndpoint{status: 400}
	srv := httptest.NewServer(te.handler())
	defer srv.Close()

	m, store := newFlowManager(t, srv.URL)
	rec := seedRecord(t, store, 30*time.Second)

	fresh, ok := m.refresh(context.Background(), rec)
	assert.False(t, ok)
	assert.Nil(t, fresh)

	// A later load must not yield the stale record.
	_, loaded := store.Load()
	assert.False(t, loaded)
}

func TestAccessTokenRefreshFailureFallsBackToInteractive(t *testing.T) {
	// First token endpoint call (refresh) fails, second (code exchange)
	// succeeds, driven by grant_type.
	te := &tokenEndpoint{}
	inner := te.handler()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		if form.Get("grant_type") == "refresh_token" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		inner.ServeHTTP(w, r)
	}))
	defer srv.Close()

	m, store := newFlowManager(t, srv.URL)
	m.openURL = browserStub(t, nil)
	seedRecord(t, store, 10*time.Second)

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-access-token", token)
}

func TestAccessTokenNoRecordRunsInteractiveFlow(t *testing.T) {
	te := &tokenEndpoint{}
	srv := httptest.NewServer(te.handler())
	defer srv.Close()

	m, store := newFlowManager(t, srv.URL)
	m.openURL = browserStub(t, nil)

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-access-token", token)

	_, ok := store.Load()
	assert.True(t, ok)
}

func TestRefreshKeepsOldRefreshTokenWhenOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"rotated-access","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	m, store := newFlowManager(t, srv.URL)
	rec := seedRecord(t, store, 10*time.Second)

	fresh, ok := m.refresh(context.Background(), rec)
	require.True(t, ok)
	assert.Equal(t, "rotated-access", fresh.AccessToken)
	assert.Equal(t, "stored-refresh-token", fresh.RefreshToken)
}

func TestOriginDerivation(t *testing.T) {
	store, err := credentials.NewStoreAt(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name        string
		redirectURL string
		want        string
	}{
		{"no redirect URL", "", ""},
		{"with port", "http://localhost:3000/callback", "http://localhost:3000"},
		{"https", "https://app.example.com/auth/cb", "https://app.example.com"},
		{"garbage", "::::", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(&config.Config{
				ClientID:    "c",
				TenantID:    "t",
				RedirectURL: tt.redirectURL,
			}, store)
			assert.Equal(t, tt.want, m.origin())
		})
	}
}

func TestAzureEndpointDefault(t *testing.T) {
	store, err := credentials.NewStoreAt(t.TempDir())
	require.NoError(t, err)
	m := NewManager(&config.Config{ClientID: "c", TenantID: "contoso"}, store)

	assert.Contains(t, m.endpoint.AuthURL, "contoso")
	assert.Contains(t, m.endpoint.AuthURL, "/oauth2/v2.0/authorize")
	assert.Contains(t, m.endpoint.TokenURL, "/oauth2/v2.0/token")
}
