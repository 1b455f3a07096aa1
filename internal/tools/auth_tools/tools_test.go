package auth_tools

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeutel/teamscribe/internal/config"
	"github.com/mbeutel/teamscribe/internal/credentials"
	"github.com/mbeutel/teamscribe/internal/server"
)

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func newTestContext(t *testing.T) *server.ServerContext {
	t.Helper()
	t.Setenv("TEAMSCRIBE_CONFIG_DIR", t.TempDir())
	sc, err := server.NewServerContext(context.Background(), &config.Config{ClientID: "id", TenantID: "common"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestAuthStatusWithoutCredential(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleAuthStatus(context.Background(), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, toolText(t, result), "No Microsoft account connected")
}

func TestAuthStatusWithCredential(t *testing.T) {
	sc := newTestContext(t)
	require.NoError(t, sc.CredentialStore().Save(&credentials.Record{
		AccessToken:  "secret-access-token",
		RefreshToken: "rt",
		ExpiresAt:    time.Now().Add(time.Hour),
		Scope:        "Calendars.Read offline_access",
	}))

	result, err := handleAuthStatus(context.Background(), sc)
	require.NoError(t, err)

	text := toolText(t, result)
	assert.Contains(t, text, "Microsoft account connected")
	assert.Contains(t, text, "Calendars.Read")
	assert.NotContains(t, text, "secret-access-token", "access token must not leak into tool output")
}

func TestAuthResetDeletesCredential(t *testing.T) {
	sc := newTestContext(t)
	require.NoError(t, sc.CredentialStore().Save(&credentials.Record{
		AccessToken:  "at",
		RefreshToken: "rt",
		ExpiresAt:    time.Now().Add(time.Hour),
	}))

	result, err := handleAuthReset(context.Background(), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	_, ok := sc.CredentialStore().Load()
	assert.False(t, ok)

	// Resetting again is still a success.
	result, err = handleAuthReset(context.Background(), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestFormatStatusExpired(t *testing.T) {
	now := time.Now()
	rec := &credentials.Record{AccessToken: "at", ExpiresAt: now.Add(-time.Minute)}
	assert.Contains(t, formatStatus(rec, now), "expired")
}
