package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeutel/teamscribe/internal/config"
)

func newTestContext(t *testing.T) *ServerContext {
	t.Helper()
	t.Setenv("TEAMSCRIBE_CONFIG_DIR", t.TempDir())

	cfg := &config.Config{
		ClientID: "client-id",
		TenantID: "common",
		Timezone: "Europe/Berlin",
	}

	sc, err := NewServerContext(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestNewServerContextWiresClients(t *testing.T) {
	sc := newTestContext(t)

	assert.NotNil(t, sc.Auth())
	assert.NotNil(t, sc.Calendar())
	assert.NotNil(t, sc.Transcripts())
	assert.NotNil(t, sc.Mail())
	assert.NotNil(t, sc.CredentialStore())
	assert.NotNil(t, sc.Metrics())
	assert.Equal(t, "Europe/Berlin", sc.Config().Timezone)
}

func TestShutdownCancelsContext(t *testing.T) {
	sc := newTestContext(t)

	require.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("server context not cancelled after shutdown")
	}

	// Second call is a no-op.
	assert.NoError(t, sc.Shutdown())
}

func TestMetricsServerRequiresEnabledProvider(t *testing.T) {
	_, err := NewMetricsServer(MetricsServerConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider is required")
}
