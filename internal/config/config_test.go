package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("all variables set", func(t *testing.T) {
		t.Setenv(EnvClientID, "client-123")
		t.Setenv(EnvClientSecret, "secret")
		t.Setenv(EnvTenantID, "tenant-456")
		t.Setenv(EnvRedirectURL, "http://localhost:3000/callback")
		t.Setenv(EnvTimezone, "Europe/Berlin")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "client-123", cfg.ClientID)
		assert.Equal(t, "secret", cfg.ClientSecret)
		assert.Equal(t, "tenant-456", cfg.TenantID)
		assert.Equal(t, "http://localhost:3000/callback", cfg.RedirectURL)
		assert.Equal(t, "Europe/Berlin", cfg.Timezone)
		assert.False(t, cfg.IsPublicClient())
	})

	t.Run("missing required variables are all listed", func(t *testing.T) {
		t.Setenv(EnvClientID, "")
		t.Setenv(EnvTenantID, "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvClientID)
		assert.Contains(t, err.Error(), EnvTenantID)
	})

	t.Run("missing tenant only", func(t *testing.T) {
		t.Setenv(EnvClientID, "client-123")
		t.Setenv(EnvTenantID, "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvTenantID)
		if strings.Contains(err.Error(), EnvClientID+",") {
			t.Errorf("error should not list variables that are present: %v", err)
		}
	})

	t.Run("public client without secret", func(t *testing.T) {
		t.Setenv(EnvClientID, "client-123")
		t.Setenv(EnvClientSecret, "")
		t.Setenv(EnvTenantID, "tenant-456")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsPublicClient())
	})
}
