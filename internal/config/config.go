package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by teamscribe.
const (
	EnvClientID     = "TEAMSCRIBE_CLIENT_ID"
	EnvClientSecret = "TEAMSCRIBE_CLIENT_SECRET"
	EnvTenantID     = "TEAMSCRIBE_TENANT_ID"
	EnvRedirectURL  = "TEAMSCRIBE_REDIRECT_URL"
	EnvTimezone     = "TEAMSCRIBE_TIMEZONE"
	EnvConfigDir    = "TEAMSCRIBE_CONFIG_DIR"
)

// Config holds the OAuth client registration and user preferences for one
// process. It is immutable after Load.
type Config struct {
	// ClientID is the Azure AD application (client) ID. Required.
	ClientID string

	// ClientSecret is set only for confidential client registrations.
	// When empty the PKCE-only public client path is used.
	ClientSecret string

	// TenantID scopes the authorize and token endpoint URLs. Required.
	TenantID string

	// RedirectURL, when set, overrides the dynamic-port callback address
	// and drives the Origin header sent to the token endpoint.
	RedirectURL string

	// Timezone overrides the IANA timezone sent in the Prefer header on
	// Graph requests. Empty means use the host's local timezone.
	Timezone string
}

// Load reads the configuration from the environment. An optional .env file
// in the working directory is loaded first; variables already present in
// the environment are not overridden by it.
//
// All missing required variables are reported in a single error so the
// user can fix them in one pass.
func Load() (*Config, error) {
	// Ignore a missing .env file; it is a development convenience only.
	_ = godotenv.Load()

	cfg := &Config{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		TenantID:     os.Getenv(EnvTenantID),
		RedirectURL:  os.Getenv(EnvRedirectURL),
		Timezone:     os.Getenv(EnvTimezone),
	}

	var missing []string
	if cfg.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if cfg.TenantID == "" {
		missing = append(missing, EnvTenantID)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// IsPublicClient reports whether the registration has no client secret and
// must therefore rely on PKCE alone.
func (c *Config) IsPublicClient() bool {
	return c.ClientSecret == ""
}
