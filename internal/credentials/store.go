package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mbeutel/teamscribe/internal/config"
)

const (
	configSubdir   = "teamscribe"
	credentialFile = "credentials.json"
)

// Record is the persisted OAuth credential for the single local user.
type Record struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Scope        string    `json:"scope"`
}

// Store reads and writes the credential record under a fixed path inside
// the user configuration directory.
type Store struct {
	path string
}

// NewStore resolves the credential file location. TEAMSCRIBE_CONFIG_DIR
// overrides the platform default user-config directory.
func NewStore() (*Store, error) {
	dir := os.Getenv(config.EnvConfigDir)
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config directory: %w", err)
		}
		dir = filepath.Join(base, configSubdir)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	return &Store{path: filepath.Join(dir, credentialFile)}, nil
}

// NewStoreAt creates a store rooted at an explicit directory. Used by tests.
func NewStoreAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	return &Store{path: filepath.Join(dir, credentialFile)}, nil
}

// Path returns the location of the credential file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored record. The second return value is false when no
// usable record exists; a missing or malformed file is not an error.
func (s *Store) Load() (*Record, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false
	}
	if rec.AccessToken == "" || rec.RefreshToken == "" {
		return nil, false
	}

	return &rec, true
}

// Save writes the full record, replacing any prior content. The file is
// restricted to the owning user (0600).
func (s *Store) Save(rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	// WriteFile only applies the mode on creation; force it on overwrite.
	if err := os.Chmod(s.path, 0600); err != nil {
		return fmt.Errorf("failed to restrict credentials file permissions: %w", err)
	}

	return nil
}

// Delete removes the stored record. Deleting an absent record is a no-op.
func (s *Store) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credentials file: %w", err)
	}
	return nil
}
