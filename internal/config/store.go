package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cast"
)

// File names and modes inside the config directory.
const (
	AppDirName         = "harbor-wave"
	SettingsFileName   = "harbor-wave.cfg"
	CredentialFileName = "api-key"

	dirMode        fs.FileMode = 0o750
	settingsMode   fs.FileMode = 0o640
	credentialMode fs.FileMode = 0o600
)

// Environment variables consulted when no credential file exists.
var credentialEnvVars = []string{"HARBOR_WAVE_API_KEY", "DIGITALOCEAN_TOKEN"}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() string {
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// Store reads and writes settings and the credential.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. An empty dir uses DefaultDir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// SettingsPath returns the settings file path.
func (s *Store) SettingsPath() string { return filepath.Join(s.dir, SettingsFileName) }

// CredentialPath returns the credential file path.
func (s *Store) CredentialPath() string { return filepath.Join(s.dir, CredentialFileName) }

// Touch creates the config directory and a default settings file if missing.
// An existing settings file is left untouched.
func (s *Store) Touch() error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if _, err := os.Stat(s.SettingsPath()); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat settings file: %w", err)
	}
	return s.writeSettings(Default())
}

// Load reads settings and the credential. Missing files are created with
// defaults, and items missing from the settings file are filled in with
// their defaults and written back.
func (s *Store) Load() (*Config, error) {
	if err := s.Touch(); err != nil {
		return nil, err
	}

	// #nosec G304
	data, err := os.ReadFile(s.SettingsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	cfg, missing, err := decodeSettings(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.SettingsPath(), err)
	}
	if missing {
		if err := s.writeSettings(cfg); err != nil {
			return nil, err
		}
	}

	key, err := s.readCredential()
	if err != nil {
		return nil, err
	}
	cfg.APIKey = key

	return cfg, nil
}

// Save writes settings and, when set, the credential.
func (s *Store) Save(cfg *Config) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := s.writeSettings(cfg); err != nil {
		return err
	}
	return s.SaveCredential(cfg.APIKey)
}

// SaveSettings writes only the settings file; the credential is untouched.
func (s *Store) SaveSettings(cfg *Config) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	return s.writeSettings(cfg)
}

// SaveCredential writes the credential file. An empty key removes it.
func (s *Store) SaveCredential(key string) error {
	if key == "" {
		if err := os.Remove(s.CredentialPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove credential file: %w", err)
		}
		return nil
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(s.CredentialPath(), []byte(key), credentialMode); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(s.CredentialPath(), credentialMode); err != nil {
		return fmt.Errorf("failed to restrict credential file: %w", err)
	}
	return nil
}

func (s *Store) ensureDir() error {
	info, err := os.Stat(s.dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("config path %s exists and is not a directory", s.dir)
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(s.dir, dirMode); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("failed to stat config directory: %w", err)
	}
}

func (s *Store) writeSettings(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.SettingsPath(), data, settingsMode); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func (s *Store) readCredential() (string, error) {
	// #nosec G304
	data, err := os.ReadFile(s.CredentialPath())
	switch {
	case err == nil:
		return strings.TrimSpace(string(data)), nil
	case errors.Is(err, fs.ErrNotExist):
		for _, env := range credentialEnvVars {
			if v := os.Getenv(env); v != "" {
				return strings.TrimSpace(v), nil
			}
		}
		return "", nil
	default:
		return "", fmt.Errorf("could not read API key from %s, check permissions: %w", s.CredentialPath(), err)
	}
}

// decodeSettings runs every stored value through its item's typed setter so
// hand-edited files ("1" vs 1, "true" vs true) load the same way `set` does.
func decodeSettings(data []byte) (*Config, bool, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, err
	}

	cfg := Default()
	missing := false
	for _, it := range items {
		if it.Secret {
			continue
		}
		v, ok := raw[it.Name]
		if !ok || v == nil {
			missing = true
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %s: %v", ErrInvalidValue, it.Name, err)
		}
		if err := it.set(cfg, s); err != nil {
			return nil, false, err
		}
	}
	return cfg, missing, nil
}
