// Where: internal/infra/config/global.go
// What: User config load/save.
// Why: Manage <user config dir>/apigen/config.yaml consistently.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/poruru/apigen/internal/infra/envutil"
	"github.com/poruru/apigen/internal/meta"
	"gopkg.in/yaml.v3"
)

// UserConfig represents the per-user configuration file.
type UserConfig struct {
	Version     int              `yaml:"version"`
	UpdateCheck UpdateCheckState `yaml:"update_check,omitempty"`
}

// UpdateCheckState caches the last release lookup.
type UpdateCheckState struct {
	LastChecked   time.Time `yaml:"last_checked,omitempty"`
	LatestVersion string    `yaml:"latest_version,omitempty"`
}

// DefaultUserConfig returns an initialized UserConfig with version set.
func DefaultUserConfig() UserConfig {
	return UserConfig{Version: 1}
}

var userConfigDir = os.UserConfigDir

// UserConfigPath returns the path to the user config file. APIGEN_CONFIG_DIR
// replaces the platform config directory.
func UserConfigPath() (string, error) {
	if dir := envutil.GetHostEnv("CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, meta.ConfigFile), nil
	}
	base, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, meta.ConfigDir, meta.ConfigFile), nil
}

// LoadUserConfig reads and parses the user configuration file.
func LoadUserConfig(path string) (UserConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return UserConfig{}, fmt.Errorf("read user config: %w", err)
	}

	cfg := DefaultUserConfig()
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return UserConfig{}, fmt.Errorf("decode user config: %w", err)
	}
	return cfg, nil
}

// LoadUserConfigOrDefault is LoadUserConfig that treats a missing file as
// the default configuration.
func LoadUserConfigOrDefault(path string) (UserConfig, error) {
	cfg, err := LoadUserConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultUserConfig(), nil
	}
	return cfg, err
}

// SaveUserConfig writes a UserConfig to the specified path.
func SaveUserConfig(path string, cfg UserConfig) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode user config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create user config dir: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write user config: %w", err)
	}
	return nil
}

// UpdateCheckStore persists UpdateCheckState inside the user config file.
type UpdateCheckStore struct {
	Path string
}

// LoadUpdateCheck returns the cached state, zero when nothing was stored yet.
func (s UpdateCheckStore) LoadUpdateCheck() (UpdateCheckState, error) {
	cfg, err := LoadUserConfigOrDefault(s.Path)
	if err != nil {
		return UpdateCheckState{}, err
	}
	return cfg.UpdateCheck, nil
}

// SaveUpdateCheck stores state, keeping the rest of the file.
func (s UpdateCheckStore) SaveUpdateCheck(state UpdateCheckState) error {
	cfg, err := LoadUserConfigOrDefault(s.Path)
	if err != nil {
		return err
	}
	cfg.UpdateCheck = state
	return SaveUserConfig(s.Path, cfg)
}
