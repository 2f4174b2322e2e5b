package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ConfigFileName is the name of the telemetry state file, stored under
// ~/.cothink separate from the project config.
const ConfigFileName = "telemetry.json"

// Config holds the telemetry state. Telemetry is off until the user
// explicitly enables it.
type Config struct {
	Enabled bool `json:"enabled"`

	// ConsentAsked is set once the user has made a choice, so the CLI never
	// prompts twice.
	ConsentAsked bool `json:"consent_asked"`

	// AnonymousID is a random UUID generated on first load. It carries no
	// personally identifiable information.
	AnonymousID string `json:"anonymous_id"`
}

var (
	configDirOverride   string
	configDirOverrideMu sync.RWMutex
)

// SetConfigDir overrides the telemetry config directory (tests). Empty
// resets to the default.
func SetConfigDir(dir string) {
	configDirOverrideMu.Lock()
	defer configDirOverrideMu.Unlock()
	configDirOverride = dir
}

func configDir() (string, error) {
	configDirOverrideMu.RLock()
	override := configDirOverride
	configDirOverrideMu.RUnlock()

	if override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".cothink"), nil
}

// ConfigPath returns the full path to the telemetry state file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LoadConfig reads the telemetry state from disk. A missing file yields
// defaults with a fresh anonymous ID.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.AnonymousID = uuid.New().String()
			return cfg, nil
		}
		return nil, fmt.Errorf("read telemetry config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse telemetry config: %w", err)
	}
	if cfg.AnonymousID == "" {
		cfg.AnonymousID = uuid.New().String()
	}
	return cfg, nil
}

// Save writes the telemetry state with owner-only permissions.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create telemetry config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal telemetry config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write telemetry config: %w", err)
	}
	return nil
}

// Enable turns telemetry on and records consent.
func (c *Config) Enable() {
	c.Enabled = true
	c.ConsentAsked = true
}

// Disable turns telemetry off and records consent.
func (c *Config) Disable() {
	c.Enabled = false
	c.ConsentAsked = true
}

// IsEnabled reports whether telemetry is on.
func (c *Config) IsEnabled() bool {
	return c.Enabled
}
