// Package config persists user settings between runs as a JSON file.
//
// The file lives next to the user's other application data (DefaultPath) and
// is created with defaults on first load, so the CLI never needs a setup step.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
)

// Config holds the persisted splitting defaults.
type Config struct {
	SpeedWPM      float64 `json:"speed_wpm"`
	MinutesPerDay float64 `json:"minutes_per_day"`
	Language      string  `json:"language"`
	CleanText     bool    `json:"clean_text"`
	OutputDir     string  `json:"output_dir,omitempty"`
}

// Defaults returns the configuration used when no file exists yet.
func Defaults() *Config {
	return &Config{
		SpeedWPM:      350,
		MinutesPerDay: 8,
		Language:      "en",
		CleanText:     true,
	}
}

// Validate checks the configuration for values the splitter cannot work with.
func (c *Config) Validate() error {
	if c.SpeedWPM <= 0 {
		return kerrors.NewValidation("speed_wpm", "must be positive")
	}
	if c.MinutesPerDay <= 0 {
		return kerrors.NewValidation("minutes_per_day", "must be positive")
	}
	switch c.Language {
	case "en", "ru":
	default:
		return kerrors.NewValidation("language", "must be \"en\" or \"ru\"")
	}
	return nil
}

// Manager loads, serves and saves a Config, safe for concurrent use.
type Manager struct {
	mu   sync.RWMutex
	path string
	cfg  *Config
}

// NewManager creates a manager for the config file at path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// DefaultPath returns the per-user config location, honoring XDG conventions
// via os.UserConfigDir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", kerrors.NewIO("locate config dir", "", err)
	}
	return filepath.Join(dir, "speedread", "config.json"), nil
}

// Load reads the config file, creating it with defaults when missing.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		m.cfg = Defaults()
		return m.saveLocked()
	}
	if err != nil {
		return kerrors.NewIO("read", m.path, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return kerrors.NewParse("config", m.path, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.cfg = cfg
	return nil
}

// Get returns a copy of the current configuration. Load must have been called.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cfg == nil {
		return *Defaults()
	}
	return *m.cfg
}

// Update validates and persists a new configuration.
func (m *Manager) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = &cfg
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return kerrors.NewIO("create config dir", filepath.Dir(m.path), err)
	}
	data, err := json.MarshalIndent(m.cfg, "", "  ")
	if err != nil {
		return kerrors.NewIO("encode", m.path, err)
	}
	if err := os.WriteFile(m.path, append(data, '\n'), 0o644); err != nil {
		return kerrors.NewIO("write", m.path, err)
	}
	return nil
}
