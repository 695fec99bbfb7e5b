// Package config handles the pageobject workspace configuration (config.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/pageobject/pkg/core"
)

// Defaults applied to missing fields.
const (
	DefaultWDAURL       = "http://localhost:8100"
	DefaultWaitTimeout  = 5 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
	DefaultMaxSwipes    = 5
)

// Config represents the workspace configuration.
type Config struct {
	WDA      WDAConfig      `yaml:"wda"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`

	// Extra launch arguments appended after the scenario selector.
	LaunchArguments []string `yaml:"launchArguments"`

	// Default scenario selector used by `pageobject launch`.
	Scenario string `yaml:"scenario"`

	// Log file name; see LogPath.
	LogFile  string `yaml:"logFile"`
	LogLevel string `yaml:"logLevel"`
}

// WDAConfig locates the WebDriverAgent server and the app under test.
type WDAConfig struct {
	URL      string `yaml:"url"`
	BundleID string `yaml:"bundleId"`
}

// TimeoutsConfig holds waits shared by every page object.
type TimeoutsConfig struct {
	Wait      Duration `yaml:"wait"`
	Poll      Duration `yaml:"poll"`
	MaxSwipes int      `yaml:"maxSwipes"`
}

// Duration is a time.Duration that unmarshals from "300ms" style strings.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try config.yaml first
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try config.yml
	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return defaults
	return Default(), nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.WDA.URL == "" {
		c.WDA.URL = DefaultWDAURL
	}
	if c.Timeouts.Wait == 0 {
		c.Timeouts.Wait = Duration(DefaultWaitTimeout)
	}
	if c.Timeouts.Poll == 0 {
		c.Timeouts.Poll = Duration(DefaultPollInterval)
	}
	if c.Timeouts.MaxSwipes == 0 {
		c.Timeouts.MaxSwipes = DefaultMaxSwipes
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate rejects values no host can work with.
func (c *Config) Validate() error {
	if c.Timeouts.Wait < 0 || c.Timeouts.Poll < 0 {
		return core.ErrInvalidConfig.WithMessage("timeouts must not be negative")
	}
	if c.Timeouts.MaxSwipes < 0 {
		return core.ErrInvalidConfig.WithMessagef("maxSwipes must not be negative, got %d", c.Timeouts.MaxSwipes)
	}
	return nil
}
