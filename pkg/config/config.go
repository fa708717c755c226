// Package config handles loading and saving dv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/dv/config.yaml
//   - State:  ~/.local/state/dv/ (walkthrough completion database)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// OverlayConfig tunes walkthrough overlay placement. Zero values fall back
// to the resolver defaults, so an empty config section changes nothing.
type OverlayConfig struct {
	Inset     int `yaml:"inset,omitempty"`      // highlight border inset around the target
	Clearance int `yaml:"clearance,omitempty"`  // gap between target and tooltip
	MinMargin int `yaml:"min_margin,omitempty"` // tooltip distance from viewport edges
}

// WalkthroughConfig controls the guided walkthrough engine.
type WalkthroughConfig struct {
	// Disabled turns the engine off entirely (power users, CI captures).
	Disabled bool `yaml:"disabled,omitempty"`
	// StepsFile is an optional YAML/JSON overlay replacing built-in step
	// tables per screen. Watched for changes while dv runs.
	StepsFile string        `yaml:"steps_file,omitempty"`
	Overlay   OverlayConfig `yaml:"overlay,omitempty"`
}

// Config is the persisted dv configuration.
type Config struct {
	// UserID namespaces walkthrough completion and board membership.
	// Defaults to the OS username when empty.
	UserID      string            `yaml:"user_id,omitempty"`
	DisplayName string            `yaml:"display_name,omitempty"`
	Walkthrough WalkthroughConfig `yaml:"walkthrough,omitempty"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{UserID: osUser()}
}

// ConfigPath returns the path to the config file, honoring XDG_CONFIG_HOME.
func ConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dv", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "dv", "config.yaml"), nil
}

// StateDir returns the directory for durable state (the completion
// database), honoring XDG_STATE_HOME.
func StateDir() (string, error) {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "dv"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "dv"), nil
}

// Load reads the config file. A missing file is not an error: defaults are
// returned so first runs work without any setup.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if strings.TrimSpace(cfg.UserID) == "" {
		cfg.UserID = osUser()
	}
	cfg.Walkthrough.StepsFile = expandHome(cfg.Walkthrough.StepsFile)
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func (c Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func osUser() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return "local"
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
