// Package config provides centralized configuration for the gitviz server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kurobon/gitviz/internal/state"
)

// Config holds application-wide configuration.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `yaml:"addr"`

	DefaultBranch  string   `yaml:"default_branch"`
	IDPrefix       string   `yaml:"id_prefix"`
	InitialMessage string   `yaml:"initial_message"`
	Palette        []string `yaml:"palette"`

	// AllowedOrigins lists Origin values accepted on the WebSocket endpoint.
	// Empty means same-origin only; "*" accepts any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MissionDir overrides the built-in missions with YAML files on disk.
	MissionDir string `yaml:"mission_dir"`
}

// DefaultConfig returns the default configuration, reading from environment variables.
func DefaultConfig() *Config {
	addr := os.Getenv("GITVIZ_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	branch := os.Getenv("GITVIZ_DEFAULT_BRANCH")
	if branch == "" {
		branch = state.DefaultBranch
	}
	palette := make([]string, len(state.DefaultPalette))
	copy(palette, state.DefaultPalette)

	return &Config{
		Addr:           addr,
		DefaultBranch:  branch,
		IDPrefix:       state.DefaultIDPrefix,
		InitialMessage: state.DefaultInitialMessage,
		Palette:        palette,
		MissionDir:     os.Getenv("GITVIZ_MISSION_DIR"),
	}
}

// Load reads the YAML file at path over the defaults. An empty path falls
// back to GITVIZ_CONFIG, and with neither set the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv("GITVIZ_CONFIG")
	}
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings no session could be built from.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DefaultBranch) == "" {
		errs = append(errs, errors.New("default_branch must not be empty"))
	}
	if strings.TrimSpace(c.IDPrefix) == "" {
		errs = append(errs, errors.New("id_prefix must not be empty"))
	}
	if len(c.Palette) == 0 {
		errs = append(errs, errors.New("palette must list at least one colour"))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	return errors.Join(errs...)
}

// SessionOptions maps the configuration onto new sessions.
func (c *Config) SessionOptions() state.Options {
	return state.Options{
		DefaultBranch:  c.DefaultBranch,
		IDPrefix:       c.IDPrefix,
		InitialMessage: c.InitialMessage,
		Palette:        c.Palette,
	}
}

// OriginAllowed reports whether a WebSocket handshake from origin is accepted.
func (c *Config) OriginAllowed(origin string) bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// Global is the application-wide configuration instance.
var Global = DefaultConfig()
