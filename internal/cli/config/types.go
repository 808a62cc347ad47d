// Package config loads the SignDesk configuration.
//
// Values are layered, lowest precedence first: built-in defaults, the
// signdesk.yaml file, SIGNDESK_ environment variables and explicitly set
// command-line flags.
package config

import (
	"time"

	"github.com/leapstack-labs/signdesk/internal/api"
	"github.com/leapstack-labs/signdesk/internal/layout"
)

// Defaults.
const (
	DefaultAddr          = "127.0.0.1:8765"
	DefaultLogLevel      = "info"
	DefaultStateFile     = ".signdesk/state.db"
	DefaultBaseURL       = "http://localhost:5000"
	DefaultViewportWidth = 1280
	// DefaultSessionSecret is only fit for local development.
	DefaultSessionSecret = "signdesk-dev-secret-change-in-production" //nolint:gosec
)

// MinSecretLength is the shortest accepted session secret.
const MinSecretLength = 16

// Config holds all SignDesk configuration options.
type Config struct {
	Addr          string       `koanf:"addr" yaml:"addr"`
	LogLevel      string       `koanf:"log_level" yaml:"log_level"`
	StatePath     string       `koanf:"state_path" yaml:"state_path"`
	AssetsDir     string       `koanf:"assets_dir" yaml:"assets_dir"`
	Watch         bool         `koanf:"watch" yaml:"watch"`
	Dev           bool         `koanf:"dev" yaml:"dev"`
	SessionSecret string       `koanf:"session_secret" yaml:"session_secret"`
	SecureCookies bool         `koanf:"secure_cookies" yaml:"secure_cookies"`
	API           APIConfig    `koanf:"api" yaml:"api"`
	Layout        LayoutConfig `koanf:"layout" yaml:"layout"`
	Auth          AuthConfig   `koanf:"auth" yaml:"auth"`
}

// APIConfig configures the REST API client.
type APIConfig struct {
	BaseURL string        `koanf:"base_url" yaml:"base_url"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`
}

// LayoutConfig holds the responsive shell thresholds.
type LayoutConfig struct {
	Breakpoint           int `koanf:"breakpoint" yaml:"breakpoint"`
	SidebarWidth         int `koanf:"sidebar_width" yaml:"sidebar_width"`
	DefaultViewportWidth int `koanf:"default_viewport_width" yaml:"default_viewport_width"`
}

// AuthConfig controls access to the shell pages.
type AuthConfig struct {
	Require bool `koanf:"require" yaml:"require"`
}

// defaults returns the built-in values as a flat koanf map.
func defaults() map[string]any {
	return map[string]any{
		"addr":                          DefaultAddr,
		"log_level":                     DefaultLogLevel,
		"state_path":                    DefaultStateFile,
		"assets_dir":                    "",
		"watch":                         false,
		"dev":                           false,
		"session_secret":                DefaultSessionSecret,
		"secure_cookies":                false,
		"api.base_url":                  DefaultBaseURL,
		"api.timeout":                   api.DefaultTimeout.String(),
		"layout.breakpoint":             layout.DefaultBreakpoint,
		"layout.sidebar_width":          layout.DefaultSidebarWidth,
		"layout.default_viewport_width": DefaultViewportWidth,
		"auth.require":                  false,
	}
}

// LayoutSettings converts the layout section for the layout controller.
func (c *Config) LayoutSettings() layout.Config {
	return layout.Config{
		Breakpoint:   c.Layout.Breakpoint,
		SidebarWidth: c.Layout.SidebarWidth,
	}
}

// APISettings converts the api section for the API client.
func (c *Config) APISettings() api.Config {
	return api.Config{
		BaseURL: c.API.BaseURL,
		Timeout: c.API.Timeout,
	}
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if out.SessionSecret != "" {
		out.SessionSecret = "********"
	}
	return out
}
