package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.StatePath == "" {
		errs = append(errs, errors.New("state_path is required"))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout))
	}

	if c.Layout.Breakpoint <= 0 {
		errs = append(errs, fmt.Errorf("layout.breakpoint must be positive, got %d", c.Layout.Breakpoint))
	}
	if c.Layout.SidebarWidth < 0 {
		errs = append(errs, fmt.Errorf("layout.sidebar_width must not be negative, got %d", c.Layout.SidebarWidth))
	}
	if c.Layout.DefaultViewportWidth <= 0 {
		errs = append(errs, fmt.Errorf("layout.default_viewport_width must be positive, got %d", c.Layout.DefaultViewportWidth))
	}

	if len(c.SessionSecret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("session_secret must be at least %d characters", MinSecretLength))
	}

	return errors.Join(errs...)
}

// ParseLevel maps a log level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", name)
	}
}
