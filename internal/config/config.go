// Package config loads shell configuration from the environment.
// Everything has a default; no variable is required.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process-wide settings. Loaded once at startup and treated
// as immutable afterwards.
type Config struct {
	// APIURL is the base URL of the remote Noteloft service.
	APIURL string `env:"NOTELOFT_API_URL" envDefault:"https://api.noteloft.app"`

	// RequestTimeout bounds every API call. Timeouts surface as ordinary
	// failures and are never retried automatically.
	RequestTimeout time.Duration `env:"NOTELOFT_TIMEOUT" envDefault:"15s"`

	// Breakpoint is the terminal width, in columns, at or above which the
	// shell renders as a wide viewport with a persistent sidebar.
	Breakpoint int `env:"NOTELOFT_BREAKPOINT" envDefault:"100"`

	// SignupAutoSession controls whether a successful signup immediately
	// establishes a session. Deployments requiring email verification
	// set this to false.
	SignupAutoSession bool `env:"NOTELOFT_SIGNUP_AUTOSESSION" envDefault:"true"`

	// AuthRatePerMinute and AuthBurst shape the local limiter guarding
	// sign-in/sign-up attempts against the remote service.
	AuthRatePerMinute int `env:"NOTELOFT_AUTH_RATE" envDefault:"10"`
	AuthBurst         int `env:"NOTELOFT_AUTH_BURST" envDefault:"5"`

	// TokenFile overrides where the session token is persisted.
	// Defaults to ~/.noteloft/token.
	TokenFile string `env:"NOTELOFT_TOKEN_FILE"`

	// LogFile receives structured logs; a TUI owns stdout, so logging to
	// the terminal is never an option. Empty disables logging.
	LogFile string `env:"NOTELOFT_LOG_FILE"`
}

// Load parses the environment into a Config and fills computed defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.Breakpoint <= 0 {
		return nil, fmt.Errorf("config.Load: NOTELOFT_BREAKPOINT must be positive, got %d", cfg.Breakpoint)
	}
	if cfg.AuthRatePerMinute <= 0 || cfg.AuthBurst <= 0 {
		return nil, fmt.Errorf("config.Load: auth limiter settings must be positive")
	}
	if cfg.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config.Load: get home dir: %w", err)
		}
		cfg.TokenFile = filepath.Join(home, ".noteloft", "token")
	}
	return cfg, nil
}
