// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the application.
//
// Provider credentials are deliberately not marked required: a missing
// credential only disables that provider, and the failure surfaces on
// first use with a message naming the variable, not at startup.
type Config struct {
	// Server settings
	Port int `env:"PORT, default=8080" json:"port"`

	// Provider credentials, one per integrated API
	ReplicateAPIToken string `env:"REPLICATE_API_TOKEN" json:"-"` // Masked in JSON
	PiAPIKey          string `env:"PIAPI_API_KEY" json:"-"`       // Masked in JSON
	RunwayAPIKey      string `env:"RUNWAY_API_KEY" json:"-"`      // Masked in JSON
	FalKey            string `env:"FAL_KEY" json:"-"`             // Masked in JSON

	// PublicBaseURL is the externally reachable base URL of this
	// service; when set, providers with push completion are given
	// <PublicBaseURL>/webhooks/<provider> as their callback address.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" json:"public_base_url,omitempty"`

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// WebhookURL returns the callback address for the given provider tag,
// or "" when no public base URL is configured (poll-only operation).
func (c *Config) WebhookURL(provider string) string {
	if c.PublicBaseURL == "" {
		return ""
	}
	return strings.TrimSuffix(c.PublicBaseURL, "/") + "/webhooks/" + provider
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive
// values reduced to a configured/absent marker.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Port: %d, Replicate: %s, PiAPI: %s, Runway: %s, Fal: %s, PublicBaseURL: %s, LogFormat: %s, LogLevel: %s}",
		c.Port,
		mask(c.ReplicateAPIToken),
		mask(c.PiAPIKey),
		mask(c.RunwayAPIKey),
		mask(c.FalKey),
		c.PublicBaseURL,
		c.LogFormat,
		c.LogLevel,
	)
}

// mask hides a credential while showing whether it is configured.
func mask(secret string) string {
	if secret == "" {
		return "absent"
	}
	return "configured"
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
