package internal

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Version is reported by /health and the MCP server when the config file
// does not set app.version. Override at build time with
// -ldflags "-X github.com/vitaminx-2025/vitaminx-website/internal.Version=...".
var Version = "v0.7"

// DefaultOriginPattern allows browser clients served from localhost.
const DefaultOriginPattern = `^https?://(localhost|127\.0\.0\.1)(:\d+)?$`

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Log       LogConfig         `yaml:"log"`
	SQLite    SQLiteConfig      `yaml:"sqlite"`
	Auth      AuthConfig        `yaml:"auth"`
	CORS      CORSConfig        `yaml:"cors"`
	RateLimit RateLimitConfig   `yaml:"rate_limit"`
	Events    EventsConfig      `yaml:"events"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{
		&c.App, &c.Log, &c.SQLite, &c.Auth, &c.CORS, &c.RateLimit, &c.Events,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	Version  string     `yaml:"version"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
	// BodyLimit caps request bodies in bytes.
	BodyLimit int64 `yaml:"body_limit"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.BodyLimit, validation.Min(int64(0))),
	)
}

// LogConfig controls the rotated log file written next to stdout.
// An empty File disables file logging.
type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Validate validates the log configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxSizeMB, validation.Min(0)),
		validation.Field(&c.MaxBackups, validation.Min(0)),
		validation.Field(&c.MaxAgeDays, validation.Min(0)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// CORSConfig restricts browser origins by regular expression.
type CORSConfig struct {
	AllowedOriginPattern string `yaml:"allowed_origin_pattern"`
}

// Validate validates the CORS configuration.
func (c *CORSConfig) Validate() error {
	if c.AllowedOriginPattern == "" {
		c.AllowedOriginPattern = DefaultOriginPattern
	}
	if _, err := regexp.Compile(c.AllowedOriginPattern); err != nil {
		return fmt.Errorf("cors: allowed_origin_pattern: %w", err)
	}
	return nil
}

// RateLimitConfig configures the API request limiter. RPS 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Validate validates the rate limit configuration.
func (c *RateLimitConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RPS, validation.Min(0.0)),
		validation.Field(&c.Burst, validation.Min(0)),
	)
}

// EventsConfig configures the change event stream.
type EventsConfig struct {
	GraphThrottle time.Duration `yaml:"graph_throttle"`
}

// Validate validates the events configuration.
func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.GraphThrottle, validation.Min(time.Duration(0))),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			Version:  Version,
			HTTP: HTTPConfig{
				Port:      8000,
				BodyLimit: 1 << 20,
			},
		},
		Log: LogConfig{
			File:       "app.log",
			MaxSizeMB:  1,
			MaxBackups: 3,
		},
		SQLite: SQLiteConfig{
			Path: "./data/app.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		CORS: CORSConfig{
			AllowedOriginPattern: DefaultOriginPattern,
		},
		Events: EventsConfig{
			GraphThrottle: 2 * time.Second,
		},
	}
}
