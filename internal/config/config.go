// Package config loads runtime settings for the monzo binaries from the
// environment, optionally seeded by a .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bquirin/MonzoAPIWrapper/client"
)

// Config holds application configuration.
// Environment variables are parsed with the MONZO_ prefix, e.g. MONZO_ACCESS_TOKEN.
type Config struct {
	AccessToken string        `envconfig:"ACCESS_TOKEN"`
	BaseURL     string        `envconfig:"BASE_URL" default:"https://api.monzo.com"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`

	// MCP server
	MCPAddr            string        `envconfig:"MCP_ADDR" default:":11546"`
	MCPServerName      string        `envconfig:"MCP_NAME" default:"monzo-mcp-server"`
	MCPServerVersion   string        `envconfig:"MCP_VERSION" default:"0.1.0"`
	MCPShutdownTimeout time.Duration `envconfig:"MCP_SHUTDOWN_TIMEOUT" default:"10s"`
	MCPReadTimeout     time.Duration `envconfig:"MCP_READ_TIMEOUT" default:"5s"`
	MCPIdleTimeout     time.Duration `envconfig:"MCP_IDLE_TIMEOUT" default:"120s"`
}

// Load reads a .env file when present and then the MONZO_* environment.
// The access token is not required here; callers that talk to the API use Validate.
func Load(envFiles ...string) (*Config, error) {
	LoadDotEnv(envFiles...)
	return FromEnv()
}

// LoadDotEnv copies variables from the given .env files (default ./.env) into
// the process environment without overriding ones already set. Missing files are fine.
func LoadDotEnv(envFiles ...string) {
	_ = godotenv.Load(envFiles...)
}

// FromEnv parses the MONZO_* environment as it is, without reading any .env file.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("MONZO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings needed to build a client.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return fmt.Errorf("MONZO_ACCESS_TOKEN is required")
	}
	if err := client.ValidateAccessToken(c.AccessToken); err != nil {
		return err
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("MONZO_HTTP_TIMEOUT must be > 0, got %s", c.HTTPTimeout)
	}
	return nil
}

// ClientOptions maps the configuration onto SDK options.
func (c *Config) ClientOptions() []client.Option {
	opts := []client.Option{client.WithHTTPTimeout(c.HTTPTimeout)}
	if c.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(c.BaseURL))
	}
	if c.Debug {
		opts = append(opts, client.WithDebugLogging(true))
	}
	return opts
}

// NewClient validates the configuration and builds a client from it.
func (c *Config) NewClient() (*client.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return client.New(c.AccessToken, c.ClientOptions()...)
}

// Level returns the configured zerolog level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	return ParseLogLevel(c.LogLevel)
}

// Init configures logging and reports the loaded settings.
func (c *Config) Init() {
	InitLogger()
	lvl := c.Level()
	if c.Debug {
		lvl = zerolog.DebugLevel
	}
	SetLogLevel(lvl)

	log.Debug().
		Str("base_url", c.BaseURL).
		Dur("http_timeout", c.HTTPTimeout).
		Bool("access_token_present", c.AccessToken != "").
		Str("log_level", lvl.String()).
		Msg("Application configuration loaded")
}

// ParseLogLevel parses debug|info|warn|error, defaulting to info.
func ParseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
