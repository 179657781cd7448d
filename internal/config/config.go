// Package config loads E-Unify settings with viper.
//
// Values come from, lowest precedence first: built-in defaults, the
// config file, and EUNIFY_* environment variables (dots become
// underscores, so source.rest.base_url is EUNIFY_SOURCE_REST_BASE_URL).
//
// Config file locations (priority order):
//  1. $EUNIFY_CONFIG
//  2. ./eunify.yaml
//  3. $XDG_CONFIG_HOME/eunify/eunify.yaml
//  4. ~/.config/eunify/eunify.yaml
//  5. /etc/eunify/eunify.yaml
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"eunify/internal/errors"
	"eunify/internal/source"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "EUNIFY"

// Source kinds
const (
	SourceREST   = source.KindREST
	SourceBolt   = source.KindBolt
	SourceStatic = source.KindStatic
)

// Config is the complete application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Source  SourceConfig  `mapstructure:"source"`
	Style   StyleConfig   `mapstructure:"style"`
	Render  RenderConfig  `mapstructure:"render"`
	Status  StatusConfig  `mapstructure:"status"`
	History HistoryConfig `mapstructure:"history"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// SourceConfig selects and configures the graph source
type SourceConfig struct {
	Kind string     `mapstructure:"kind"`
	REST RESTConfig `mapstructure:"rest"`
	Bolt BoltConfig `mapstructure:"bolt"`
}

// RESTConfig configures the backend HTTP client
type RESTConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// BoltConfig configures the direct Neo4j connection
type BoltConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	Limit    int    `mapstructure:"limit"`
}

// StyleConfig configures the type palette
type StyleConfig struct {
	// PaletteFile is an optional YAML file of color overrides, reloaded on change
	PaletteFile string `mapstructure:"palette_file"`
}

// RenderConfig configures the layout spacing
type RenderConfig struct {
	Padding       int     `mapstructure:"padding"`
	SpacingFactor float64 `mapstructure:"spacing_factor"`
}

// StatusConfig configures connection status polling
type StatusConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// HistoryConfig configures query history storage
type HistoryConfig struct {
	// Path of the SQLite database; empty disables history
	Path string `mapstructure:"path"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":3000")

	v.SetDefault("source.kind", SourceREST)
	v.SetDefault("source.rest.base_url", "http://localhost:8000")
	v.SetDefault("source.rest.timeout", time.Duration(0)) // no client-side timeout
	v.SetDefault("source.rest.requests_per_second", 10.0)
	v.SetDefault("source.rest.burst", 5)
	v.SetDefault("source.bolt.uri", "neo4j://localhost:7687")
	v.SetDefault("source.bolt.username", "neo4j")
	v.SetDefault("source.bolt.password", "")
	v.SetDefault("source.bolt.database", "")
	v.SetDefault("source.bolt.limit", 500)

	v.SetDefault("style.palette_file", "")

	v.SetDefault("render.padding", 40)
	v.SetDefault("render.spacing_factor", 1.75)

	v.SetDefault("status.poll_interval", 30*time.Second)

	v.SetDefault("history.path", "./eunify-history.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)
}

// NewViper returns a viper instance with defaults and environment binding
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the config file at path, or the first one found in
// SearchDirs when path is empty. It returns the file used, which is empty when
// only defaults and the environment apply.
func Load(path string) (*Config, string, error) {
	return LoadWithViper(NewViper(), path)
}

// LoadWithViper is Load on a caller-supplied viper, so command-line flags
// bound to it take precedence.
func LoadWithViper(v *viper.Viper, path string) (*Config, string, error) {
	path, err := readConfig(v, path)
	if err != nil {
		return nil, path, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, path, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return &cfg, path, nil
}

// DefaultConfig returns the built-in defaults, ignoring files and environment
func DefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate rejects settings the application cannot start with
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceREST:
		if c.Source.REST.BaseURL == "" {
			return errors.NewInvalidRequest("source.rest.base_url is required")
		}
	case SourceBolt:
		if c.Source.Bolt.URI == "" {
			return errors.NewInvalidRequest("source.bolt.uri is required")
		}
	case SourceStatic:
	default:
		return errors.WithHint(
			errors.NewInvalidRequest("unknown source kind %q", c.Source.Kind),
			"Use one of rest, bolt or static")
	}

	if c.Source.REST.RequestsPerSecond < 0 {
		return errors.NewInvalidRequest("source.rest.requests_per_second must not be negative")
	}
	if c.Source.REST.RequestsPerSecond > 0 && c.Source.REST.Burst <= 0 {
		return errors.NewInvalidRequest("source.rest.burst must be positive when rate limiting")
	}
	if c.Source.REST.Timeout < 0 {
		return errors.NewInvalidRequest("source.rest.timeout must not be negative")
	}
	if c.Status.PollInterval <= 0 {
		return errors.NewInvalidRequest("status.poll_interval must be positive")
	}
	if c.Render.Padding < 0 || c.Render.SpacingFactor <= 0 {
		return errors.NewInvalidRequest("render.padding must not be negative and render.spacing_factor must be positive")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.NewInvalidRequest("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
