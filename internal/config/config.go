// Package config loads, validates and persists artgrid configuration.
//
// Precedence, lowest to highest: built-in defaults, ~/.artgrid/config.yaml
// (shallow-merged per top-level section), ARTGRID_* environment variables,
// then CLI flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultBaseURL           = "https://api.artic.edu/api/v1"
	DefaultPageSize          = 12
	MaxPageSize              = 100
	DefaultTimeoutSeconds    = 15
	DefaultRequestsPerSecond = 1.0
	DefaultBurst             = 3
	DefaultCacheTTLSeconds   = 3600
	DefaultOutputFormat      = "table"
	configFileName           = "config.yaml"
	outputTypeFile           = "file"
)

// Validation errors.
var (
	ErrInvalidBaseURL  = errors.New("api.base_url must not be empty")
	ErrInvalidPageSize = fmt.Errorf("api.page_size must be between 1 and %d", MaxPageSize)
	ErrInvalidTimeout  = errors.New("api.timeout_seconds must be positive")
	ErrInvalidRate     = errors.New("api.requests_per_second must be positive")
	ErrInvalidBurst    = errors.New("api.burst must be at least 1")
	ErrInvalidTTL      = errors.New("cache.ttl_seconds must not be negative")
	ErrInvalidFormat   = errors.New("output.default_format must be table, json or ndjson")
)

// APIConfig configures the artwork catalog client.
type APIConfig struct {
	BaseURL           string  `yaml:"base_url"            env:"API_URL"`
	PageSize          int     `yaml:"page_size"           env:"PAGE_SIZE"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"     env:"API_TIMEOUT_SECONDS"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"API_RPS"`
	Burst             int     `yaml:"burst"               env:"API_BURST"`
}

// CacheConfig configures the on-disk page cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"     env:"CACHE_ENABLED"`
	Directory  string `yaml:"directory"   env:"CACHE_DIR"`
	TTLSeconds int    `yaml:"ttl_seconds" env:"CACHE_TTL_SECONDS"`
}

// OutputConfig configures non-interactive rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" env:"OUTPUT_FORMAT"`
}

// LoggingConfig configures log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
	File   string `yaml:"file"   env:"LOG_FILE"`
}

// Config is the complete artgrid configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// Default returns the built-in configuration without touching the filesystem.
func Default() *Config {
	cfg := &Config{
		API: APIConfig{
			BaseURL:           DefaultBaseURL,
			PageSize:          DefaultPageSize,
			TimeoutSeconds:    DefaultTimeoutSeconds,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: DefaultCacheTTLSeconds,
		},
		Output: OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
	if dir, err := GetConfigDir(); err == nil {
		cfg.Cache.Directory = filepath.Join(dir, "cache")
		cfg.Logging.File = filepath.Join(dir, "logs", "artgrid.log")
		cfg.configPath = filepath.Join(dir, configFileName)
	}
	return cfg
}

// New returns defaults overlaid with the config file (if present) and the environment.
// Problems reading the file leave the defaults in place.
func New() *Config {
	cfg := Default()
	if cfg.configPath != "" {
		if _, err := os.Stat(cfg.configPath); err == nil {
			_ = ShallowMergeYAML(cfg, cfg.configPath)
		}
	}
	_ = ApplyEnv(cfg)
	return cfg
}

// Load builds a Config from defaults, the file at path and the environment.
// Unlike New, a missing or malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	cfg.configPath = path
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigPath returns the file this config is saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath overrides the file this config is saved to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks every section and joins all problems found.
func (c *Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, ErrInvalidBaseURL)
	}
	if c.API.PageSize < 1 || c.API.PageSize > MaxPageSize {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.API.PageSize))
	}
	if c.API.TimeoutSeconds <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}
	if c.API.RequestsPerSecond <= 0 {
		errs = append(errs, ErrInvalidRate)
	}
	if c.API.Burst < 1 {
		errs = append(errs, ErrInvalidBurst)
	}
	if c.Cache.TTLSeconds < 0 {
		errs = append(errs, ErrInvalidTTL)
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "ndjson":
	default:
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Output.DefaultFormat))
	}
	return errors.Join(errs...)
}
