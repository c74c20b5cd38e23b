// Package config loads votd configuration by layering the config file,
// environment variables, and built-in defaults. Later layers win: defaults
// under the file, the file under the environment, and command-line flags
// (applied by the CLI after Load) over everything.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/MWPuppire/votd/internal/cache"
)

// Config is the root votd configuration.
type Config struct {
	Cache   CacheConfig   `yaml:"cache"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Logging LoggingConfig `yaml:"logging"`
}

// CacheConfig configures the verse cache.
type CacheConfig struct {
	// Enabled toggles the cache. Disabling it bypasses reads and writes,
	// like running every invocation with --no-cache.
	Enabled bool `yaml:"enabled" env:"VOTD_CACHE"`

	// Dir is the cache directory. Empty means the platform user cache
	// directory.
	Dir string `yaml:"dir" env:"VOTD_CACHE_DIR"`

	// MaxAge is the freshness window, either integer seconds ("21600")
	// or a duration string ("6h"). Empty means the built-in default.
	MaxAge string `yaml:"max_age" env:"VOTD_CACHE_MAX_AGE"`
}

// FetchConfig configures the remote verse service.
type FetchConfig struct {
	// URL overrides the verse service endpoint. Empty means the
	// built-in NET Bible Labs endpoint.
	URL string `yaml:"url" env:"VOTD_API_URL" validate:"omitempty,url"`

	// TimeoutSeconds bounds a whole fetch.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"VOTD_TIMEOUT" validate:"gte=1,lte=300"`
}

// LoggingConfig configures diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"VOTD_LOG_LEVEL" validate:"omitempty,oneof=trace debug info warn error fatal panic"`
	Format string `yaml:"format" env:"VOTD_LOG_FORMAT" validate:"omitempty,oneof=console json"`
}

// DefaultTimeoutSeconds is the default fetch timeout.
const DefaultTimeoutSeconds = 2

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled: true,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load builds the effective configuration: defaults, overlaid with the
// config file when present, overlaid with environment variables. The
// result is validated before being returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := FilePath()
	if err == nil {
		if loadErr := loadFile(cfg, path); loadErr != nil {
			return nil, loadErr
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile overlays the YAML file at path onto cfg. A missing file is not
// an error.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Cache.MaxAge != "" {
		if _, err := cache.ParseMaxAge(c.Cache.MaxAge); err != nil {
			return fmt.Errorf("invalid cache.max_age: %w", err)
		}
	}

	return nil
}

// Save writes the configuration to the config file, creating the votd
// home directory if needed.
func (c *Config) Save() error {
	if err := EnsureHomeDir(); err != nil {
		return err
	}

	path, err := FilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// CachePolicy returns the staleness policy the configuration describes.
func (c *Config) CachePolicy() cache.Policy {
	if c.Cache.MaxAge == "" {
		return cache.DefaultPolicy()
	}
	maxAge, err := cache.ParseMaxAge(c.Cache.MaxAge)
	if err != nil {
		return cache.DefaultPolicy()
	}
	return cache.Policy{MaxAge: maxAge}
}

// CachePath returns the cache slot file path the configuration describes.
func (c *Config) CachePath() (string, error) {
	dir := c.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cache.DefaultDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, cache.FileName), nil
}

// FetchTimeout returns the fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}
