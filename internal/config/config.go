// Package config provides configuration management for hoard with Viper integration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/bnema/hoard/internal/cache"
)

// Config represents the complete configuration for hoard.
type Config struct {
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache" json:"cache"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// CacheConfig holds cache engine configuration.
type CacheConfig struct {
	// MaxCapacity is the hard upper bound on resident entity count.
	// Fixed at construction; must be positive.
	MaxCapacity int `mapstructure:"max_capacity" yaml:"max_capacity" json:"max_capacity" jsonschema:"minimum=1"`

	// PurgeStoreOnRemoveAll makes remove-all purge the store's full extent,
	// not only the identifiers currently resident in cache.
	PurgeStoreOnRemoveAll bool `mapstructure:"purge_store_on_remove_all" yaml:"purge_store_on_remove_all" json:"purge_store_on_remove_all"`
}

// DatabaseConfig holds backing store configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" yaml:"format" json:"format" jsonschema:"enum=console,enum=json"`
}

const defaultMaxCapacity = 128

// Load reads configuration from the given file (optional), the default
// config locations, and HOARD_-prefixed environment variables.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("cache.max_capacity", defaultMaxCapacity)
	v.SetDefault("cache.purge_store_on_remove_all", false)
	v.SetDefault("database.path", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join("$HOME", ".config", "hoard"))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Missing config file is fine; defaults and env apply. An explicitly
		// named file must exist.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants. Violations are fatal at
// construction time, never at runtime.
func (c *Config) Validate() error {
	if c.Cache.MaxCapacity < 1 {
		return fmt.Errorf("cache.max_capacity must be positive, got %d: %w", c.Cache.MaxCapacity, cache.ErrInvalidCapacity)
	}
	return nil
}
