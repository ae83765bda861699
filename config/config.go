// Package config loads CLI-facing settings (index file path, cache byte
// budget) from an optional YAML file, the way novasql's internal/config.go
// loads its storage config. The core btree package itself takes no
// dependency on this: Open(path, cacheBytes) stays a plain function call.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the settings a CLI driver needs to open an index.
type Config struct {
	DataPath   string `mapstructure:"data_path"`
	CacheBytes int64  `mapstructure:"cache_bytes"`
}

// defaults: a local index file and a small cache budget of eight pages.
const (
	defaultDataPath   = "btree.db"
	defaultCacheBytes = 4096 * 8
)

// Load reads a YAML config file at path and fills in any field left at its
// zero value with a default.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("data_path", defaultDataPath)
	v.SetDefault("cache_bytes", defaultCacheBytes)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if cfg.CacheBytes <= 0 {
		cfg.CacheBytes = defaultCacheBytes
	}
	if cfg.DataPath == "" {
		cfg.DataPath = defaultDataPath
	}
	return &cfg, nil
}

// Default returns the built-in configuration used when no config file is
// supplied.
func Default() *Config {
	return &Config{DataPath: defaultDataPath, CacheBytes: defaultCacheBytes}
}
