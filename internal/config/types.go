// Package config loads querygate configuration.
//
// Values are layered with koanf, highest precedence first: command-line
// flags that were explicitly set, QUERYGATE_ environment variables, the
// querygate.yaml file, and built-in defaults.
package config

import (
	"time"

	"github.com/leapstack-labs/querygate/pkg/core"
)

// Config holds all querygate configuration.
type Config struct {
	Target  *core.TargetConfig `koanf:"target"`
	Cache   CacheConfig        `koanf:"cache"`
	Log     LogConfig          `koanf:"log"`
	Server  ServerConfig       `koanf:"server"`
	Output  string             `koanf:"output"`
	Verbose bool               `koanf:"verbose"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// CacheConfig controls the read cache.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
	// Enabled is the default for use_cache when a caller does not say.
	Enabled bool `koanf:"enabled"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

// ServerConfig controls the tool server.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// Default configuration values.
const (
	DefaultTargetType = "mysql"
	DefaultHost       = "localhost"
	DefaultCacheTTL   = 300 * time.Second
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	DefaultAddr       = "127.0.0.1:8791"
	DefaultOutput     = "auto" // table on a TTY, markdown otherwise
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "querygate.yaml"
	ConfigFileNameAlt = "querygate.yml"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "QUERYGATE_"

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	cfg := &Config{
		Target: &core.TargetConfig{Type: DefaultTargetType, Host: DefaultHost},
		Cache:  CacheConfig{TTL: DefaultCacheTTL, Enabled: true},
		Log:    LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Server: ServerConfig{Addr: DefaultAddr},
		Output: DefaultOutput,
	}
	ApplyTargetDefaults(cfg.Target)
	return cfg
}
