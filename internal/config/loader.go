package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/querygate/pkg/core"
	"github.com/spf13/pflag"
)

// flagKeys maps command-line flag names to config keys. Flags not listed
// here are command options and never reach the config.
var flagKeys = map[string]string{
	"target-type": "target.type",
	"host":        "target.host",
	"port":        "target.port",
	"database":    "target.database",
	"user":        "target.user",
	"cache-ttl":   "cache.ttl",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"addr":        "server.addr",
	"output":      "output",
	"verbose":     "verbose",
}

// legacyEnvKeys maps the plain DB_* variables used by WordPress-style
// deployments to target keys. QUERYGATE_ variables take precedence.
var legacyEnvKeys = map[string]string{
	"DB_HOST":     "target.host",
	"DB_PORT":     "target.port",
	"DB_USER":     "target.user",
	"DB_PASSWORD": "target.password",
	"DB_NAME":     "target.database",
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// findConfigFile finds the config file to use.
// Priority: explicit path > querygate.yaml > querygate.yml in dir.
func findConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load loads configuration from defaults, the config file, environment
// variables and flags. An explicit cfgFile must exist; otherwise the
// working directory is searched. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return LoadFrom(cwd, cfgFile, flags)
}

// LoadFrom is Load with an explicit directory to search for the config file.
func LoadFrom(dir, cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"target.type":   DefaultTargetType,
		"cache.ttl":     DefaultCacheTTL,
		"cache.enabled": true,
		"log.level":     DefaultLogLevel,
		"log.format":    DefaultLogFormat,
		"server.addr":   DefaultAddr,
		"output":        DefaultOutput,
		"verbose":       false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile, dir)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: DB_* first, then QUERYGATE_ which wins.
	if err := k.Load(env.Provider("DB_", ".", func(s string) string {
		return legacyEnvKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}
	// QUERYGATE_CACHE_TTL -> cache.ttl
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	ttl, err := parseTTL(k.Get("cache.ttl"))
	if err != nil {
		return nil, err
	}
	if err := k.Set("cache.ttl", ttl); err != nil {
		return nil, fmt.Errorf("failed to set cache.ttl: %w", err)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if cfg.Target == nil {
		cfg.Target = &core.TargetConfig{Type: DefaultTargetType}
	}
	ApplyTargetDefaults(cfg.Target)
	expandTargetEnvVars(cfg.Target)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// parseTTL accepts a duration ("90s", "5m") or a bare number of seconds.
func parseTTL(v any) (time.Duration, error) {
	switch t := v.(type) {
	case time.Duration:
		return t, nil
	case int:
		return time.Duration(t) * time.Second, nil
	case int64:
		return time.Duration(t) * time.Second, nil
	case float64:
		return time.Duration(t * float64(time.Second)), nil
	case string:
		s := strings.TrimSpace(t)
		if secs, err := strconv.ParseFloat(s, 64); err == nil {
			return time.Duration(secs * float64(time.Second)), nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid cache.ttl %q: expected seconds or a duration like 5m", t)
		}
		return d, nil
	case nil:
		return DefaultCacheTTL, nil
	}
	return 0, fmt.Errorf("invalid cache.ttl %v (%T)", v, v)
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // unset variables are left as-is
	})
}

// expandTargetEnvVars expands environment variables in sensitive target fields.
func expandTargetEnvVars(t *core.TargetConfig) {
	if t == nil {
		return
	}
	t.Password = expandEnvVars(t.Password)
	t.User = expandEnvVars(t.User)
	t.Host = expandEnvVars(t.Host)
	t.Database = expandEnvVars(t.Database)
}
