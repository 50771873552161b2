package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/querygate/pkg/adapter"
	"github.com/leapstack-labs/querygate/pkg/core"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := ValidateTarget(c.Target); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (expected text or json)", c.Log.Format)
	}
	return nil
}

// ValidateTarget checks the target type against the adapter registry.
func ValidateTarget(t *core.TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(t.Type) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}
	return nil
}
