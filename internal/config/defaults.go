package config

import (
	"strings"

	"github.com/leapstack-labs/querygate/pkg/adapter"
	"github.com/leapstack-labs/querygate/pkg/core"
)

// Default ports for network targets.
const (
	DefaultPostgresPort = 5432
	DefaultMySQLPort    = 3306
)

// MemoryDatabase is the database used by file targets with no path.
const MemoryDatabase = ":memory:"

// ApplyTargetDefaults resolves type aliases (mariadb, postgresql, sqlite3)
// and fills in per-type defaults.
func ApplyTargetDefaults(t *core.TargetConfig) {
	if t == nil {
		return
	}
	t.Type = strings.ToLower(strings.TrimSpace(t.Type))
	if c, ok := adapter.Canonical(t.Type); ok {
		t.Type = c
	}

	switch t.Type {
	case "postgres":
		if t.Port == 0 {
			t.Port = DefaultPostgresPort
		}
	case "mysql":
		if t.Port == 0 {
			t.Port = DefaultMySQLPort
		}
	case "duckdb", "sqlite":
		if t.Database == "" {
			t.Database = MemoryDatabase
		}
	}

	switch t.Type {
	case "postgres", "mysql":
		if t.Host == "" {
			t.Host = DefaultHost
		}
	}
}
