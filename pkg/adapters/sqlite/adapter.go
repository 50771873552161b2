// Package sqlite provides a pure-Go SQLite database adapter for querygate.
package sqlite

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/querygate/pkg/adapter"

	_ "modernc.org/sqlite" // sqlite driver
)

// MemoryPath is the path for a private in-memory database.
const MemoryPath = ":memory:"

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "sqlite"
}

// Connect opens the SQLite database at cfg.Path.
// File databases get a fresh session per call. An in-memory database lives
// in a single connection, so the pool is pinned to that one connection and
// its session state is shared by every call.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = MemoryPath
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", path))
	if err := a.OpenAndPing(ctx, "sqlite", buildSQLiteDSN(path), cfg); err != nil {
		return err
	}
	if path == MemoryPath {
		a.DB.SetMaxOpenConns(1)
		a.DB.SetConnMaxLifetime(0)
		a.DB.SetMaxIdleConns(1)
	}
	return nil
}

// buildSQLiteDSN adds a busy timeout to file-backed databases.
func buildSQLiteDSN(path string) string {
	if path == MemoryPath || strings.Contains(path, "?") {
		return path
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)"
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
