// Package duckdb provides a DuckDB database adapter for querygate.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/leapstack-labs/querygate/pkg/adapter"
	"github.com/marcboeker/go-duckdb"
)

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
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
	return "duckdb"
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" (or an empty path) for an in-memory database.
// Extensions and settings from the params are applied to every new connection.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}
	initStmts := initStatements(params)

	a.Logger.Debug("connecting to duckdb", slog.String("path", path), slog.Int("init_statements", len(initStmts)))

	connector, err := duckdb.NewConnector(path, func(execer driver.ExecerContext) error {
		for _, stmt := range initStmts {
			// Runs for every new pooled connection, long after Connect returns.
			if _, err := execer.ExecContext(context.Background(), stmt, nil); err != nil {
				return fmt.Errorf("failed to run %q: %w", stmt, err)
			}
		}
		return nil
	})
	if err != nil {
		return &adapter.DatabaseError{Kind: adapter.KindConnectivity, Op: "open duckdb connection", Err: err}
	}

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &adapter.DatabaseError{Kind: adapter.KindConnectivity, Op: "ping duckdb", Err: err}
	}
	adapter.FreshSessions(db)

	a.DB = db
	a.Cfg = cfg
	return nil
}

// initStatements renders the per-connection setup SQL in a stable order.
func initStatements(params *Params) []string {
	var stmts []string
	for _, ext := range params.Extensions {
		stmts = append(stmts, fmt.Sprintf("INSTALL %s", ext), fmt.Sprintf("LOAD %s", ext))
	}

	keys := make([]string, 0, len(params.Settings))
	for k := range params.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		value := strings.ReplaceAll(params.Settings[k], "'", "''")
		stmts = append(stmts, fmt.Sprintf("SET %s = '%s'", k, value))
	}
	return stmts
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
