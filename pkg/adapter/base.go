package adapter

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/leapstack-labs/querygate/pkg/core"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Query and ExecWrite implementations.
//
// Every call acquires its own connection and releases it before returning.
// Connections opened through OpenAndPing are not kept idle, so session
// state (TEMP tables, USE, SET) never reaches a later call.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		b.logger().Debug("closing database connection")
		return b.DB.Close()
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// Placeholder returns the "?" placeholder used by most drivers.
func (b *BaseSQLAdapter) Placeholder(_ int) string {
	return "?"
}

// Query executes a statement that returns rows and materializes the result.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string, args ...any) (*core.ResultSet, error) {
	conn, err := b.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, statementError("execute query", err)
	}
	defer func() { _ = rows.Close() }()

	rs, err := ScanRows(rows)
	if err != nil {
		return nil, statementError("read rows", err)
	}
	return rs, nil
}

// ExecWrite executes a mutating statement in its own transaction.
// The transaction is rolled back on any failure before commit.
func (b *BaseSQLAdapter) ExecWrite(ctx context.Context, sqlStr string) (int64, error) {
	conn, err := b.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = conn.Close() }()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, connectivityError("begin transaction", err)
	}

	res, err := tx.ExecContext(ctx, sqlStr)
	if err != nil {
		_ = tx.Rollback()
		return 0, statementError("execute statement", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, statementError("read affected rows", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, statementError("commit transaction", err)
	}
	return affected, nil
}

// acquire takes a dedicated connection from the pool.
func (b *BaseSQLAdapter) acquire(ctx context.Context) (*sql.Conn, error) {
	if !b.IsConnected() {
		return nil, connectivityError("acquire connection", ErrNotConnected)
	}
	conn, err := b.DB.Conn(ctx)
	if err != nil {
		return nil, connectivityError("acquire connection", err)
	}
	return conn, nil
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// OpenAndPing opens a database/sql handle and verifies it with a ping.
// Concrete adapters call it from Connect.
func (b *BaseSQLAdapter) OpenAndPing(ctx context.Context, driverName, dsn string, cfg core.AdapterConfig) error {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return connectivityError("open "+driverName+" connection", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return connectivityError("ping "+driverName, err)
	}

	FreshSessions(db)
	b.DB = db
	b.Cfg = cfg
	return nil
}

// FreshSessions stops db from reusing released connections. Each acquire
// then opens a new session, the same as connecting per call.
// Single-connection in-memory databases undo this to keep their data.
func FreshSessions(db *sql.DB) {
	db.SetMaxIdleConns(0)
}
