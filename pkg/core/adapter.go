package core

import (
	"context"
)

// Adapter defines the database collaborator the gateway executes against.
type Adapter interface {
	// Connect establishes a connection to the database.
	Connect(ctx context.Context, cfg AdapterConfig) error

	// Close closes the database connection.
	Close() error

	// Query executes a statement that returns rows and materializes them
	// with every value normalized to a Value.
	Query(ctx context.Context, sql string, args ...any) (*ResultSet, error)

	// ExecWrite executes a mutating statement inside a transaction and
	// commits it, returning the number of affected rows.
	ExecWrite(ctx context.Context, sql string) (int64, error)

	// Placeholder returns the bind placeholder for the n-th (1-based) argument.
	Placeholder(n int) string

	// DialectName returns the SQL dialect name of the adapter.
	DialectName() string
}

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Options  map[string]string
	Params   map[string]any
}
