package adapter

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when an operation runs before Connect.
var ErrNotConnected = errors.New("database connection not established")

// ErrorKind distinguishes connectivity failures from statement failures.
type ErrorKind string

const (
	// KindConnectivity covers connect, ping and connection acquisition failures.
	KindConnectivity ErrorKind = "connectivity"
	// KindStatement covers syntax errors, missing objects and constraint violations.
	KindStatement ErrorKind = "statement"
)

// DatabaseError wraps a driver error with the operation that failed.
type DatabaseError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// IsConnectivity reports whether err is a connectivity DatabaseError.
func IsConnectivity(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr) && dbErr.Kind == KindConnectivity
}

func connectivityError(op string, err error) error {
	return &DatabaseError{Kind: KindConnectivity, Op: op, Err: err}
}

func statementError(op string, err error) error {
	return &DatabaseError{Kind: KindStatement, Op: op, Err: err}
}
