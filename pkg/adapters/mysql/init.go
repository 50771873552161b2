// Package mysql provides a MySQL/MariaDB database adapter for querygate.
//
// This file registers the MySQL adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/querygate/pkg/adapters/mysql"
package mysql

import (
	"log/slog"

	"github.com/leapstack-labs/querygate/pkg/adapter"
)

func init() {
	adapter.Register("mysql", func(logger *slog.Logger) adapter.Adapter { return New(logger) }, "mariadb")
}
