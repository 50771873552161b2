// Package adapter provides the database adapter contract and the shared
// database/sql implementation used by querygate's concrete adapters.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves with this package's registry in init().
package adapter

import (
	"github.com/leapstack-labs/querygate/pkg/core"
)

// Type aliases so callers can depend on this package alone.
type (
	// Adapter is an alias for core.Adapter.
	Adapter = core.Adapter

	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig
)
