// Package core defines the shared language of the querygate system.
//
// This package contains:
//   - The database collaborator contract (Adapter, AdapterConfig)
//   - Result data (Value, Row, ResultSet)
//   - Configuration types (TargetConfig)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
