package cli

// Adapters available to the CLI.
import (
	_ "github.com/leapstack-labs/querygate/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/querygate/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/querygate/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/querygate/pkg/adapters/sqlite"
)
