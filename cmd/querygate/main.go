// Package main provides the querygate CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/querygate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
