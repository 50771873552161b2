package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/querygate/internal/gateway"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadQuery(t *testing.T) {
	cmd := &cobra.Command{}

	q, err := readQuery(cmd, []string{"SELECT", "*", "FROM", "wp_users"}, "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM wp_users", q)

	path := filepath.Join(t.TempDir(), "q.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT 1;\n"), 0o600))
	q, err = readQuery(cmd, nil, path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", q)

	cmd.SetIn(strings.NewReader("  SELECT 2  "))
	q, err = readQuery(cmd, nil, "-")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 2", q)

	_, err = readQuery(cmd, []string{"SELECT 1"}, path)
	assert.Error(t, err)

	_, err = readQuery(cmd, nil, "")
	assert.ErrorContains(t, err, "no SQL given")

	_, err = readQuery(cmd, nil, filepath.Join(t.TempDir(), "missing.sql"))
	assert.ErrorContains(t, err, "failed to read SQL")
}

func TestResultError(t *testing.T) {
	assert.NoError(t, resultError(&gateway.Result{Status: gateway.StatusOK}))
	assert.True(t, errors.Is(resultError(&gateway.Result{Status: gateway.StatusConfirmationRequired}), errWriteWithheld))
	assert.EqualError(t, resultError(&gateway.Result{Status: gateway.StatusError, Error: "database error: x"}), "database error: x")
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewRunCommand(), "run [SQL]", []string{"no-cache", "refresh", "confirm-write", "input"}},
		{NewSearchCommand(), "search <term>", []string{"table", "columns", "exact", "limit", "case-sensitive"}},
		{NewServeCommand(), "serve", []string{"addr"}},
		{NewReplCommand(), "repl", nil},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}
