package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/querygate/internal/gateway"
	"github.com/spf13/cobra"
)

// errWriteWithheld is returned when a write ran without --confirm-write.
var errWriteWithheld = errors.New("write not executed; re-run with --confirm-write to apply it")

// RunOptions holds options for the run command.
type RunOptions struct {
	NoCache      bool
	Refresh      bool
	ConfirmWrite bool
	Input        string
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [SQL]",
		Short: "Run a SQL query through the gateway",
		Long: `Run a single SQL statement against the configured target.

Reads are cached for the configured TTL. Writes (INSERT, UPDATE, DELETE,
ALTER, DROP, CREATE, TRUNCATE, REPLACE) are refused unless --confirm-write
is given; a successful write clears the cache.`,
		Example: `  # Read rows
  querygate run "SELECT * FROM wp_users"

  # Apply a write
  querygate run --confirm-write "UPDATE wp_users SET display_name='X' WHERE ID=1"

  # Read SQL from a file, output JSON
  querygate run -i report.sql -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Bypass the read cache")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "Skip the cache lookup and store the fresh result")
	cmd.Flags().BoolVar(&opts.ConfirmWrite, "confirm-write", false, "Allow a write statement to execute")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file (- for stdin)")

	return cmd
}

func runRun(cmd *cobra.Command, args []string, opts *RunOptions) error {
	query, err := readQuery(cmd, args, opts.Input)
	if err != nil {
		return err
	}

	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res := cc.Gateway.Execute(cmd.Context(), gateway.Request{
		Query:        query,
		UseCache:     cc.Cfg.Cache.Enabled && !opts.NoCache,
		ForceRefresh: opts.Refresh,
		ConfirmWrite: opts.ConfirmWrite,
	})
	if err := cc.Renderer.Result(res); err != nil {
		return err
	}
	return resultError(res)
}

// resultError maps a non-ok result to the command's error.
func resultError(res *gateway.Result) error {
	switch res.Status {
	case gateway.StatusConfirmationRequired:
		return errWriteWithheld
	case gateway.StatusError:
		return errors.New(res.Error)
	}
	return nil
}

// readQuery takes SQL from the arguments or from --input.
func readQuery(cmd *cobra.Command, args []string, input string) (string, error) {
	if input != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("pass SQL either as an argument or with --input, not both")
		}
		var data []byte
		var err error
		if input == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(input)
		}
		if err != nil {
			return "", fmt.Errorf("failed to read SQL: %w", err)
		}
		args = []string{string(data)}
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return "", fmt.Errorf("no SQL given")
	}
	return query, nil
}
