package commands

import (
	"errors"

	"github.com/leapstack-labs/querygate/internal/search"
	"github.com/spf13/cobra"
)

// SearchOptions holds options for the search command.
type SearchOptions struct {
	Table         string
	Columns       string
	Exact         bool
	Limit         int
	CaseSensitive bool
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search a table with LIKE",
		Long: `Search one table for a term across several columns.

Columns are inferred for WordPress tables (users, posts, comments, options)
when --columns is omitted. Search results are never cached.`,
		Example: `  querygate search john --table wp_users
  querygate search test@example.com --table wp_users --columns user_email --exact`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "", "Table to search")
	cmd.Flags().StringVar(&opts.Columns, "columns", "", "Comma-separated columns to search")
	cmd.Flags().BoolVar(&opts.Exact, "exact", false, "Match the whole value instead of wrapping the term in %")
	cmd.Flags().IntVar(&opts.Limit, "limit", search.DefaultLimit, "Maximum rows to return")
	cmd.Flags().BoolVar(&opts.CaseSensitive, "case-sensitive", false, "Match case exactly")

	return cmd
}

func runSearch(cmd *cobra.Command, term string, opts *SearchOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res := search.New(cc.Adapter, cc.Logger).Search(cmd.Context(), search.Request{
		Term:          term,
		Table:         opts.Table,
		Columns:       search.SplitColumns(opts.Columns),
		UseWildcard:   !opts.Exact,
		Limit:         opts.Limit,
		CaseSensitive: opts.CaseSensitive,
	})
	if err := cc.Renderer.Search(res); err != nil {
		return err
	}
	if res.Status == search.StatusError {
		return errors.New(res.Error)
	}
	return nil
}
