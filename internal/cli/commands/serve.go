package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/querygate/internal/search"
	"github.com/leapstack-labs/querygate/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query tools over HTTP",
		Long: `Start the HTTP tool server.

Endpoints:
  POST /tools/run_query    {query, use_cache, force_refresh, confirm_write}
  POST /tools/clear_cache
  GET  /tools/cache_info
  POST /tools/search_sql   {search_term, table, columns, use_wildcard, limit, case_sensitive}
  GET  /tools              tool catalog
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default from server.addr)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Gateway:        cc.Gateway,
		Searcher:       search.New(cc.Adapter, cc.Logger),
		Addr:           cc.Cfg.Server.Addr,
		Logger:         cc.Logger,
		CacheByDefault: cc.Cfg.Cache.Enabled,
	})

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Serving query tools on http://%s (Ctrl+C to stop)\n", cc.Cfg.Server.Addr)
	return srv.Serve(ctx)
}
