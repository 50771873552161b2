package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/querygate/internal/cli/render"
	"github.com/leapstack-labs/querygate/internal/config"
	"github.com/leapstack-labs/querygate/internal/gateway"
	"github.com/leapstack-labs/querygate/pkg/adapter"
	"github.com/leapstack-labs/querygate/pkg/core"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Adapter  core.Adapter
	Gateway  *gateway.Gateway
	Renderer *render.Renderer
}

// NewCommandContext connects to the configured target and builds a
// gateway and renderer. The cleanup function closes the connection and
// must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc, err := NewCommandContextWithoutDB(cmd)
	if err != nil {
		return nil, nil, err
	}

	adp, err := adapter.NewAdapter(cc.Cfg.Target.AdapterConfig(), cc.Logger)
	if err != nil {
		return nil, nil, err
	}
	if err := adp.Connect(cmd.Context(), cc.Cfg.Target.AdapterConfig()); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s target: %w", cc.Cfg.Target.Type, err)
	}

	cc.Adapter = adp
	cc.Gateway = gateway.New(adp, nil,
		gateway.WithTTL(cc.Cfg.Cache.TTL),
		gateway.WithLogger(cc.Logger),
	)

	cleanup := func() {
		_ = adp.Close()
	}
	return cc, cleanup, nil
}

// NewCommandContextWithoutDB creates a CommandContext without a database
// connection. Useful for commands that don't need database access.
func NewCommandContextWithoutDB(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	mode, err := render.ParseMode(cfg.Output)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: render.New(cmd.OutOrStdout(), mode),
	}, nil
}
