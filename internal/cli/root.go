// Package cli provides the command-line interface for querygate.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/leapstack-labs/querygate/internal/cli/commands"
	"github.com/leapstack-labs/querygate/internal/cli/render"
	"github.com/leapstack-labs/querygate/internal/config"
	"github.com/leapstack-labs/querygate/pkg/adapter"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "querygate",
		Short: "querygate - cached, write-gated SQL gateway",
		Long: `querygate runs SQL against a single database on behalf of people and
automated agents.

Reads are cached by their exact text for a configurable TTL. Statements that
modify data are refused until explicitly confirmed, and every successful
write clears the cache.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logCfg := cfg.Log
			if cfg.Verbose && !cmd.Flags().Changed("log-level") {
				logCfg.Level = "debug"
			}
			logger, err := config.NewLogger(logCfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.Verbose && cfg.File != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", cfg.File)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./querygate.yaml)")
	pf.String("target-type", "", "Database type (mysql, postgres, duckdb, sqlite)")
	pf.String("host", "", "Database host")
	pf.Int("port", 0, "Database port")
	pf.String("database", "", "Database name, or file path for duckdb/sqlite")
	pf.String("user", "", "Database user")
	pf.String("cache-ttl", "", "Read cache TTL, in seconds or as a duration (e.g. 300, 5m)")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-format", "", "Log format (text, json)")
	pf.StringP("output", "o", "", "Output format (auto|table|json|yaml|csv|markdown)")
	pf.BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return render.Modes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("target-type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return targetTypeCompletions(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewReplCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for querygate.

To load completions:

Bash:
  $ source <(querygate completion bash)

Zsh:
  $ querygate completion zsh > "${fpath[1]}/_querygate"

Fish:
  $ querygate completion fish | source

PowerShell:
  PS> querygate completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

// targetTypeCompletions lists adapter names followed by their aliases,
// each alias described with the adapter it resolves to.
func targetTypeCompletions() []string {
	names := adapter.ListAdapters()
	out := slices.Clone(names)
	for _, name := range names {
		for _, alias := range adapter.Aliases(name) {
			out = append(out, alias+"\talias of "+name)
		}
	}
	return out
}
