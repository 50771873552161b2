package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/querygate/internal/cli/render"
	"github.com/leapstack-labs/querygate/internal/gateway"
	"github.com/spf13/cobra"
)

const (
	replPrompt     = "querygate> "
	replContPrompt = "      ...> "
)

// NewReplCommand creates the interactive shell command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL shell with a shared cache",
		Long: `Start an interactive shell against the configured target.

All statements share one gateway, so repeated reads are served from the
cache until they expire or a write clears it. Writes typed directly are
refused; use .confirm to run one.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "querygate (%s, cache TTL %s)\n", cc.Cfg.Target.Type, cc.Gateway.TTL())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	r := &repl{
		gw:       cc.Gateway,
		renderer: cc.Renderer,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
		useCache: cc.Cfg.Cache.Enabled,
	}
	return r.loop(cmd.Context(), rl)
}

// historyFile returns the REPL history path, or "" to disable history.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "querygate")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

// lineReader is the part of readline the REPL loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

type repl struct {
	gw       *gateway.Gateway
	renderer *render.Renderer
	out      io.Writer
	errOut   io.Writer
	useCache bool
}

func (r *repl) loop(ctx context.Context, lr lineReader) error {
	var buf strings.Builder
	for {
		line, err := lr.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			lr.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Dot-commands are only recognized at the start of a statement.
		if buf.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := r.dotCommand(ctx, line); quit {
				return nil
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon
		buf.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buf.WriteString(" ")
			lr.SetPrompt(replContPrompt)
			continue
		}
		lr.SetPrompt(replPrompt)

		query := strings.TrimSuffix(buf.String(), ";")
		buf.Reset()
		r.execute(ctx, gateway.Request{Query: query, UseCache: r.useCache})
	}
}

// dotCommand handles one dot-command and reports whether to quit.
func (r *repl) dotCommand(ctx context.Context, line string) bool {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSuffix(strings.TrimSpace(rest), ";")

	switch strings.ToLower(name) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.out)

	case ".cache":
		r.report(r.renderer.CacheInfo(r.gw.CacheInfo()))

	case ".clear":
		r.report(r.renderer.Clear(r.gw.ClearCache()))

	case ".confirm":
		if rest == "" {
			_, _ = fmt.Fprintln(r.errOut, "Usage: .confirm <sql>")
			break
		}
		r.execute(ctx, gateway.Request{Query: rest, UseCache: r.useCache, ConfirmWrite: true})

	case ".refresh":
		if rest == "" {
			_, _ = fmt.Fprintln(r.errOut, "Usage: .refresh <sql>")
			break
		}
		r.execute(ctx, gateway.Request{Query: rest, UseCache: r.useCache, ForceRefresh: true})

	default:
		_, _ = fmt.Fprintf(r.errOut, "Unknown command: %s (type .help for commands)\n", name)
	}
	return false
}

func (r *repl) execute(ctx context.Context, req gateway.Request) {
	res := r.gw.Execute(ctx, req)
	r.report(r.renderer.Result(res))

	switch res.Status {
	case gateway.StatusConfirmationRequired:
		_, _ = fmt.Fprintln(r.errOut, "Use .confirm <sql> to run it.")
	case gateway.StatusError:
		_, _ = fmt.Fprintf(r.errOut, "Error: %s\n", res.Error)
	}
	_, _ = fmt.Fprintln(r.out)
}

func (r *repl) report(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(r.errOut, "Error: %v\n", err)
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .cache           Show cached queries
  .clear           Clear the query cache
  .confirm <sql>   Run a write statement
  .refresh <sql>   Run a read, bypassing the cached result
  .quit / .exit    Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Writes typed directly are refused; use .confirm
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

func newREPLCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, kw := range []string{"SELECT", "INSERT INTO", "UPDATE", "DELETE FROM", "SHOW TABLES", "DESCRIBE"} {
		items = append(items, readline.PcItem(kw))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".cache"),
		readline.PcItem(".clear"),
		readline.PcItem(".confirm"),
		readline.PcItem(".refresh"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
