// Package render writes gateway and search results for the terminal.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/querygate/internal/classify"
	"github.com/leapstack-labs/querygate/internal/gateway"
	"github.com/leapstack-labs/querygate/internal/search"
	"github.com/leapstack-labs/querygate/pkg/core"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode is an output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeTable    Mode = "table"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
	ModeCSV      Mode = "csv"
	ModeMarkdown Mode = "markdown"
)

// Modes lists the accepted output formats, for flag completion.
var Modes = []string{"auto", "table", "json", "yaml", "csv", "markdown"}

// ParseMode parses an output format name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "table", "text":
		return ModeTable, nil
	case "json":
		return ModeJSON, nil
	case "yaml", "yml":
		return ModeYAML, nil
	case "csv":
		return ModeCSV, nil
	case "markdown", "md":
		return ModeMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected one of %s)", s, strings.Join(Modes, ", "))
}

// Renderer writes results in one output mode.
type Renderer struct {
	w    io.Writer
	mode Mode
}

// New creates a renderer. ModeAuto becomes a table on a terminal and
// markdown otherwise.
func New(w io.Writer, mode Mode) *Renderer {
	if mode == ModeAuto || mode == "" {
		mode = ModeMarkdown
		if isTerminal(w) {
			mode = ModeTable
		}
	}
	return &Renderer{w: w, mode: mode}
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Structured reports whether the mode encodes whole results (JSON or YAML).
func (r *Renderer) Structured() bool {
	return r.mode == ModeJSON || r.mode == ModeYAML
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Result writes a gateway result.
func (r *Renderer) Result(res *gateway.Result) error {
	if r.Structured() {
		return r.encode(res)
	}

	switch res.Status {
	case gateway.StatusConfirmationRequired:
		r.line(res.Error)
		r.line("Query: " + res.QueryPreview)
		r.line(res.Message)
		return nil
	case gateway.StatusError:
		// The caller reports the error.
		return nil
	}

	if res.QueryType == classify.Write {
		r.line(res.Message)
		return nil
	}

	if err := r.rows(res.Columns, res.Data); err != nil {
		return err
	}
	if r.mode != ModeCSV {
		footer := fmt.Sprintf("(%d rows", res.Count)
		if res.Cached {
			footer += ", cached"
		}
		r.line(footer + ")")
	}
	return nil
}

// Search writes a search result.
func (r *Renderer) Search(res *search.Result) error {
	if r.Structured() {
		return r.encode(res)
	}

	if res.Status != search.StatusOK {
		if res.Error != "" && res.Status == search.StatusNeedsClarification {
			r.line("Error: " + res.Error)
		}
		if res.Warning != "" {
			r.line("Warning: " + res.Warning)
		}
		if res.Message != "" {
			r.line(res.Message)
		}
		if len(res.SuggestedTables) > 0 {
			r.line("Suggested tables: " + strings.Join(res.SuggestedTables, ", "))
		}
		if res.Suggestion != "" {
			r.line(res.Suggestion)
		}
		return nil
	}

	if err := r.rows(res.Columns, res.Data); err != nil {
		return err
	}
	if r.mode == ModeCSV {
		return nil
	}
	r.line(res.Message)
	if res.Warning != "" {
		r.line("Warning: " + res.Warning)
	}
	return nil
}

// Clear writes the outcome of an explicit cache clear.
func (r *Renderer) Clear(res gateway.ClearResult) error {
	if r.Structured() {
		return r.encode(res)
	}
	r.line(fmt.Sprintf("%s (%d entries removed)", res.Message, res.Cleared))
	return nil
}

// CacheInfo writes a cache snapshot.
func (r *Renderer) CacheInfo(info gateway.Info) error {
	if r.Structured() {
		return r.encode(info)
	}

	cols := []string{"key", "age_seconds", "is_valid", "row_count"}
	rows := make([]core.Row, 0, len(info.Entries))
	for _, e := range info.Entries {
		rows = append(rows, core.Row{
			"key":         core.StringValue(e.Key),
			"age_seconds": core.StringValue(fmt.Sprintf("%.2f", e.AgeSeconds)),
			"is_valid":    core.StringValue(fmt.Sprintf("%t", e.Valid)),
			"row_count":   core.StringValue(fmt.Sprintf("%d", e.RowCount)),
		})
	}

	if r.mode != ModeCSV {
		r.line(fmt.Sprintf("Cached queries: %d (TTL %gs)", info.TotalCachedQueries, info.TTLSeconds))
		if len(rows) == 0 {
			return nil
		}
	}
	return r.rows(cols, rows)
}

func (r *Renderer) rows(cols []string, rows []core.Row) error {
	switch r.mode {
	case ModeCSV:
		return renderCSV(r.w, cols, rows)
	case ModeMarkdown:
		renderMarkdown(r.w, cols, rows)
	default:
		renderTable(r.w, cols, rows)
	}
	return nil
}

func (r *Renderer) encode(v any) error {
	if r.mode == ModeYAML {
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) line(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}

func renderTable(w io.Writer, cols []string, rows []core.Row) {
	if len(cols) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	// Column names are data; StyleLight would upper-case them.
	t.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range rows {
		out := make(table.Row, len(cols))
		for i, col := range cols {
			out[i] = formatValue(row[col])
		}
		t.AppendRow(out)
	}
	t.Render()
}

func renderMarkdown(w io.Writer, cols []string, rows []core.Row) {
	if len(cols) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, row := range rows {
		values := make([]string, len(cols))
		for i, col := range cols {
			values[i] = escapeMarkdown(formatValue(row[col]))
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
}

func renderCSV(w io.Writer, cols []string, rows []core.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, row := range rows {
		values := make([]string, len(cols))
		for i, col := range cols {
			values[i] = formatValue(row[col])
		}
		if err := cw.Write(values); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v core.Value) string {
	if v.IsNull() {
		return "NULL"
	}
	return v.String
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
