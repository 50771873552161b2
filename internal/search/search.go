// Package search runs LIKE searches over a single table.
//
// It is a plain client of the database adapter. Results never touch the
// gateway cache. Vague requests are answered with a clarification result
// instead of a query, so callers can ask the person what they meant.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/leapstack-labs/querygate/pkg/core"
)

// DefaultLimit is the row limit when a request does not set one.
const DefaultLimit = 100

// SuggestedTables are offered when no table is given.
var SuggestedTables = []string{"wp_users", "wp_posts", "wp_comments", "wp_options", "wp_usermeta"}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// columnFamilies maps a table name fragment to the columns searched by default.
var columnFamilies = []struct {
	fragment string
	columns  []string
}{
	{"user", []string{"user_login", "user_email", "display_name", "user_nicename"}},
	{"post", []string{"post_title", "post_content", "post_name"}},
	{"comment", []string{"comment_content", "comment_author", "comment_author_email"}},
	{"option", []string{"option_name", "option_value"}},
}

// Request describes a search.
type Request struct {
	Term          string   `json:"search_term"`
	Table         string   `json:"table"`
	Columns       []string `json:"columns"`
	UseWildcard   bool     `json:"use_wildcard"`
	Limit         int      `json:"limit"`
	CaseSensitive bool     `json:"case_sensitive"`
}

// NewRequest returns a wildcard search for term in table with the default limit.
func NewRequest(term, table string) Request {
	return Request{Term: term, Table: table, UseWildcard: true, Limit: DefaultLimit}
}

// Status is the outcome of a search.
type Status string

// Search statuses.
const (
	StatusOK                 Status = "ok"
	StatusNeedsClarification Status = "needs_clarification"
	StatusError              Status = "error"
)

// Result is the outcome of Search.
type Result struct {
	Status             Status     `json:"status" yaml:"status"`
	NeedsClarification bool       `json:"needs_clarification,omitempty" yaml:"needs_clarification,omitempty"`
	Table              string     `json:"table,omitempty" yaml:"table,omitempty"`
	ColumnsSearched    []string   `json:"columns_searched,omitempty" yaml:"columns_searched,omitempty"`
	SearchPattern      string     `json:"search_pattern,omitempty" yaml:"search_pattern,omitempty"`
	Columns            []string   `json:"columns,omitempty" yaml:"columns,omitempty"`
	Data               []core.Row `json:"data,omitempty" yaml:"data,omitempty"`
	Count              int        `json:"count" yaml:"count"`
	SuggestedTables    []string   `json:"suggested_tables,omitempty" yaml:"suggested_tables,omitempty"`
	Suggestion         string     `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Warning            string     `json:"warning,omitempty" yaml:"warning,omitempty"`
	Message            string     `json:"message,omitempty" yaml:"message,omitempty"`
	Error              string     `json:"error,omitempty" yaml:"error,omitempty"`
}

func clarify(msg string) *Result {
	return &Result{Status: StatusNeedsClarification, NeedsClarification: true, Message: msg}
}

// Searcher runs searches against one adapter.
type Searcher struct {
	adapter core.Adapter
	logger  *slog.Logger
}

// New creates a Searcher. A nil logger discards output.
func New(adp core.Adapter, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Searcher{adapter: adp, logger: logger}
}

// Search validates req, builds a parameterized query and runs it.
func (s *Searcher) Search(ctx context.Context, req Request) *Result {
	term := strings.TrimSpace(req.Term)
	if term == "" {
		res := clarify("Please provide a search term to look for.")
		res.Error = "Search term cannot be empty."
		return res
	}
	if len([]rune(term)) == 1 && req.UseWildcard {
		res := clarify("Would you like to refine your search term? Single character searches can be very broad.")
		res.Warning = "Single character search with wildcard may return many results."
		return res
	}

	table := strings.TrimSpace(req.Table)
	if table == "" {
		res := clarify("No table specified. Which table would you like to search? Common options: " +
			strings.Join(SuggestedTables[:4], ", ") + ", etc.")
		res.SuggestedTables = SuggestedTables
		return res
	}
	if !identPattern.MatchString(table) {
		return clarify(fmt.Sprintf("%q is not a valid table name. Which table would you like to search?", table))
	}

	columns := cleanColumns(req.Columns)
	if len(columns) == 0 {
		columns = inferColumns(table)
		if columns == nil {
			res := clarify(fmt.Sprintf("Table '%s' specified but no columns. Which columns would you like to search in this table?", table))
			res.Suggestion = "You can specify columns as a comma-separated list, e.g., 'column1,column2,column3'"
			return res
		}
	}
	for _, c := range columns {
		if !identPattern.MatchString(c) {
			return clarify(fmt.Sprintf("%q is not a valid column name. Please specify which columns to search.", c))
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := buildQuery(s.adapter.DialectName(), s.adapter.Placeholder, table, columns, term, req.UseWildcard, req.CaseSensitive, limit)
	log := s.logger.With(slog.String("table", table))
	log.Debug("running search", slog.String("sql", q.SQL))

	rs, err := s.adapter.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		log.Warn("search failed", slog.String("error", err.Error()))
		return errorResult(table, err)
	}

	res := &Result{
		Status:          StatusOK,
		Table:           table,
		ColumnsSearched: columns,
		SearchPattern:   q.Pattern,
		Columns:         rs.Columns,
		Data:            rs.Rows,
		Count:           rs.Len(),
		Message:         fmt.Sprintf("Found %d result(s) in %s matching '%s'", rs.Len(), table, req.Term),
	}
	if res.Count >= limit {
		res.Warning = fmt.Sprintf("Results limited to %d rows. Consider refining your search for more specific results.", limit)
	}
	return res
}

// SplitColumns splits a comma-separated column list.
func SplitColumns(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return cleanColumns(strings.Split(s, ","))
}

func cleanColumns(in []string) []string {
	var out []string
	for _, c := range in {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// inferColumns picks default columns from the table name, or nil.
func inferColumns(table string) []string {
	lower := strings.ToLower(table)
	for _, f := range columnFamilies {
		if strings.Contains(lower, f.fragment) {
			return append([]string(nil), f.columns...)
		}
	}
	return nil
}

func errorResult(table string, err error) *Result {
	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case isMissingTable(lower):
		res := clarify(fmt.Sprintf("Table '%s' not found. Please verify the table name or ask which table to search.", table))
		res.Error = msg
		return res
	case isUnknownColumn(lower):
		res := clarify("One or more columns don't exist in this table. Please verify column names or ask which columns are available.")
		res.Error = msg
		return res
	}
	return &Result{Status: StatusError, Error: fmt.Sprintf("database error: %s", msg)}
}

// isMissingTable matches the missing-table messages of the supported drivers.
func isMissingTable(msg string) bool {
	return (strings.Contains(msg, "table") && strings.Contains(msg, "doesn't exist")) ||
		strings.Contains(msg, "no such table") ||
		(strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist")) ||
		(strings.Contains(msg, "table with name") && strings.Contains(msg, "does not exist"))
}

// isUnknownColumn matches the unknown-column messages of the supported drivers.
func isUnknownColumn(msg string) bool {
	return strings.Contains(msg, "unknown column") ||
		strings.Contains(msg, "no such column") ||
		(strings.Contains(msg, "column") && strings.Contains(msg, "does not exist")) ||
		(strings.Contains(msg, "referenced column") && strings.Contains(msg, "not found"))
}
