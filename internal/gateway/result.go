package gateway

import (
	"fmt"
	"slices"
	"time"

	"github.com/leapstack-labs/querygate/internal/classify"
	"github.com/leapstack-labs/querygate/pkg/core"
)

// previewLen is the maximum query length echoed back for withheld writes.
const previewLen = 100

// Request is a single Execute call.
type Request struct {
	Query        string `json:"query"`
	UseCache     bool   `json:"use_cache"`
	ForceRefresh bool   `json:"force_refresh"`
	ConfirmWrite bool   `json:"confirm_write"`
}

// NewRequest returns a request for query with caching enabled.
func NewRequest(query string) Request {
	return Request{Query: query, UseCache: true}
}

// Status is the outcome of an Execute call.
type Status string

const (
	// StatusOK means the query ran or was served from cache.
	StatusOK Status = "ok"
	// StatusConfirmationRequired means a write was withheld.
	StatusConfirmationRequired Status = "confirmation_required"
	// StatusError means the database rejected or failed the query.
	StatusError Status = "error"
)

// Result is the structured outcome of Execute. It is always well formed.
type Result struct {
	Status               Status        `json:"status" yaml:"status"`
	Success              bool          `json:"success" yaml:"success"`
	QueryType            classify.Kind `json:"query_type" yaml:"query_type"`
	Cached               bool          `json:"cached" yaml:"cached"`
	Columns              []string      `json:"columns,omitempty" yaml:"columns,omitempty"`
	Data                 []core.Row    `json:"data,omitempty" yaml:"data,omitempty"`
	Count                int           `json:"count" yaml:"count"`
	AffectedRows         int64         `json:"affected_rows" yaml:"affected_rows"`
	ConfirmationRequired bool          `json:"confirmation_required,omitempty" yaml:"confirmation_required,omitempty"`
	QueryPreview         string        `json:"query_preview,omitempty" yaml:"query_preview,omitempty"`
	Message              string        `json:"message,omitempty" yaml:"message,omitempty"`
	Error                string        `json:"error,omitempty" yaml:"error,omitempty"`

	// Err is the underlying error for StatusError results.
	Err error `json:"-" yaml:"-"`
}

func withheldResult(query string) *Result {
	return &Result{
		Status:               StatusConfirmationRequired,
		QueryType:            classify.Write,
		ConfirmationRequired: true,
		QueryPreview:         queryPreview(query),
		Error:                "Write operation detected. This query will modify data.",
		Message:              "To execute this query, set confirm_write=true.",
	}
}

func cacheHitResult(e *Entry) *Result {
	return &Result{
		Status:    StatusOK,
		Success:   true,
		QueryType: classify.Read,
		Cached:    true,
		Columns:   slices.Clone(e.Columns),
		Data:      cloneRows(e.Rows),
		Count:     len(e.Rows),
		Message:   "Data retrieved from cache",
	}
}

func readResult(rs *core.ResultSet) *Result {
	return &Result{
		Status:    StatusOK,
		Success:   true,
		QueryType: classify.Read,
		Columns:   rs.Columns,
		Data:      rs.Rows,
		Count:     rs.Len(),
		Message:   fmt.Sprintf("Query executed successfully. %d row(s) returned.", rs.Len()),
	}
}

func writeResult(affected int64) *Result {
	return &Result{
		Status:       StatusOK,
		Success:      true,
		QueryType:    classify.Write,
		AffectedRows: affected,
		Message:      fmt.Sprintf("Write operation completed successfully. %d row(s) affected.", affected),
	}
}

func errorResult(kind classify.Kind, err error) *Result {
	return &Result{
		Status:    StatusError,
		QueryType: kind,
		Error:     fmt.Sprintf("database error: %v", err),
		Err:       err,
	}
}

// queryPreview truncates query to previewLen characters.
func queryPreview(query string) string {
	runes := []rune(query)
	if len(runes) <= previewLen {
		return query
	}
	return string(runes[:previewLen]) + "..."
}

// ClearResult reports an explicit cache clear.
type ClearResult struct {
	Message string `json:"message" yaml:"message"`
	Cleared int    `json:"cleared" yaml:"cleared"`
}

// Info is a diagnostic snapshot of the cache.
type Info struct {
	TotalCachedQueries int         `json:"total_cached_queries" yaml:"total_cached_queries"`
	TTLSeconds         float64     `json:"ttl_seconds" yaml:"ttl_seconds"`
	Entries            []EntryInfo `json:"cache_entries" yaml:"cache_entries"`
}

// EntryInfo describes one cache entry at the time Info was taken.
type EntryInfo struct {
	Key        string  `json:"key" yaml:"key"`
	AgeSeconds float64 `json:"age_seconds" yaml:"age_seconds"`
	Valid      bool    `json:"is_valid" yaml:"is_valid"`
	RowCount   int     `json:"row_count" yaml:"row_count"`
}

// roundSeconds rounds d to hundredths of a second.
func roundSeconds(d time.Duration) float64 {
	return float64(d.Round(10*time.Millisecond)) / float64(time.Second)
}
