// Package classify labels SQL text as a read or a write.
//
// Classification is syntactic: only the leading keyword is inspected. A
// SELECT that calls a function with side effects is still a read. Callers
// that need stronger guarantees must enforce them at the database (for
// example with a read-only account); this package is a trust boundary, not
// a sandbox.
package classify

import (
	"encoding/json"
	"slices"
	"strings"
)

// Kind is the classification of a query.
type Kind int

const (
	// Read is any statement that does not start with a write keyword.
	Read Kind = iota
	// Write is a statement that mutates data or schema.
	Write
)

// writeKeywords are the leading keywords that mark a statement as a write.
var writeKeywords = []string{
	"INSERT",
	"UPDATE",
	"DELETE",
	"ALTER",
	"DROP",
	"CREATE",
	"TRUNCATE",
	"REPLACE",
}

// Classify returns Write when the query's leading keyword is a write
// keyword and Read otherwise. The keyword is the run of ASCII letters after
// leading whitespace, compared case-insensitively, so UPDATEDSTATS or
// CREATED is not a write. It never fails: empty or malformed input is a Read
// and is left for the database to reject.
func Classify(query string) Kind {
	if slices.Contains(writeKeywords, leadingKeyword(query)) {
		return Write
	}
	return Read
}

// leadingKeyword returns the upper-cased first word of query.
func leadingKeyword(query string) string {
	q := strings.TrimSpace(query)
	end := strings.IndexFunc(q, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z')
	})
	if end < 0 {
		end = len(q)
	}
	return strings.ToUpper(q[:end])
}

// String returns "READ" or "WRITE".
func (k Kind) String() string {
	if k == Write {
		return "WRITE"
	}
	return "READ"
}

// MarshalJSON encodes the kind as its string form.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// MarshalYAML encodes the kind as its string form.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}
