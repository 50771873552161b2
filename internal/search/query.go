package search

import (
	"strings"
)

// query is a built search statement.
type query struct {
	SQL     string
	Args    []any
	Pattern string
}

// globEscaper quotes GLOB metacharacters so the term matches literally.
var globEscaper = strings.NewReplacer("*", "[*]", "?", "[?]", "[", "[[]")

// buildQuery renders SELECT * FROM table WHERE c1 <op> p1 OR ... LIMIT pN.
// Identifiers must already be validated; only the pattern and limit are bound.
func buildQuery(dialect string, placeholder func(int) string, table string, columns []string, term string, wildcard, caseSensitive bool, limit int) query {
	op := "LIKE"
	pattern := term
	if wildcard {
		pattern = "%" + term + "%"
	}

	switch dialect {
	case "mysql":
		if caseSensitive {
			op = "LIKE BINARY"
		}
	case "postgres", "duckdb":
		if !caseSensitive {
			op = "ILIKE"
		}
	case "sqlite":
		// LIKE is case-insensitive for ASCII; GLOB is the case-sensitive match.
		if caseSensitive {
			op = "GLOB"
			pattern = globEscaper.Replace(term)
			if wildcard {
				pattern = "*" + pattern + "*"
			}
		}
	}

	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(table)
	b.WriteString(" WHERE ")

	args := make([]any, 0, len(columns)+1)
	for i, col := range columns {
		if i > 0 {
			b.WriteString(" OR ")
		}
		b.WriteString(col)
		b.WriteString(" ")
		b.WriteString(op)
		b.WriteString(" ")
		b.WriteString(placeholder(i + 1))
		args = append(args, pattern)
	}
	b.WriteString(" LIMIT ")
	b.WriteString(placeholder(len(columns) + 1))
	args = append(args, limit)

	return query{SQL: b.String(), Args: args, Pattern: pattern}
}
