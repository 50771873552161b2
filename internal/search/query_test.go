package search

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func questionMark(int) string { return "?" }
func dollar(n int) string     { return "$" + strconv.Itoa(n) }

func TestBuildQuery(t *testing.T) {
	cols := []string{"user_login", "user_email"}

	tests := []struct {
		name        string
		dialect     string
		placeholder func(int) string
		term        string
		wildcard    bool
		sensitive   bool
		wantSQL     string
		wantPattern string
	}{
		{
			name: "mysql insensitive", dialect: "mysql", placeholder: questionMark,
			term: "john", wildcard: true,
			wantSQL:     "SELECT * FROM wp_users WHERE user_login LIKE ? OR user_email LIKE ? LIMIT ?",
			wantPattern: "%john%",
		},
		{
			name: "mysql sensitive", dialect: "mysql", placeholder: questionMark,
			term: "John", wildcard: true, sensitive: true,
			wantSQL:     "SELECT * FROM wp_users WHERE user_login LIKE BINARY ? OR user_email LIKE BINARY ? LIMIT ?",
			wantPattern: "%John%",
		},
		{
			name: "postgres insensitive", dialect: "postgres", placeholder: dollar,
			term: "john", wildcard: true,
			wantSQL:     "SELECT * FROM wp_users WHERE user_login ILIKE $1 OR user_email ILIKE $2 LIMIT $3",
			wantPattern: "%john%",
		},
		{
			name: "postgres sensitive exact", dialect: "postgres", placeholder: dollar,
			term: "john@example.com", sensitive: true,
			wantSQL:     "SELECT * FROM wp_users WHERE user_login LIKE $1 OR user_email LIKE $2 LIMIT $3",
			wantPattern: "john@example.com",
		},
		{
			name: "sqlite sensitive escapes glob", dialect: "sqlite", placeholder: questionMark,
			term: "a*b?", wildcard: true, sensitive: true,
			wantSQL:     "SELECT * FROM wp_users WHERE user_login GLOB ? OR user_email GLOB ? LIMIT ?",
			wantPattern: "*a[*]b[?]*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildQuery(tt.dialect, tt.placeholder, "wp_users", cols, tt.term, tt.wildcard, tt.sensitive, 50)
			assert.Equal(t, tt.wantSQL, q.SQL)
			assert.Equal(t, tt.wantPattern, q.Pattern)
			assert.Equal(t, []any{tt.wantPattern, tt.wantPattern, 50}, q.Args)
		})
	}
}
