package classify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Kind
	}{
		{"lower insert", "insert into t values (1)", Write},
		{"upper insert", "INSERT INTO t VALUES (1)", Write},
		{"leading spaces mixed case", "  Insert into t values (1)", Write},
		{"leading newline and tab", "\n\tUPDATE wp_users SET display_name='X' WHERE ID=1", Write},
		{"delete", "DELETE FROM wp_logs", Write},
		{"alter", "ALTER TABLE wp_users ADD COLUMN x INT", Write},
		{"drop", "DROP TABLE wp_logs", Write},
		{"create", "create index idx ON t (a)", Write},
		{"truncate", "TRUNCATE wp_logs", Write},
		{"replace", "REPLACE INTO wp_options VALUES (1, 'a', 'b')", Write},
		{"keyword followed by paren", "INSERT(id) VALUES (1)", Write},
		{"keyword followed by tab", "delete\tFROM t", Write},
		{"bare keyword", "drop", Write},
		{"keyword then semicolon", "TRUNCATE;", Write},
		{"longer word starting with update", "UPDATEDSTATS", Read},
		{"longer word starting with create", "CREATED", Read},
		{"longer word starting with replace", "REPLACEMENT", Read},
		{"identifier starting with update", "UPDATEd_view_select", Read},
		{"non-ascii lookalike", "\u0131nsert into t values (1)", Read},
		{"select upper", "SELECT * FROM wp_users", Read},
		{"select lower", "select * from wp_users", Read},
		{"empty", "", Read},
		{"whitespace only", "   \n ", Read},
		{"show", "SHOW TABLES", Read},
		{"cte with write is syntactic read", "WITH x AS (DELETE FROM t RETURNING *) SELECT * FROM x", Read},
		{"comment before write is read", "-- note\nDELETE FROM t", Read},
		{"select calling procedure is read", "SELECT purge_logs()", Read},
		{"garbage", "$$$ not sql", Read},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}

func TestClassify_Stable(t *testing.T) {
	q := "  DrOp TABLE wp_logs"
	for range 10 {
		assert.Equal(t, Write, Classify(q))
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "READ", Read.String())
	assert.Equal(t, "WRITE", Write.String())

	data, err := json.Marshal(map[string]Kind{"query_type": Write})
	require.NoError(t, err)
	assert.JSONEq(t, `{"query_type":"WRITE"}`, string(data))

	y, err := Read.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "READ", y)
}
