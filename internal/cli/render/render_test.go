package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/leapstack-labs/querygate/internal/classify"
	"github.com/leapstack-labs/querygate/internal/gateway"
	"github.com/leapstack-labs/querygate/internal/search"
	"github.com/leapstack-labs/querygate/pkg/core"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func cachedUsers() *gateway.Result {
	return &gateway.Result{
		Status:    gateway.StatusOK,
		Success:   true,
		QueryType: classify.Read,
		Cached:    true,
		Columns:   []string{"ID", "user_login", "display_name"},
		Data: []core.Row{
			{"ID": core.StringValue("1"), "user_login": core.StringValue("admin"), "display_name": core.StringValue("Admin, Site")},
			{"ID": core.StringValue("2"), "user_login": core.StringValue("alice"), "display_name": core.Null()},
		},
		Count:   2,
		Message: "Data retrieved from cache",
	}
}

func sampleInfo() gateway.Info {
	return gateway.Info{
		TotalCachedQueries: 2,
		TTLSeconds:         300,
		Entries: []gateway.EntryInfo{
			{Key: "1a2b3c4d...", AgeSeconds: 1.75, Valid: true, RowCount: 3},
			{Key: "9f8e7d6c...", AgeSeconds: 302.5, Valid: false, RowCount: 1},
		},
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"":         ModeAuto,
		"auto":     ModeAuto,
		"text":     ModeTable,
		"TABLE":    ModeTable,
		"json":     ModeJSON,
		"yml":      ModeYAML,
		"csv":      ModeCSV,
		"md":       ModeMarkdown,
		"markdown": ModeMarkdown,
	}
	for in, want := range tests {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestNew_AutoWithoutTerminal(t *testing.T) {
	assert.Equal(t, ModeMarkdown, New(&bytes.Buffer{}, ModeAuto).Mode())
	assert.Equal(t, ModeCSV, New(&bytes.Buffer{}, ModeCSV).Mode())
}

func TestResult_Golden(t *testing.T) {
	tests := []struct {
		golden string
		mode   Mode
	}{
		{"read_result.json", ModeJSON},
		{"read_result.csv", ModeCSV},
		{"read_result.md", ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, New(&buf, tt.mode).Result(cachedUsers()))
			newGoldie(t).Assert(t, tt.golden, buf.Bytes())
		})
	}
}

func TestResult_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModeTable).Result(cachedUsers()))

	out := buf.String()
	for _, want := range []string{"ID", "user_login", "display_name", "Admin, Site", "NULL", "(2 rows, cached)"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "USER_LOGIN", "column names are printed as returned")
	assert.NotContains(t, out, "DISPLAY_NAME")
}

func TestResult_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModeYAML).Result(cachedUsers()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "READ", decoded["query_type"])
	assert.Equal(t, true, decoded["cached"])

	data, ok := decoded["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)
	second, ok := data[1].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, second["display_name"])
	assert.Equal(t, "2", second["ID"], "values stay strings")
}

func TestResult_WithheldWrite(t *testing.T) {
	res := gateway.New(nil, nil).Execute(context.Background(), gateway.Request{Query: "DROP TABLE wp_logs"})

	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModeMarkdown).Result(res))
	newGoldie(t).Assert(t, "withheld_write.md", buf.Bytes())
}

func TestResult_WriteAndError(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, ModeTable)

	require.NoError(t, r.Result(&gateway.Result{
		Status:       gateway.StatusOK,
		Success:      true,
		QueryType:    classify.Write,
		AffectedRows: 1,
		Message:      "Write operation completed successfully. 1 row(s) affected.",
	}))
	assert.Equal(t, "Write operation completed successfully. 1 row(s) affected.\n", buf.String())

	buf.Reset()
	require.NoError(t, r.Result(&gateway.Result{Status: gateway.StatusError, Error: "database error: boom"}))
	assert.Empty(t, buf.String(), "errors are reported by the caller")
}

func TestCacheInfo_Golden(t *testing.T) {
	tests := []struct {
		golden string
		mode   Mode
	}{
		{"cache_info.md", ModeMarkdown},
		{"cache_info.json", ModeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, New(&buf, tt.mode).CacheInfo(sampleInfo()))
			newGoldie(t).Assert(t, tt.golden, buf.Bytes())
		})
	}
}

func TestCacheInfo_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModeTable).CacheInfo(gateway.Info{TTLSeconds: 300, Entries: []gateway.EntryInfo{}}))
	assert.Equal(t, "Cached queries: 0 (TTL 300s)\n", buf.String())
}

func TestClear(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModeMarkdown).Clear(gateway.ClearResult{Message: "Cache cleared successfully", Cleared: 4}))
	assert.Equal(t, "Cache cleared successfully (4 entries removed)\n", buf.String())

	buf.Reset()
	require.NoError(t, New(&buf, ModeJSON).Clear(gateway.ClearResult{Message: "Cache cleared successfully", Cleared: 4}))
	assert.JSONEq(t, `{"message":"Cache cleared successfully","cleared":4}`, buf.String())
}

func TestSearch(t *testing.T) {
	res := search.New(nil, nil).Search(context.Background(), search.NewRequest("admin", ""))

	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModeMarkdown).Search(res))
	newGoldie(t).Assert(t, "search_no_table.md", buf.Bytes())

	buf.Reset()
	require.NoError(t, New(&buf, ModeMarkdown).Search(&search.Result{
		Status:  search.StatusOK,
		Table:   "wp_users",
		Columns: []string{"ID", "user_login"},
		Data:    []core.Row{{"ID": core.StringValue("1"), "user_login": core.StringValue("admin")}},
		Count:   1,
		Message: "Found 1 result(s) in wp_users matching 'adm'",
		Warning: "Results limited to 1 rows. Consider refining your search for more specific results.",
	}))
	assert.Equal(t, "| ID | user_login |\n| --- | --- |\n| 1 | admin |\n"+
		"Found 1 result(s) in wp_users matching 'adm'\n"+
		"Warning: Results limited to 1 rows. Consider refining your search for more specific results.\n",
		buf.String())
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `a\|b c`, escapeMarkdown("a|b\nc"))
}
