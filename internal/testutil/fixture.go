package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/querygate/pkg/adapters/sqlite"
	"github.com/leapstack-labs/querygate/pkg/core"
)

// wordpressSchema is a trimmed WordPress schema with a few rows per table.
var wordpressSchema = []string{
	`CREATE TABLE wp_users (
		ID INTEGER PRIMARY KEY,
		user_login TEXT NOT NULL,
		user_email TEXT NOT NULL,
		display_name TEXT
	)`,
	`INSERT INTO wp_users (ID, user_login, user_email, display_name) VALUES
		(1, 'admin', 'admin@example.com', 'Admin'),
		(2, 'alice', 'alice@example.com', NULL),
		(3, 'bob', 'bob@example.org', 'Bob')`,
	`CREATE TABLE wp_posts (
		ID INTEGER PRIMARY KEY,
		post_author INTEGER NOT NULL,
		post_title TEXT NOT NULL,
		post_content TEXT NOT NULL,
		post_excerpt TEXT NOT NULL DEFAULT '',
		post_status TEXT NOT NULL DEFAULT 'publish'
	)`,
	`INSERT INTO wp_posts (ID, post_author, post_title, post_content) VALUES
		(1, 1, 'Hello world', 'Welcome to WordPress.'),
		(2, 2, 'Release notes', 'The hello release ships today.')`,
	`CREATE TABLE wp_options (
		option_id INTEGER PRIMARY KEY,
		option_name TEXT NOT NULL,
		option_value TEXT NOT NULL
	)`,
	`INSERT INTO wp_options (option_id, option_name, option_value) VALUES
		(1, 'siteurl', 'https://example.com'),
		(2, 'blogname', 'Example Blog')`,
}

// NewWordPressDB returns a connected in-memory SQLite adapter seeded with
// wp_users (3 rows), wp_posts (2 rows) and wp_options (2 rows). It is
// closed when the test ends.
func NewWordPressDB(t testing.TB) core.Adapter {
	t.Helper()
	return openWordPress(t, sqlite.MemoryPath)
}

// NewWordPressFile seeds the same data into a SQLite file under
// t.TempDir() and returns its path, for code that opens its own connection.
func NewWordPressFile(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordpress.db")
	adp := openWordPress(t, path)
	if err := adp.Close(); err != nil {
		t.Fatalf("close sqlite: %v", err)
	}
	return path
}

// NewWordPressFileDB is NewWordPressDB backed by a file under t.TempDir(),
// so each call gets its own connection.
func NewWordPressFileDB(t testing.TB) core.Adapter {
	t.Helper()
	return openWordPress(t, filepath.Join(t.TempDir(), "wordpress.db"))
}

func openWordPress(t testing.TB, path string) core.Adapter {
	t.Helper()
	ctx := context.Background()

	adp := sqlite.New(NewTestLogger(t))
	if err := adp.Connect(ctx, core.AdapterConfig{Type: "sqlite", Path: path}); err != nil {
		t.Fatalf("connect sqlite: %v", err)
	}
	t.Cleanup(func() { _ = adp.Close() })

	for _, stmt := range wordpressSchema {
		if _, err := adp.ExecWrite(ctx, stmt); err != nil {
			t.Fatalf("seed wordpress schema: %v", err)
		}
	}
	return adp
}
