package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	key := Fingerprint("SELECT * FROM wp_users")

	assert.Len(t, key, 16)
	assert.Regexp(t, `^[0-9a-f]{16}$`, key)
	assert.Equal(t, key, Fingerprint("SELECT * FROM wp_users"), "stable for identical text")

	variants := []string{
		"select * from wp_users",
		"SELECT * FROM wp_users ",
		"SELECT *  FROM wp_users",
		"SELECT * FROM wp_users;",
	}
	for _, v := range variants {
		assert.NotEqual(t, key, Fingerprint(v), "no normalization: %q", v)
	}

	assert.Len(t, Fingerprint(""), 16)
}

func TestKeyPreview(t *testing.T) {
	key := Fingerprint("SELECT 1")
	assert.Equal(t, key[:8]+"...", KeyPreview(key))
	assert.Equal(t, "abc", KeyPreview("abc"))
	assert.Equal(t, "abcdefgh", KeyPreview("abcdefgh"))
}

func TestQueryPreview(t *testing.T) {
	assert.Equal(t, "DROP TABLE x", queryPreview("DROP TABLE x"))

	long := make([]rune, 0, 120)
	for range 120 {
		long = append(long, 'é')
	}
	got := queryPreview(string(long))
	assert.Equal(t, string(long[:100])+"...", got, "truncates on characters, not bytes")
}
