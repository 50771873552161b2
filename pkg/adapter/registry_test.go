package adapter

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownAdapterError_Error(t *testing.T) {
	err := &UnknownAdapterError{
		Type:      "oracle",
		Available: []string{"mysql", "postgres"},
	}

	msg := err.Error()
	assert.Contains(t, msg, `"oracle"`)
	assert.Contains(t, msg, "mysql, postgres")
	assert.Contains(t, msg, "--target-type")
}

func TestRegister_Aliases(t *testing.T) {
	Register("Fakedb", func(_ *slog.Logger) Adapter { return nil }, "fake", "FDB")

	for _, name := range []string{"fakedb", "FAKEDB", "fake", "fdb", " Fake "} {
		c, ok := Canonical(name)
		require.True(t, ok, name)
		assert.Equal(t, "fakedb", c, name)
		assert.True(t, IsRegistered(name), name)
	}

	factory, ok := Get("fdb")
	assert.True(t, ok)
	assert.NotNil(t, factory)

	assert.Contains(t, ListAdapters(), "fakedb")
	assert.NotContains(t, ListAdapters(), "fake", "aliases are not listed")
	assert.Equal(t, []string{"fake", "FDB"}, Aliases("fakedb"))
}

func TestCanonical_Unknown(t *testing.T) {
	_, ok := Canonical("no-such-db")
	assert.False(t, ok)
	assert.False(t, IsRegistered(""))
}

func TestNewAdapter_Errors(t *testing.T) {
	_, err := NewAdapter(Config{}, nil)
	require.Error(t, err)
	assert.Equal(t, "adapter type not specified", err.Error())

	_, err = NewAdapter(Config{Type: "no-such-db"}, nil)
	var unknown *UnknownAdapterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "no-such-db", unknown.Type)
}
