package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_JSON(t *testing.T) {
	row := Row{
		"ID":           StringValue("1"),
		"display_name": StringValue("Alice"),
		"user_url":     Null(),
	}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ID":"1","display_name":"Alice","user_url":null}`, string(data))

	var back Row
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, row, back)
}

func TestValue_Accessors(t *testing.T) {
	v := StringValue("")
	assert.False(t, v.IsNull(), "empty string is not NULL")
	require.NotNil(t, v.Ptr())
	assert.Equal(t, "", *v.Ptr())

	n := Null()
	assert.True(t, n.IsNull())
	assert.Nil(t, n.Ptr())

	yv, err := n.MarshalYAML()
	require.NoError(t, err)
	assert.Nil(t, yv)
}

func TestResultSet_Len(t *testing.T) {
	var rs *ResultSet
	assert.Equal(t, 0, rs.Len())

	rs = &ResultSet{Columns: []string{"a"}, Rows: []Row{{"a": Null()}, {"a": StringValue("x")}}}
	assert.Equal(t, 2, rs.Len())
}

func TestTargetConfig_AdapterConfig(t *testing.T) {
	var nilTarget *TargetConfig
	assert.Equal(t, AdapterConfig{}, nilTarget.AdapterConfig())

	target := &TargetConfig{
		Type:     "mysql",
		Database: "wordpress",
		Host:     "db",
		Port:     3306,
		User:     "root",
		Password: "secret",
		Options:  map[string]string{"charset": "utf8mb4"},
	}
	cfg := target.AdapterConfig()
	assert.Equal(t, "mysql", cfg.Type)
	assert.Equal(t, "wordpress", cfg.Database)
	assert.Equal(t, "wordpress", cfg.Path)
	assert.Equal(t, "root", cfg.Username)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, "utf8mb4", cfg.Options["charset"])
}
