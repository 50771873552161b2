package gateway

import (
	"context"
	"testing"

	"github.com/leapstack-labs/querygate/internal/testutil"
	"github.com/leapstack-labs/querygate/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_SessionStateDoesNotCarryOver(t *testing.T) {
	ctx := context.Background()
	gw := New(testutil.NewWordPressFileDB(t), nil, WithLogger(testutil.NewTestLogger(t)))

	res := gw.Execute(ctx, Request{Query: "CREATE TEMP TABLE scratch (x TEXT)", ConfirmWrite: true})
	require.Equal(t, StatusOK, res.Status, res.Error)

	res = gw.Execute(ctx, Request{Query: "SELECT * FROM scratch", UseCache: true})
	assert.Equal(t, StatusError, res.Status)
	assert.Contains(t, res.Error, "no such table")
	assert.Zero(t, gw.CacheInfo().TotalCachedQueries)

	res = gw.Execute(ctx, Request{Query: "SELECT COUNT(*) AS n FROM wp_users", UseCache: true})
	require.Equal(t, StatusOK, res.Status, res.Error)
	assert.Equal(t, core.StringValue("3"), res.Data[0]["n"])
}
