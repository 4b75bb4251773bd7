package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen_FallsBackToNop(t *testing.T) {
	ctx := context.Background()

	for _, addr := range []string{"", "127.0.0.1:1"} {
		kv, closeFn := Open(ctx, addr, "", 0, zap.NewNop())
		assert.IsType(t, NopKV{}, kv, addr)
		require.NoError(t, closeFn())
	}
}

func TestNopKV_AlwaysMisses(t *testing.T) {
	ctx := context.Background()
	var kv KV = NopKV{}

	require.NoError(t, kv.Set(ctx, "doctor:1", "{}", 0))
	_, err := kv.Get(ctx, "doctor:1")
	assert.ErrorIs(t, err, ErrMiss)

	keys, err := kv.ScanKeys(ctx, "*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
