package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedReport struct {
	TestID string  `json:"test_id"`
	Score  float64 `json:"score"`
}

func newTestCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, utils.NewDiscardLogger()), server
}

func TestRedisCache_SetGet(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "insights:t1", cachedReport{TestID: "t1", Score: 7.5}, time.Minute))

	var got cachedReport
	require.NoError(t, c.Get(ctx, "insights:t1", &got))
	assert.Equal(t, cachedReport{TestID: "t1", Score: 7.5}, got)

	server.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.Get(ctx, "insights:t1", &got), ErrCacheMiss)
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "subjects:all", []string{"a"}, time.Minute))
	require.NoError(t, c.Set(ctx, "subjects:Civil Engineering", []string{"b"}, time.Minute))
	require.NoError(t, c.Set(ctx, "insights:t1", cachedReport{}, time.Minute))

	require.NoError(t, c.DeletePattern(ctx, "subjects:*"))

	assert.False(t, server.Exists("subjects:all"))
	assert.False(t, server.Exists("subjects:Civil Engineering"))
	assert.True(t, server.Exists("insights:t1"))

	require.NoError(t, c.Delete(ctx, "insights:t1"))
	assert.False(t, server.Exists("insights:t1"))
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var v int
	assert.ErrorIs(t, c.Get(ctx, "k", &v), ErrCacheMiss)
}
