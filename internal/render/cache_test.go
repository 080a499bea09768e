package render

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCacheFetchPopulatesOnMiss(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	now := time.Now()

	calls := 0
	loader := func(context.Context) ([]byte, error) {
		calls++
		return []byte("pdf-bytes"), nil
	}

	data, err := cache.Fetch(ctx, 7, now, loader)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
	assert.Equal(t, 1, calls)

	// Second fetch for the same revision is served from Redis.
	data, err = cache.Fetch(ctx, 7, now, loader)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
	assert.Equal(t, 1, calls)
}

func TestCacheRevisionChangeMisses(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	first := time.Now()

	calls := 0
	loader := func(context.Context) ([]byte, error) {
		calls++
		return []byte("pdf"), nil
	}

	_, err := cache.Fetch(ctx, 7, first, loader)
	require.NoError(t, err)

	// A mutation bumps the offer's updated_at; the old entry no longer matches.
	_, err = cache.Fetch(ctx, 7, first.Add(time.Second), loader)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheFetchLoaderError(t *testing.T) {
	cache := newTestCache(t)

	wantErr := errors.New("render failed")
	_, err := cache.Fetch(context.Background(), 7, time.Now(), func(context.Context) ([]byte, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)
}

func TestCacheNilDegradesToLoader(t *testing.T) {
	var cache *Cache
	data, err := cache.Fetch(context.Background(), 1, time.Now(), func(context.Context) ([]byte, error) {
		return []byte("direct"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", string(data))
}

func TestCacheInvalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	now := time.Now()

	calls := 0
	loader := func(context.Context) ([]byte, error) {
		calls++
		return []byte("pdf"), nil
	}

	_, err := cache.Fetch(ctx, 7, now, loader)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, 7, now))

	_, err = cache.Fetch(ctx, 7, now, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
