package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache stores rendered PDFs in Redis, keyed by offer id and the offer's
// last-modified timestamp so a mutation naturally invalidates the entry.
// Concurrent misses for the same key collapse into a single render.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewCache instantiates the render cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(offerID int64, updatedAt time.Time) string {
	return fmt.Sprintf("render:offer:%d:%d", offerID, updatedAt.UnixNano())
}

// Fetch returns the cached PDF or populates it using the loader. A nil cache
// or client degrades to calling the loader directly.
func (c *Cache) Fetch(ctx context.Context, offerID int64, updatedAt time.Time, loader func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil || c.client == nil {
		return loader(ctx)
	}
	key := cacheKey(offerID, updatedAt)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("render cache get: %w", err)
	}

	result := c.group.DoChan(key, func() (interface{}, error) {
		data, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			return nil, fmt.Errorf("render cache set: %w", err)
		}
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Invalidate drops the cache entry for one offer revision.
func (c *Cache) Invalidate(ctx context.Context, offerID int64, updatedAt time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, cacheKey(offerID, updatedAt)).Err()
}
