// AngelaMos | 2026
// cache.go

package item

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const generationKey = "items:gen"

// CatalogCache keeps rendered catalog pages in redis. Pages are keyed by
// a generation counter, so a write only has to bump the counter and stale
// pages age out through their TTL. A nil client disables caching.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalogCache(rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{rdb: rdb, ttl: ttl}
}

func (c *CatalogCache) enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

func (c *CatalogCache) Get(
	ctx context.Context,
	params ListParams,
) ([]ItemResponse, bool) {
	if !c.enabled() {
		return nil, false
	}

	key, err := c.pageKey(ctx, params)
	if err != nil {
		slog.Warn("catalog cache key failed", "error", err)
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("catalog cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var items []ItemResponse
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("catalog cache decode failed", "key", key, "error", err)
		return nil, false
	}

	return items, true
}

func (c *CatalogCache) Set(
	ctx context.Context,
	params ListParams,
	items []ItemResponse,
) {
	if !c.enabled() {
		return
	}

	key, err := c.pageKey(ctx, params)
	if err != nil {
		slog.Warn("catalog cache key failed", "error", err)
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		slog.Warn("catalog cache encode failed", "error", err)
		return
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.Warn("catalog cache write failed", "key", key, "error", err)
	}
}

// Invalidate moves readers to a fresh generation.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}

	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		slog.Warn("catalog cache invalidate failed", "error", err)
	}
}

func (c *CatalogCache) pageKey(
	ctx context.Context,
	params ListParams,
) (string, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("read generation: %w", err)
	}

	return PageKey(gen, params), nil
}

func PageKey(generation int64, params ListParams) string {
	return fmt.Sprintf("items:v%d:%d:%d", generation, params.Skip, params.Limit)
}
