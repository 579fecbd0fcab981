package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/epping-food-court/api/internal/model"
)

const orderListKey = "orders:list"

// ListCache is a short-TTL Redis cache for the unfiltered order list, the
// one read every board refresh and stats recompute hits. A nil *ListCache
// is valid and caches nothing, so the order client works without Redis.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewListCache(client *redis.Client, ttl time.Duration, log *slog.Logger) *ListCache {
	return &ListCache{client: client, ttl: ttl, log: log}
}

func (c *ListCache) Get(ctx context.Context) ([]model.Order, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, orderListKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("order cache read failed", "error", err)
		}
		return nil, false
	}
	var orders []model.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		c.log.Warn("order cache entry corrupt, ignoring", "error", err)
		return nil, false
	}
	return orders, true
}

func (c *ListCache) Set(ctx context.Context, orders []model.Order) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(orders)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, orderListKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn("order cache write failed", "error", err)
	}
}

// Invalidate drops the cached list. Called after every order write so
// reads never serve a stale list longer than one round trip.
func (c *ListCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, orderListKey).Err(); err != nil {
		c.log.Warn("order cache invalidation failed", "error", err)
	}
}
