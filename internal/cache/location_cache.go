// Package cache keeps flagged location ids in Redis between requests.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"stock-available/internal/core"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "stock_available:locations:"

// LocationCache is a read-through cache in front of a LocationSource.
// Only the flag search is cached; quantities are always read live.
type LocationCache struct {
	rdb    redis.Cmdable
	source core.LocationSource
	ttl    time.Duration
}

// Verify interface compliance
var _ core.LocationSource = (*LocationCache)(nil)

func NewLocationCache(rdb redis.Cmdable, source core.LocationSource, ttl time.Duration) *LocationCache {
	return &LocationCache{rdb: rdb, source: source, ttl: ttl}
}

func (c *LocationCache) LocationsWithFlag(ctx context.Context, flag core.LocationFlag) ([]core.LocationID, error) {
	key := keyPrefix + string(flag)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var ids []core.LocationID
		if jsonErr := json.Unmarshal(raw, &ids); jsonErr == nil {
			return ids, nil
		}
		log.Printf("cache: discarding malformed entry %s", key)
	case !errors.Is(err, redis.Nil):
		log.Printf("cache: get %s: %v", key, err)
	}

	ids, err := c.source.LocationsWithFlag(ctx, flag)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(ids)
	if err != nil {
		return ids, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
	return ids, nil
}

// Invalidate drops every cached flag search, e.g. after locations were re-flagged.
func (c *LocationCache) Invalidate(ctx context.Context) error {
	keys := make([]string, len(core.LocationFlags))
	for i, f := range core.LocationFlags {
		keys[i] = keyPrefix + string(f)
	}
	return c.rdb.Del(ctx, keys...).Err()
}
