// Package cache provides caching implementations for provider interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_compare/internal/feature/comparison/domain/entity"
	"stock_compare/internal/feature/comparison/usecase"
)

// CachingPriceProvider decorates a PriceProvider with a short-lived Redis cache.
// Only successful responses are cached; provider errors always pass through
// so that capability and not-found signals reach the resolver unchanged.
type CachingPriceProvider struct {
	inner     usecase.PriceProvider
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

// NewCachingPriceProvider decorates a PriceProvider with Redis caching.
// If ttl is 0, entries expire at the next US market close. If namespace is empty, it uses "prices".
func NewCachingPriceProvider(rdb *redis.Client, ttl time.Duration, inner usecase.PriceProvider, namespace string) *CachingPriceProvider {
	if ttl < 0 {
		ttl = 0
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceProvider{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		now:       time.Now,
	}
}

// Name returns the name of the decorated provider.
func (c *CachingPriceProvider) Name() string {
	return c.inner.Name()
}

// DailySeries returns the cached series when present, otherwise fetches it from the inner provider.
func (c *CachingPriceProvider) DailySeries(ctx context.Context, symbol entity.Symbol, tier entity.Tier) (entity.RawPriceSeries, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.DailySeries(ctx, symbol, tier)
	}

	key := c.cacheKey(symbol, tier)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.RawPriceSeries
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the provider
	out, err := c.inner.DailySeries(ctx, symbol, tier)
	if err != nil {
		return entity.RawPriceSeries{}, err
	}
	if len(out.Points) == 0 {
		return out, nil
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.expiry()).Err()
	}

	return out, nil
}

func (c *CachingPriceProvider) expiry() time.Duration {
	if c.ttl > 0 {
		return c.ttl
	}
	return TimeUntilNextUSClose(c.now())
}

// cacheKey generates a cache key for a specific query.
func (c *CachingPriceProvider) cacheKey(symbol entity.Symbol, tier entity.Tier) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(c.inner.Name()),
		safe(string(symbol)),
		safe(string(tier)),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
