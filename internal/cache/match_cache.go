// Package cache provides an optional Redis-backed cache for computed match
// lists. The engine is a pure read/compute pipeline, so cached entries can
// only ever go stale, never wrong; a short TTL bounds the staleness.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/tabadul/exchange-engine/pkg/types"
)

const defaultTTL = 2 * time.Minute

// MatchCache caches match and chain results keyed by origin listing ID.
type MatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr and returns a MatchCache.
func New(ctx context.Context, addr string, ttl time.Duration) (*MatchCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MatchCache{client: client, ttl: ttl}, nil
}

// Close releases the underlying Redis connection.
func (c *MatchCache) Close() error {
	return c.client.Close()
}

// GetMatches returns the cached match list for an origin listing, or
// (nil, false) on a miss. Broken payloads count as misses.
func (c *MatchCache) GetMatches(ctx context.Context, originID string) ([]domain.MatchResult, bool) {
	var matches []domain.MatchResult
	if !c.get(ctx, "matches:"+originID, &matches) {
		return nil, false
	}
	return matches, true
}

// SetMatches caches the match list for an origin listing.
func (c *MatchCache) SetMatches(ctx context.Context, originID string, matches []domain.MatchResult) error {
	return c.set(ctx, "matches:"+originID, matches)
}

// GetChains returns the cached chain list for an origin listing, or
// (nil, false) on a miss.
func (c *MatchCache) GetChains(ctx context.Context, originID string) ([]domain.ChainExchange, bool) {
	var chains []domain.ChainExchange
	if !c.get(ctx, "chains:"+originID, &chains) {
		return nil, false
	}
	return chains, true
}

// SetChains caches the chain list for an origin listing.
func (c *MatchCache) SetChains(ctx context.Context, originID string, chains []domain.ChainExchange) error {
	return c.set(ctx, "chains:"+originID, chains)
}

func (c *MatchCache) get(ctx context.Context, key string, dst any) bool {
	// redis.Nil and real errors are both plain misses here.
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (c *MatchCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
