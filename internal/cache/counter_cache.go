package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
)

const (
	countKeyFmt = "count:%s:%d" // count:<kind>:<targetID>
	hotKeySet   = "count:hotkeys"
	countTTL    = 10 * time.Minute
)

// CounterCache is the redis-backed read cache for derived counters, plus the
// hot-key tracking used by the background reconciler.
type CounterCache interface {
	GetCount(ctx context.Context, targetID uint, kind models.RelationKind) (count int64, found bool, err error)
	SetCount(ctx context.Context, targetID uint, kind models.RelationKind, count int64) error
	Invalidate(ctx context.Context, targetID uint, kind models.RelationKind) error
	RecordAccess(ctx context.Context, targetID uint, kind models.RelationKind) error
	GetTopHotKeys(ctx context.Context, n int64) ([]HotKey, error)
	ResetHotKeyScores(ctx context.Context) error
}

// HotKey identifies a counter that saw reads since the last reconcile cycle.
type HotKey struct {
	TargetID uint
	Kind     models.RelationKind
}

type redisCounterCache struct {
	client *redis.Client
}

// NewRedisCounterCache creates a CounterCache backed by redis.
func NewRedisCounterCache(client *redis.Client) CounterCache {
	return &redisCounterCache{client: client}
}

func countKey(targetID uint, kind models.RelationKind) string {
	return fmt.Sprintf(countKeyFmt, kind, targetID)
}

func (c *redisCounterCache) GetCount(ctx context.Context, targetID uint, kind models.RelationKind) (int64, bool, error) {
	val, err := c.client.Get(ctx, countKey(targetID, kind)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt counter value %q: %w", val, err)
	}
	return count, true, nil
}

func (c *redisCounterCache) SetCount(ctx context.Context, targetID uint, kind models.RelationKind, count int64) error {
	return c.client.Set(ctx, countKey(targetID, kind), count, countTTL).Err()
}

func (c *redisCounterCache) Invalidate(ctx context.Context, targetID uint, kind models.RelationKind) error {
	return c.client.Del(ctx, countKey(targetID, kind)).Err()
}

// RecordAccess bumps the hot-key score for the counter so the reconciler
// prioritizes it next cycle.
func (c *redisCounterCache) RecordAccess(ctx context.Context, targetID uint, kind models.RelationKind) error {
	member := fmt.Sprintf("%s:%d", kind, targetID)
	return c.client.ZIncrBy(ctx, hotKeySet, 1, member).Err()
}

// GetTopHotKeys returns the n most accessed counters since the last reset.
func (c *redisCounterCache) GetTopHotKeys(ctx context.Context, n int64) ([]HotKey, error) {
	members, err := c.client.ZRevRange(ctx, hotKeySet, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	keys := make([]HotKey, 0, len(members))
	for _, m := range members {
		// member format: <kind>:<targetID>
		sep := strings.LastIndexByte(m, ':')
		if sep < 0 {
			continue
		}
		targetID, err := strconv.ParseUint(m[sep+1:], 10, 64)
		if err != nil {
			continue
		}
		keys = append(keys, HotKey{TargetID: uint(targetID), Kind: models.RelationKind(m[:sep])})
	}
	return keys, nil
}

func (c *redisCounterCache) ResetHotKeyScores(ctx context.Context) error {
	return c.client.Del(ctx, hotKeySet).Err()
}
