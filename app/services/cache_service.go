package services

import (
	"context"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/address-parser/app/models"
)

// CacheService is the always-present L1 tier: an in-process LRU bounded to
// a fixed entry count, wrapping golang-lru/v2 the way the teacher wraps its
// in-memory cache, repointed at CachedResult and given a TTL check on read.
type CacheService struct {
	lru  *lru.Cache[string, *models.CachedResult]
	ttl  time.Duration
	hits int64
	miss int64
}

// NewCacheService builds an L1 cache holding up to size entries, each
// considered stale after ttl.
func NewCacheService(size int, ttl time.Duration) (*CacheService, error) {
	c, err := lru.New[string, *models.CachedResult](size)
	if err != nil {
		return nil, err
	}
	return &CacheService{lru: c, ttl: ttl}, nil
}

func (cs *CacheService) Get(ctx context.Context, key string) (*models.CachedResult, bool, error) {
	entry, ok := cs.lru.Get(key)
	if !ok {
		atomic.AddInt64(&cs.miss, 1)
		return nil, false, nil
	}
	if time.Since(entry.CachedAt) > cs.ttl {
		cs.lru.Remove(key)
		atomic.AddInt64(&cs.miss, 1)
		return nil, false, nil
	}
	atomic.AddInt64(&cs.hits, 1)
	return entry, true, nil
}

func (cs *CacheService) Set(ctx context.Context, key string, result *models.CachedResult) error {
	cs.lru.Add(key, result)
	return nil
}

func (cs *CacheService) Delete(ctx context.Context, key string) error {
	cs.lru.Remove(key)
	return nil
}

func (cs *CacheService) Clear(ctx context.Context) error {
	cs.lru.Purge()
	return nil
}

// InvalidateByCatalogVersion scans the held entries and drops any stamped
// with a different catalog version. The LRU doesn't expose an iteration
// primitive cheaper than Keys(), which is acceptable here: invalidation only
// runs once per catalog reload, not per request.
func (cs *CacheService) InvalidateByCatalogVersion(ctx context.Context, catalogVersion string) error {
	for _, key := range cs.lru.Keys() {
		entry, ok := cs.lru.Peek(key)
		if !ok {
			continue
		}
		if entry.CatalogVersion != catalogVersion {
			cs.lru.Remove(key)
		}
	}
	return nil
}

func (cs *CacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := atomic.LoadInt64(&cs.hits)
	miss := atomic.LoadInt64(&cs.miss)
	stats := &CacheStats{
		TotalHits:  hits,
		TotalMiss:  miss,
		TotalItems: int64(cs.lru.Len()),
	}
	if total := hits + miss; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats, nil
}

func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	return cs.lru.Contains(key), nil
}

func (cs *CacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	entry, ok := cs.lru.Peek(key)
	if !ok {
		return 0, nil
	}
	remaining := cs.ttl - time.Since(entry.CachedAt)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

func (cs *CacheService) Close() error {
	return nil
}
