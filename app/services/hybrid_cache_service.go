package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/address-parser/app/models"
)

// HybridCacheService composes the always-present in-process LRU (L1) with
// an optional Redis tier (L2): reads check L1 first and fall through to L2
// on miss, writes go to L1 synchronously and to L2 in a background
// goroutine, the same write-now/persist-async split as the teacher's hybrid
// cache service (there composed over Redis+MongoDB; here over LRU+Redis).
type HybridCacheService struct {
	l1     *CacheService
	l2     *RedisCacheService
	logger *zap.Logger
}

// NewHybridCacheService composes l1 (required) with l2 (may be nil, meaning
// no Redis tier is configured).
func NewHybridCacheService(l1 *CacheService, l2 *RedisCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{l1: l1, l2: l2, logger: logger}
}

func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.CachedResult, bool, error) {
	if result, found, err := hcs.l1.Get(ctx, key); err == nil && found {
		return result, true, nil
	}

	if hcs.l2 == nil {
		return nil, false, nil
	}

	result, found, err := hcs.l2.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hcs.l1.Set(bgCtx, key, result); err != nil {
			hcs.logger.Warn("failed to warm L1 from L2", zap.Error(err), zap.String("key", key))
		}
	}()

	return result, true, nil
}

func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.CachedResult) error {
	if err := hcs.l1.Set(ctx, key, result); err != nil {
		return err
	}
	if hcs.l2 != nil {
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := hcs.l2.Set(bgCtx, key, result); err != nil {
				hcs.logger.Warn("failed to persist to L2", zap.Error(err), zap.String("key", key))
			}
		}()
	}
	return nil
}

func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	err := hcs.l1.Delete(ctx, key)
	if hcs.l2 != nil {
		if l2Err := hcs.l2.Delete(ctx, key); l2Err != nil && err == nil {
			err = l2Err
		}
	}
	return err
}

func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	err := hcs.l1.Clear(ctx)
	if hcs.l2 != nil {
		if l2Err := hcs.l2.Clear(ctx); l2Err != nil && err == nil {
			err = l2Err
		}
	}
	return err
}

func (hcs *HybridCacheService) InvalidateByCatalogVersion(ctx context.Context, catalogVersion string) error {
	err := hcs.l1.InvalidateByCatalogVersion(ctx, catalogVersion)
	if hcs.l2 != nil {
		if l2Err := hcs.l2.InvalidateByCatalogVersion(ctx, catalogVersion); l2Err != nil && err == nil {
			err = l2Err
		}
	}
	return err
}

func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	l1Stats, err := hcs.l1.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	if hcs.l2 == nil {
		return l1Stats, nil
	}
	l2Stats, err := hcs.l2.GetStats(ctx)
	if err != nil {
		return l1Stats, nil
	}

	combined := &CacheStats{
		TotalHits:  l1Stats.TotalHits + l2Stats.TotalHits,
		TotalMiss:  l1Stats.TotalMiss + l2Stats.TotalMiss,
		TotalItems: l1Stats.TotalItems + l2Stats.TotalItems,
	}
	if total := combined.TotalHits + combined.TotalMiss; total > 0 {
		combined.HitRate = float64(combined.TotalHits) / float64(total)
	}
	return combined, nil
}

func (hcs *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if exists, err := hcs.l1.Exists(ctx, key); err == nil && exists {
		return true, nil
	}
	if hcs.l2 == nil {
		return false, nil
	}
	return hcs.l2.Exists(ctx, key)
}

func (hcs *HybridCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return hcs.l1.GetTTL(ctx, key)
}

func (hcs *HybridCacheService) Close() error {
	err := hcs.l1.Close()
	if hcs.l2 != nil {
		if l2Err := hcs.l2.Close(); l2Err != nil && err == nil {
			err = l2Err
		}
	}
	return err
}
