package services

import (
	"context"
	"time"

	"github.com/address-parser/app/models"
)

// CacheStats reports aggregate hit/miss counters for a cache tier.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService is the result-cache contract shared by the LRU-only and
// hybrid (LRU + Redis) implementations.
type ICacheService interface {
	Get(ctx context.Context, key string) (*models.CachedResult, bool, error)
	Set(ctx context.Context, key string, result *models.CachedResult) error
	Delete(ctx context.Context, key string) error

	// Clear drops every entry.
	Clear(ctx context.Context) error

	// InvalidateByCatalogVersion drops entries stamped with a different
	// catalog version than the one given.
	InvalidateByCatalogVersion(ctx context.Context, catalogVersion string) error

	GetStats(ctx context.Context) (*CacheStats, error)
	Exists(ctx context.Context, key string) (bool, error)
	GetTTL(ctx context.Context, key string) (time.Duration, error)
	Close() error
}

// CacheKey derives the result-cache key from a raw address and the
// catalog version it will be resolved against (SPEC_FULL.md §4.11).
func CacheKey(rawAddress, catalogVersion string) string {
	return sha256Hex(rawAddress) + ":" + catalogVersion
}
