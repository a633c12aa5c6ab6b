package services

import (
	"context"
	"testing"
	"time"

	"github.com/address-parser/internal/addrmodel"
	"github.com/address-parser/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheServiceSetThenGet(t *testing.T) {
	cs, err := NewCacheService(10, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	key := CacheKey("601 NE 1 AVE, MIAMI, FL 33132", "v1")
	result := &models.CachedResult{
		Result:         &addrmodel.MatchResult{Raw: "601 NE 1 AVE, MIAMI, FL 33132"},
		CatalogVersion: "v1",
		CachedAt:       time.Now(),
	}

	require.NoError(t, cs.Set(ctx, key, result))

	got, found, err := cs.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "601 NE 1 AVE, MIAMI, FL 33132", got.Result.Raw)
}

func TestCacheServiceGetMissReturnsFalse(t *testing.T) {
	cs, err := NewCacheService(10, time.Minute)
	require.NoError(t, err)

	_, found, err := cs.Get(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheServiceExpiresByTTL(t *testing.T) {
	cs, err := NewCacheService(10, time.Millisecond)
	require.NoError(t, err)

	ctx := context.Background()
	key := "k"
	require.NoError(t, cs.Set(ctx, key, &models.CachedResult{CachedAt: time.Now().Add(-time.Hour)}))

	_, found, err := cs.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheServiceInvalidateByCatalogVersionDropsStaleEntries(t *testing.T) {
	cs, err := NewCacheService(10, time.Hour)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cs.Set(ctx, "old", &models.CachedResult{CatalogVersion: "v1", CachedAt: time.Now()}))
	require.NoError(t, cs.Set(ctx, "new", &models.CachedResult{CatalogVersion: "v2", CachedAt: time.Now()}))

	require.NoError(t, cs.InvalidateByCatalogVersion(ctx, "v2"))

	_, found, _ := cs.Get(ctx, "old")
	assert.False(t, found)
	_, found, _ = cs.Get(ctx, "new")
	assert.True(t, found)
}

func TestCacheServiceStatsTrackHitsAndMisses(t *testing.T) {
	cs, err := NewCacheService(10, time.Hour)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cs.Set(ctx, "k", &models.CachedResult{CachedAt: time.Now()}))

	_, _, _ = cs.Get(ctx, "k")
	_, _, _ = cs.Get(ctx, "missing")

	stats, err := cs.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalHits)
	assert.Equal(t, int64(1), stats.TotalMiss)
}
