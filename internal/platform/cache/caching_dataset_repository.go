// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chart_backend/internal/feature/datasets/domain/entity"
	"chart_backend/internal/feature/datasets/usecase"
)

// CachingDatasetRepository decorates a DatasetRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Chart generation reads the same
// dataset repeatedly, so FindByID is the only cached path.
type CachingDatasetRepository struct {
	inner     usecase.DatasetRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.DatasetRepository = (*CachingDatasetRepository)(nil)

// NewCachingDatasetRepository decorates a DatasetRepository with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "datasets".
func NewCachingDatasetRepository(rdb *redis.Client, ttl time.Duration, inner usecase.DatasetRepository, namespace string) *CachingDatasetRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "datasets"
	}
	return &CachingDatasetRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// cacheKey returns the Redis key for a dataset.
func (c *CachingDatasetRepository) cacheKey(id string) string {
	return fmt.Sprintf("%s:%s", c.namespace, id)
}

// cachedDataset はキャッシュに格納する形です。キー種別ごとの復元は
// entity.Dataset のJSON表現に任せます。
type cachedDataset struct {
	Dataset *entity.Dataset `json:"dataset"`
}

// Save persists the dataset and drops any stale cache entry for its ID.
func (c *CachingDatasetRepository) Save(ctx context.Context, ds *entity.Dataset) error {
	if err := c.inner.Save(ctx, ds); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.rdb.Del(ctx, c.cacheKey(ds.ID)).Err() // ベストエフォート
	return nil
}

// FindByID retrieves a dataset, checking cache first then falling back to the database.
func (c *CachingDatasetRepository) FindByID(ctx context.Context, id string) (*entity.Dataset, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) キャッシュ確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var doc cachedDataset
		if err := json.Unmarshal(b, &doc); err == nil && doc.Dataset != nil {
			return doc.Dataset, nil
		}
		// 壊れたキャッシュエントリは削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) データベースへフォールバック
	ds, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) キャッシュへ書き戻し（失敗しても本処理は継続）
	if b, err := json.Marshal(cachedDataset{Dataset: ds}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return ds, nil
}

// List always reads from the underlying repository (summaries are cheap).
func (c *CachingDatasetRepository) List(ctx context.Context) ([]entity.DatasetSummary, error) {
	return c.inner.List(ctx)
}

// Delete removes the dataset and invalidates its cache entry.
func (c *CachingDatasetRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.rdb.Del(ctx, c.cacheKey(id)).Err()
	return nil
}
