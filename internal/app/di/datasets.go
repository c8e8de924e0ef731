// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"chart_backend/internal/feature/datasets/adapters"
	"chart_backend/internal/feature/datasets/usecase"
	"chart_backend/internal/platform/cache"
	"chart_backend/internal/platform/session"
)

// NewDatasetRepository creates a DatasetRepository implementation.
// If Redis is available, the GORM repository is wrapped with a read-through cache.
func NewDatasetRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.DatasetRepository {
	repo := adapters.NewDatasetRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingDatasetRepository(rdb, ttl, repo, "datasets")
}

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the database.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return adapters.NewSessionGorm(db)
}
