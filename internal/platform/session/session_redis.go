// Package session provides Redis-backed storage for upload sessions.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chart_backend/internal/feature/datasets/domain/entity"
	"chart_backend/internal/feature/datasets/usecase"
)

// SessionRedis implements usecase.SessionRepository using Redis.
// Sessions expire via Redis TTL; a per-dataset index set allows revoking
// every session of a dataset when it is deleted.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

// sessionKey returns the Redis key for a session.
func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// datasetSessionsKey returns the Redis key for a dataset's session set.
func (r *SessionRedis) datasetSessionsKey(datasetID string) string {
	return fmt.Sprintf("%s:dataset:%s", r.prefix, datasetID)
}

// Create persists a new upload session to Redis.
func (r *SessionRedis) Create(ctx context.Context, session *entity.UploadSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := r.client.Set(ctx, r.sessionKey(session.ID), data, ttl).Err(); err != nil {
		return err
	}

	// データセット単位の破棄に備えてインデックス集合へ追加
	return r.client.SAdd(ctx, r.datasetSessionsKey(session.DatasetID), session.ID).Err()
}

// FindByID retrieves an upload session by its ID.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.UploadSession, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.UploadSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Revoke marks an upload session as revoked.
// Revoked sessions keep a short TTL for audit purposes.
func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	session, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	session.RevokedAt = &now

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, r.sessionKey(id), data, 24*time.Hour).Err()
}

// RevokeAllByDatasetID revokes every session tied to a dataset.
func (r *SessionRedis) RevokeAllByDatasetID(ctx context.Context, datasetID string) error {
	ids, err := r.client.SMembers(ctx, r.datasetSessionsKey(datasetID)).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := r.Revoke(ctx, id); err != nil && err != usecase.ErrSessionNotFound {
			return err
		}
	}
	return r.client.Del(ctx, r.datasetSessionsKey(datasetID)).Err()
}
