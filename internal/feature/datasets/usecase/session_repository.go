package usecase

import (
	"context"
	"errors"

	"chart_backend/internal/feature/datasets/domain/entity"
)

// ErrSessionNotFound is returned when an upload session cannot be found by ID.
var ErrSessionNotFound = errors.New("upload session not found")

// SessionRepository はアップロードセッションの保存レイヤーを抽象化します。
type SessionRepository interface {
	// Create は新しいセッションを保存します。
	Create(ctx context.Context, session *entity.UploadSession) error
	// FindByID はIDでセッションを検索します。
	FindByID(ctx context.Context, id string) (*entity.UploadSession, error)
	// Revoke はセッションを破棄済みにします。
	Revoke(ctx context.Context, id string) error
	// RevokeAllByDatasetID はデータセットに紐づく全セッションを破棄します。
	RevokeAllByDatasetID(ctx context.Context, datasetID string) error
}
