package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"chart_backend/internal/feature/datasets/domain/entity"
	"chart_backend/internal/feature/datasets/usecase"
)

// sessionGorm はRedisが使えない環境向けのSessionRepository実装です。
type sessionGorm struct {
	db *gorm.DB
}

var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm はGORMベースのSessionRepositoryを生成します。
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

// SessionModel はアップロードセッションの永続化モデルです。
type SessionModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	DatasetID string    `gorm:"size:64;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	RevokedAt *time.Time
}

func (SessionModel) TableName() string {
	return "upload_sessions"
}

// Create は新しいセッションを保存します。
func (r *sessionGorm) Create(ctx context.Context, session *entity.UploadSession) error {
	m := SessionModel{
		ID:        session.ID,
		DatasetID: session.DatasetID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
		RevokedAt: session.RevokedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// FindByID はIDでセッションを検索します。
func (r *sessionGorm) FindByID(ctx context.Context, id string) (*entity.UploadSession, error) {
	var m SessionModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return &entity.UploadSession{
		ID:        m.ID,
		DatasetID: m.DatasetID,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
		RevokedAt: m.RevokedAt,
	}, nil
}

// Revoke はセッションを破棄済みにします。
func (r *sessionGorm) Revoke(ctx context.Context, id string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ?", id).
		Update("revoked_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// RevokeAllByDatasetID はデータセットに紐づく全セッションを破棄します。
func (r *sessionGorm) RevokeAllByDatasetID(ctx context.Context, datasetID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("dataset_id = ? AND revoked_at IS NULL", datasetID).
		Update("revoked_at", &now).Error
}
