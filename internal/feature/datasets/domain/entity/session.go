package entity

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// UploadSession はアップロード成功時に発行されるチャート生成セッションです。
// チャートエンドポイントはこのセッションに紐づくトークンを要求します。
type UploadSession struct {
	ID        string
	DatasetID string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// NewUploadSession は新しいセッションIDを採番してセッションを生成します。
func NewUploadSession(datasetID string, ttl time.Duration) *UploadSession {
	now := time.Now()
	return &UploadSession{
		ID:        newSessionID(),
		DatasetID: datasetID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsValid はセッションが失効も破棄もされていないかを返します。
func (s *UploadSession) IsValid() bool {
	if s.RevokedAt != nil {
		return false
	}
	return time.Now().Before(s.ExpiresAt)
}

// newSessionID は128ビットのランダムIDを16進文字列で返します。
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/randの失敗は環境異常
	}
	return hex.EncodeToString(b)
}
