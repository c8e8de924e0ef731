package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart_backend/internal/feature/datasets/domain/entity"
	"chart_backend/internal/feature/datasets/usecase"
)

// TestSessionGorm_CreateAndFindByID は保存と復元の往復を検証します。
func TestSessionGorm_CreateAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)
	ctx := context.Background()

	s := entity.NewUploadSession("ds1", time.Hour)
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "ds1", got.DatasetID)
	assert.Nil(t, got.RevokedAt)
	assert.True(t, got.IsValid())
}

// TestSessionGorm_FindByID_NotFound は未登録IDでErrSessionNotFoundを返すことを検証します。
func TestSessionGorm_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

// TestSessionGorm_Revoke は破棄後にセッションが無効になることを検証します。
func TestSessionGorm_Revoke(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)
	ctx := context.Background()

	s := entity.NewUploadSession("ds1", time.Hour)
	require.NoError(t, repo.Create(ctx, s))

	require.NoError(t, repo.Revoke(ctx, s.ID))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)
	assert.False(t, got.IsValid())

	assert.ErrorIs(t, repo.Revoke(ctx, "missing"), usecase.ErrSessionNotFound)
}

// TestSessionGorm_RevokeAllByDatasetID はデータセット単位の一括破棄を検証します。
func TestSessionGorm_RevokeAllByDatasetID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)
	ctx := context.Background()

	s1 := entity.NewUploadSession("ds1", time.Hour)
	s2 := entity.NewUploadSession("ds1", time.Hour)
	other := entity.NewUploadSession("ds2", time.Hour)
	for _, s := range []*entity.UploadSession{s1, s2, other} {
		require.NoError(t, repo.Create(ctx, s))
	}

	require.NoError(t, repo.RevokeAllByDatasetID(ctx, "ds1"))

	for _, id := range []string{s1.ID, s2.ID} {
		got, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.NotNil(t, got.RevokedAt)
	}

	got, err := repo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RevokedAt)
}
