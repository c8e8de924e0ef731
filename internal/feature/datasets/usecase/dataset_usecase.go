// Package usecase はデータセット操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"time"

	"chart_backend/internal/feature/datasets/domain/entity"
)

const (
	// MaxUploadBytes はアップロードファイルの最大サイズです。
	MaxUploadBytes = 5 << 20
	// SessionTTL はアップロードセッションの有効期間です。
	SessionTTL = 24 * time.Hour
)

// DatasetRepository はデータセットの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type DatasetRepository interface {
	// Save はデータセットを保存します。
	Save(ctx context.Context, ds *entity.Dataset) error
	// FindByID はIDでデータセットを検索します。
	FindByID(ctx context.Context, id string) (*entity.Dataset, error)
	// List は全データセットのサマリを新しい順で返します。
	List(ctx context.Context) ([]entity.DatasetSummary, error)
	// Delete はデータセットを削除します。
	Delete(ctx context.Context, id string) error
}

// datasetUsecase はデータセット操作のユースケースを定義します。
type datasetUsecase struct {
	repo DatasetRepository
}

// NewDatasetUsecase はdatasetUsecaseの新しいインスタンスを生成します。
func NewDatasetUsecase(repo DatasetRepository) *datasetUsecase {
	return &datasetUsecase{repo: repo}
}

// Upload はCSVを解析してデータセットとして保存します。
// 第1カラムがキー列（日付またはカテゴリラベル）、残りが数値カラムです。
func (du *datasetUsecase) Upload(ctx context.Context, name string, r io.Reader) (*entity.Dataset, error) {
	keyName, keys, cols, err := parseCSV(io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return nil, err
	}

	ds := &entity.Dataset{
		ID:        newDatasetID(),
		Name:      name,
		KeyName:   keyName,
		Keys:      keys,
		Columns:   cols,
		CreatedAt: time.Now(),
	}
	if err := du.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Get はIDでデータセットを取得します。
func (du *datasetUsecase) Get(ctx context.Context, id string) (*entity.Dataset, error) {
	return du.repo.FindByID(ctx, id)
}

// List は全データセットのサマリを返します。
func (du *datasetUsecase) List(ctx context.Context) ([]entity.DatasetSummary, error) {
	return du.repo.List(ctx)
}

// Delete はデータセットを削除します。
func (du *datasetUsecase) Delete(ctx context.Context, id string) error {
	return du.repo.Delete(ctx, id)
}

// newDatasetID は128ビットのランダムIDを16進文字列で返します。
func newDatasetID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
