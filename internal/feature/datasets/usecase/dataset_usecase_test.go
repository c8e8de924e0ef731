package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	chartentity "chart_backend/internal/feature/charts/domain/entity"
	"chart_backend/internal/feature/datasets/domain"
	"chart_backend/internal/feature/datasets/domain/entity"
)

// ErrDB はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDB = errors.New("database error")

// mockDatasetRepository はDatasetRepositoryインターフェースのモック実装です。
type mockDatasetRepository struct {
	SaveFunc  func(ctx context.Context, ds *entity.Dataset) error
	SaveCalls int
	saved     *entity.Dataset
}

func (m *mockDatasetRepository) Save(ctx context.Context, ds *entity.Dataset) error {
	m.SaveCalls++
	m.saved = ds
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, ds)
	}
	return nil
}

func (m *mockDatasetRepository) FindByID(ctx context.Context, id string) (*entity.Dataset, error) {
	if m.saved != nil && m.saved.ID == id {
		return m.saved, nil
	}
	return nil, domain.ErrDatasetNotFound
}

func (m *mockDatasetRepository) List(ctx context.Context) ([]entity.DatasetSummary, error) {
	return nil, nil
}

func (m *mockDatasetRepository) Delete(ctx context.Context, id string) error {
	return nil
}

// TestDatasetUsecase_Upload_CategoryKeys はカテゴリキーCSVの取り込みを検証します。
func TestDatasetUsecase_Upload_CategoryKeys(t *testing.T) {
	t.Parallel()

	csv := "region,sales,costs\n" +
		"east,100,80\n" +
		"west,,60\n" +
		"north,-20,10\n"

	repo := &mockDatasetRepository{}
	uc := NewDatasetUsecase(repo)

	ds, err := uc.Upload(context.Background(), "regions.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ds.KeyName != "region" {
		t.Errorf("expected key name region, got %q", ds.KeyName)
	}
	if len(ds.Keys) != 3 || ds.Keys[0].Kind != chartentity.KindCategory {
		t.Fatalf("unexpected keys: %v", ds.Keys)
	}
	if len(ds.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(ds.Columns))
	}

	// 空セルは欠測（ゼロではない）
	sales := ds.Columns[0]
	if sales.Values[1].Valid {
		t.Errorf("empty cell must be missing, got %v", sales.Values[1])
	}
	if !sales.Values[2].Valid || sales.Values[2].Float64 != -20 {
		t.Errorf("negative cell mismatch: %v", sales.Values[2])
	}

	if repo.SaveCalls != 1 {
		t.Errorf("Save was called %d times, expected 1", repo.SaveCalls)
	}
	if ds.ID == "" {
		t.Error("expected a generated dataset ID")
	}
}

// TestDatasetUsecase_Upload_DateKeys は日付キーCSVの取り込みを検証します。
func TestDatasetUsecase_Upload_DateKeys(t *testing.T) {
	t.Parallel()

	csv := "date,price\n" +
		"2024-01-02,10.5\n" +
		"2024-01-03,11\n"

	uc := NewDatasetUsecase(&mockDatasetRepository{})
	ds, err := uc.Upload(context.Background(), "prices.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ds.Keys[0].Kind != chartentity.KindTime {
		t.Fatalf("expected time keys, got %v", ds.Keys[0])
	}
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !ds.Keys[0].Time.Equal(want) {
		t.Errorf("key time mismatch: got %v, want %v", ds.Keys[0].Time, want)
	}
}

// TestDatasetUsecase_Upload_Malformed は不正CSVのエラー種別を検証します。
func TestDatasetUsecase_Upload_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		csv         string
		expectedErr error
	}{
		{
			name:        "empty file",
			csv:         "",
			expectedErr: domain.ErrNoRows,
		},
		{
			name:        "header only",
			csv:         "region,sales\n",
			expectedErr: domain.ErrNoRows,
		},
		{
			name:        "key column only",
			csv:         "region\neast\n",
			expectedErr: domain.ErrNoColumns,
		},
		{
			name:        "row width mismatch",
			csv:         "region,sales\neast,1,2\n",
			expectedErr: domain.ErrRowWidth,
		},
		{
			name:        "non-numeric cell",
			csv:         "region,sales\neast,abc\n",
			expectedErr: domain.ErrBadNumber,
		},
		{
			name:        "date key with wrong format",
			csv:         "date,price\n2024-01-02,1\nnot-a-date,2\n",
			expectedErr: domain.ErrBadKey,
		},
		{
			name:        "duplicate key",
			csv:         "region,sales\neast,1\neast,2\n",
			expectedErr: domain.ErrDuplicateKey,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := NewDatasetUsecase(&mockDatasetRepository{})
			_, err := uc.Upload(context.Background(), "bad.csv", strings.NewReader(tt.csv))
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

// TestDatasetUsecase_Upload_RepositoryError はリポジトリ失敗の伝播を検証します。
func TestDatasetUsecase_Upload_RepositoryError(t *testing.T) {
	t.Parallel()

	repo := &mockDatasetRepository{
		SaveFunc: func(ctx context.Context, ds *entity.Dataset) error { return ErrDB },
	}
	uc := NewDatasetUsecase(repo)

	_, err := uc.Upload(context.Background(), "x.csv", strings.NewReader("k,v\na,1\n"))
	if !errors.Is(err, ErrDB) {
		t.Errorf("expected ErrDB, got %v", err)
	}
}

// TestDataset_SeriesExtraction はエンティティからの系列取り出しを検証します。
func TestDataset_SeriesExtraction(t *testing.T) {
	t.Parallel()

	uc := NewDatasetUsecase(&mockDatasetRepository{})
	ds, err := uc.Upload(context.Background(), "x.csv",
		strings.NewReader("k,a,b\nx,1,2\ny,3,4\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, ok := ds.Series("b")
	if !ok {
		t.Fatal("expected column b to exist")
	}
	if s.Name != "b" || len(s.Keys) != 2 || s.Values[1].Float64 != 4 {
		t.Errorf("series mismatch: %+v", s)
	}

	if _, ok := ds.Series("nope"); ok {
		t.Error("expected lookup of unknown column to fail")
	}

	ms, missing := ds.MultiSeries([]string{"a", "nope"})
	if missing != "nope" || ms != nil {
		t.Errorf("expected missing column nope, got %q / %v", missing, ms)
	}
}
