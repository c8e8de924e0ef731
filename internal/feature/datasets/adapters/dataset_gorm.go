// Package adapters provides persistence implementations for the datasets feature.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	chartentity "chart_backend/internal/feature/charts/domain/entity"
	"chart_backend/internal/feature/datasets/domain"
	"chart_backend/internal/feature/datasets/domain/entity"
	"chart_backend/internal/feature/datasets/usecase"
)

type datasetGorm struct {
	db *gorm.DB
}

var _ usecase.DatasetRepository = (*datasetGorm)(nil)

// NewDatasetRepository はGORMベースのDatasetRepositoryを生成します。
func NewDatasetRepository(db *gorm.DB) *datasetGorm {
	return &datasetGorm{db: db}
}

// DatasetModel はデータセットの永続化モデルです。
// セル本体はPayloadにJSONドキュメントとして格納します。
type DatasetModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:255;not null"`
	KeyName   string    `gorm:"size:255;not null"`
	KeyKind   string    `gorm:"size:16;not null"`
	RowCount  int       `gorm:"not null"`
	ColCount  int       `gorm:"not null"`
	Payload   []byte    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (DatasetModel) TableName() string {
	return "datasets"
}

// payloadDoc はPayloadカラムのJSON構造です。
// 値は欠測をnullで表すポインタ列として格納します。
type payloadDoc struct {
	Keys    []string     `json:"keys"`
	Columns []payloadCol `json:"columns"`
}

type payloadCol struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

const (
	keyKindCategory = "category"
	keyKindTime     = "time"
)

func toModel(ds *entity.Dataset) (DatasetModel, error) {
	doc := payloadDoc{Keys: make([]string, len(ds.Keys))}
	kind := keyKindCategory
	for i, k := range ds.Keys {
		doc.Keys[i] = k.String()
		if k.Kind == chartentity.KindTime {
			kind = keyKindTime
		}
	}
	for _, col := range ds.Columns {
		pc := payloadCol{Name: col.Name, Values: make([]*float64, len(col.Values))}
		for i, v := range col.Values {
			if v.Valid {
				f := v.Float64
				pc.Values[i] = &f
			}
		}
		doc.Columns = append(doc.Columns, pc)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return DatasetModel{}, fmt.Errorf("marshal dataset payload: %w", err)
	}
	return DatasetModel{
		ID:        ds.ID,
		Name:      ds.Name,
		KeyName:   ds.KeyName,
		KeyKind:   kind,
		RowCount:  len(ds.Keys),
		ColCount:  len(ds.Columns),
		Payload:   payload,
		CreatedAt: ds.CreatedAt,
	}, nil
}

func fromModel(m DatasetModel) (*entity.Dataset, error) {
	var doc payloadDoc
	if err := json.Unmarshal(m.Payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal dataset payload: %w", err)
	}

	ds := &entity.Dataset{
		ID:        m.ID,
		Name:      m.Name,
		KeyName:   m.KeyName,
		Keys:      make([]chartentity.Key, len(doc.Keys)),
		CreatedAt: m.CreatedAt,
	}
	for i, s := range doc.Keys {
		if m.KeyKind == keyKindTime {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return nil, fmt.Errorf("stored key %q: %w", s, err)
			}
			ds.Keys[i] = chartentity.TimeKey(t)
		} else {
			ds.Keys[i] = chartentity.CategoryKey(s)
		}
	}
	for _, pc := range doc.Columns {
		col := entity.Column{Name: pc.Name, Values: make([]chartentity.Value, len(pc.Values))}
		for i, f := range pc.Values {
			if f != nil {
				col.Values[i] = chartentity.Number(*f)
			}
		}
		ds.Columns = append(ds.Columns, col)
	}
	return ds, nil
}

// Save はデータセットを保存します。
func (r *datasetGorm) Save(ctx context.Context, ds *entity.Dataset) error {
	m, err := toModel(ds)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// FindByID はIDでデータセットを検索します。
func (r *datasetGorm) FindByID(ctx context.Context, id string) (*entity.Dataset, error) {
	var m DatasetModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDatasetNotFound
		}
		return nil, err
	}
	return fromModel(m)
}

// List は全データセットのサマリを新しい順で返します。
func (r *datasetGorm) List(ctx context.Context) ([]entity.DatasetSummary, error) {
	var ms []DatasetModel
	err := r.db.WithContext(ctx).
		Select("id", "name", "key_name", "key_kind", "row_count", "col_count", "created_at").
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.DatasetSummary, 0, len(ms))
	for _, m := range ms {
		out = append(out, entity.DatasetSummary{
			ID:        m.ID,
			Name:      m.Name,
			Rows:      m.RowCount,
			Cols:      m.ColCount,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// Delete はデータセットを削除します。対象が存在しないときはErrDatasetNotFoundです。
func (r *datasetGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&DatasetModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDatasetNotFound
	}
	return nil
}
