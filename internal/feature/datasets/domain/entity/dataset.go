// Package entity defines the domain models for the datasets feature.
package entity

import (
	"time"

	chartentity "chart_backend/internal/feature/charts/domain/entity"
)

// Column is one named numeric column of an uploaded dataset.
type Column struct {
	Name   string
	Values []chartentity.Value
}

// Dataset is an uploaded table: one key column (category labels or dates)
// plus one or more numeric columns sharing the key order.
type Dataset struct {
	ID        string
	Name      string    // Display name (defaults to the uploaded file name)
	KeyName   string    // Header of the key column
	Keys      []chartentity.Key
	Columns   []Column
	CreatedAt time.Time
}

// DatasetSummary is the listing view of a dataset, without the cell payload.
type DatasetSummary struct {
	ID        string
	Name      string
	Rows      int
	Cols      int
	CreatedAt time.Time
}

// Summary はこのデータセットの一覧表示用サマリを返します。
func (d *Dataset) Summary() DatasetSummary {
	return DatasetSummary{
		ID:        d.ID,
		Name:      d.Name,
		Rows:      len(d.Keys),
		Cols:      len(d.Columns),
		CreatedAt: d.CreatedAt,
	}
}

// Series は指定カラムを1系列として取り出します。見つからないとき ok は false です。
func (d *Dataset) Series(column string) (chartentity.Series, bool) {
	for _, col := range d.Columns {
		if col.Name == column {
			return chartentity.Series{Name: col.Name, Keys: d.Keys, Values: col.Values}, true
		}
	}
	return chartentity.Series{}, false
}

// MultiSeries は指定カラム群をMultiSeriesとして取り出します。
// 見つからなかった最初のカラム名が missing に返ります。
func (d *Dataset) MultiSeries(columns []string) (ms chartentity.MultiSeries, missing string) {
	for _, name := range columns {
		s, ok := d.Series(name)
		if !ok {
			return nil, name
		}
		ms = append(ms, s)
	}
	return ms, ""
}

// ColumnNames は数値カラム名を定義順で返します。
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}
