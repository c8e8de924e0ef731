package usecase

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	chartentity "chart_backend/internal/feature/charts/domain/entity"
	"chart_backend/internal/feature/datasets/domain"
	"chart_backend/internal/feature/datasets/domain/entity"
)

// keyDateLayout はキー列の日付形式です。先頭データ行がこの形式で解釈できる
// とき、キー列全体がタイムスタンプキーとして扱われます。
const keyDateLayout = "2006-01-02"

// parseCSV はアップロードされたCSVをキー列＋数値カラム群へ解析します。
//
// 先頭行はヘッダで、第1カラムがキー列です。空セルは欠測値になります。
// キー種別（日付/カテゴリ）は先頭データ行のキーセルから決まり、以降の行も
// 同じ形式で解釈されます。
func parseCSV(r io.Reader) (keyName string, keys []chartentity.Key, cols []entity.Column, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return "", nil, nil, domain.ErrNoRows
	}
	if err != nil {
		return "", nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return "", nil, nil, domain.ErrNoColumns
	}

	keyName = strings.TrimSpace(header[0])
	cols = make([]entity.Column, len(header)-1)
	for i, h := range header[1:] {
		cols[i].Name = strings.TrimSpace(h)
	}

	var (
		isDate bool
		seen   = map[string]struct{}{}
	)
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// encoding/csvはヘッダと異なるフィールド数を自ら検出する
			var pe *csv.ParseError
			if errors.As(err, &pe) && errors.Is(pe.Err, csv.ErrFieldCount) {
				return "", nil, nil, fmt.Errorf("row %d: %w", row, domain.ErrRowWidth)
			}
			return "", nil, nil, fmt.Errorf("row %d: %w", row, err)
		}

		cell := strings.TrimSpace(record[0])
		if len(keys) == 0 {
			_, perr := time.Parse(keyDateLayout, cell)
			isDate = perr == nil
		}

		var key chartentity.Key
		if isDate {
			t, perr := time.Parse(keyDateLayout, cell)
			if perr != nil {
				return "", nil, nil, fmt.Errorf("row %d: %q: %w", row, cell, domain.ErrBadKey)
			}
			key = chartentity.TimeKey(t)
		} else {
			key = chartentity.CategoryKey(cell)
		}
		if _, dup := seen[key.String()]; dup {
			return "", nil, nil, fmt.Errorf("row %d: %q: %w", row, cell, domain.ErrDuplicateKey)
		}
		seen[key.String()] = struct{}{}
		keys = append(keys, key)

		for i, raw := range record[1:] {
			v, perr := parseCell(raw)
			if perr != nil {
				return "", nil, nil, fmt.Errorf("row %d column %q: %w", row, cols[i].Name, perr)
			}
			cols[i].Values = append(cols[i].Values, v)
		}
	}

	if len(keys) == 0 {
		return "", nil, nil, domain.ErrNoRows
	}
	return keyName, keys, cols, nil
}

// parseCell は1セルを観測値へ変換します。空セルは欠測です。
func parseCell(raw string) (chartentity.Value, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return chartentity.Missing(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return chartentity.Value{}, fmt.Errorf("%q: %w", s, domain.ErrBadNumber)
	}
	return chartentity.Number(f), nil
}
