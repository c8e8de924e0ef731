package usecase

import (
	"fmt"
	"sort"
	"time"

	"chart_backend/internal/feature/charts/domain"
	"chart_backend/internal/feature/charts/domain/entity"
)

// Granularity はタイムスタンプキーを共通粒度へ丸める規則です。
// 丸めは設定で明示的に選ぶもので、隠れたデフォルトではありません。
type Granularity string

const (
	// GranularityNone は丸めを行いません。
	GranularityNone Granularity = ""
	// GranularityDay は日未満の精度を切り捨てます。
	GranularityDay Granularity = "day"
	// GranularityHour は時未満の精度を切り捨てます。
	GranularityHour Granularity = "hour"
	// GranularityMonth は月初へ切り捨てます。
	GranularityMonth Granularity = "month"
)

// AlignOptions は Align の動作を指定します。
type AlignOptions struct {
	// Granularity はキー丸めの粒度です（時刻キーのみ対象）。
	Granularity Granularity
	// Strict が true のとき、有効な観測値を持たない系列は
	// 除外フラグではなくエラーになります。
	Strict bool
}

// Align は独立に標本化された複数の時系列を、共通のソート済みキー列の上へ
// 再表現します。各系列に存在しないキーは欠測としてマークされ、補間や
// 前方埋めは行いません（ギャップの描画方法は下流の責務です）。
//
// カテゴリキーと時刻キーが混在する場合は domain.ErrIncompatibleKeyType を
// 返します。出力キー列は狭義単調増加で重複を含みません。
func Align(ms entity.MultiSeries, opts AlignOptions) (entity.AlignedMultiSeries, error) {
	var aligned entity.AlignedMultiSeries
	if len(ms) == 0 {
		return aligned, domain.ErrEmptyData
	}

	// キー種別の検証（全系列・全キーで統一されていること）
	if err := validateKeyKinds(ms); err != nil {
		return aligned, err
	}

	// 丸め後のキーの和集合を構築
	union := map[string]entity.Key{}
	for _, s := range ms {
		for _, k := range s.Keys {
			rk := roundKey(k, opts.Granularity)
			union[keyID(rk)] = rk
		}
	}
	keys := make([]entity.Key, 0, len(union))
	for _, k := range union {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	aligned.Keys = keys
	for _, s := range ms {
		if s.ValidCount() == 0 {
			if opts.Strict {
				return entity.AlignedMultiSeries{}, fmt.Errorf("series %q: %w", s.Name, domain.ErrEmptyData)
			}
			aligned.Excluded = append(aligned.Excluded, s.Name)
			continue
		}

		// 丸め後に同一キーへ潰れた観測は後勝ち
		byKey := map[string]entity.Value{}
		for i, k := range s.Keys {
			byKey[keyID(roundKey(k, opts.Granularity))] = s.Values[i]
		}

		out := entity.Series{
			Name:   s.Name,
			Keys:   keys,
			Values: make([]entity.Value, len(keys)),
		}
		for i, k := range keys {
			if v, ok := byKey[keyID(k)]; ok {
				out.Values[i] = v
			} else {
				out.Values[i] = entity.Missing()
			}
		}
		aligned.Series = append(aligned.Series, out)
	}

	return aligned, nil
}

// keyID はマップ用のキー識別子を返します。Key.String() は表示用で時刻キーを
// 日付に丸めてしまうため、ここでは精度を落とさない形式を使います。
func keyID(k entity.Key) string {
	if k.Kind == entity.KindTime {
		return k.Time.UTC().Format(time.RFC3339Nano)
	}
	return k.Label
}

// validateKeyKinds は全系列のキー種別が統一されていることを検証します。
func validateKeyKinds(ms entity.MultiSeries) error {
	var kind entity.KeyKind
	seen := false
	for _, s := range ms {
		for _, k := range s.Keys {
			if !seen {
				kind = k.Kind
				seen = true
				continue
			}
			if k.Kind != kind {
				return fmt.Errorf("series %q: %w", s.Name, domain.ErrIncompatibleKeyType)
			}
		}
	}
	return nil
}

// roundKey は時刻キーを指定粒度へ切り捨てます。カテゴリキーはそのままです。
func roundKey(k entity.Key, g Granularity) entity.Key {
	if k.Kind != entity.KindTime || g == GranularityNone {
		return k
	}
	t := k.Time.UTC()
	switch g {
	case GranularityHour:
		t = t.Truncate(time.Hour)
	case GranularityDay:
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case GranularityMonth:
		t = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return entity.TimeKey(t)
}
