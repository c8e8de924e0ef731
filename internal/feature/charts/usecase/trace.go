package usecase

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"chart_backend/internal/feature/charts/domain"
	"chart_backend/internal/feature/charts/domain/entity"
)

// SortOrder はカテゴリ系列の値ソート順です。
type SortOrder string

const (
	// SortNone は入力順を保持します。
	SortNone SortOrder = ""
	// SortAscending は値の昇順に並べ替えます。
	SortAscending SortOrder = "asc"
	// SortDescending は値の降順に並べ替えます。
	SortDescending SortOrder = "desc"
)

// ComposeOptions は Compose の動作を指定します。
// 認識されるキーはこの構造体のフィールドで列挙され、デフォルトはゼロ値です。
type ComposeOptions struct {
	// Sort はカテゴリ系列の値ソート順です。時刻キーを含む系列に
	// 指定すると domain.ErrInvalidSort になります。
	Sort SortOrder
	// ShowValues が true のとき各観測点に値ラベルを付与します。
	ShowValues bool
	// Prefix / Suffix は値ラベルの単位文字列です（例: "¥", "%"）。
	Prefix string
	Suffix string
	// PositiveColor / NegativeColor は符号別の色です。
	// 空のときはテーマの既定色が使われます。
	PositiveColor string
	NegativeColor string
}

// Compose は1系列から描画トレースを構築します。
//
// ソートはカテゴリ系列にのみ許可され、時系列は値ソートの指定に関わらず
// 時刻順を保持します。Keys / Values / TextLabels には常に同一の置換が
// 適用されます。
func Compose(s entity.Series, opts ComposeOptions, th Theme) (entity.Trace, error) {
	if s.ValidCount() == 0 {
		return entity.Trace{}, domain.ErrEmptyData
	}
	if opts.Sort != SortNone && s.HasTimeKeys() {
		return entity.Trace{}, domain.ErrInvalidSort
	}

	// 入力を変更しないよう添字の置換で並べ替える
	idx := make([]int, len(s.Keys))
	for i := range idx {
		idx[i] = i
	}
	if opts.Sort != SortNone {
		sort.SliceStable(idx, func(a, b int) bool {
			va, vb := s.Values[idx[a]], s.Values[idx[b]]
			// 欠測はソート方向に関わらず末尾へ送る
			if va.Valid != vb.Valid {
				return va.Valid
			}
			if !va.Valid {
				return false
			}
			if opts.Sort == SortDescending {
				return va.Float64 > vb.Float64
			}
			return va.Float64 < vb.Float64
		})
	}

	tr := entity.Trace{
		Label:        s.Name,
		Keys:         make([]entity.Key, len(idx)),
		Values:       make([]entity.Value, len(idx)),
		ShowInLegend: true,
		Color:        opts.positiveColor(th),
	}
	for i, j := range idx {
		tr.Keys[i] = s.Keys[j]
		tr.Values[i] = s.Values[j]
	}
	if opts.ShowValues {
		tr.TextLabels = make([]string, len(tr.Values))
		for i, v := range tr.Values {
			tr.TextLabels[i] = FormatValue(v, opts.Prefix, opts.Suffix)
		}
	}
	return tr, nil
}

// SplitBySign はトレースを符号ごとの描画セグメントに分割します。
// 各観測点の色は値の符号だけで決まります: 非負は正色、負は負色。
// 両符号が存在するときはラベルを共有する2トレースになり、それぞれ相手の
// 符号のスロットを欠測にして並びを保ちます。片符号しか無ければ1トレースです。
func SplitBySign(tr entity.Trace, opts ComposeOptions, th Theme) []entity.Trace {
	hasPos, hasNeg := false, false
	for _, v := range tr.Values {
		if !v.Valid {
			continue
		}
		if v.Float64 < 0 {
			hasNeg = true
		} else {
			hasPos = true
		}
	}

	if !hasNeg {
		tr.Color = opts.positiveColor(th)
		return []entity.Trace{tr}
	}
	if !hasPos {
		tr.Color = opts.negativeColor(th)
		return []entity.Trace{tr}
	}

	pos := maskBySign(tr, false)
	pos.Color = opts.positiveColor(th)
	neg := maskBySign(tr, true)
	neg.Color = opts.negativeColor(th)
	return []entity.Trace{pos, neg}
}

// maskBySign は指定符号以外の観測点を欠測に置き換えたコピーを返します。
func maskBySign(tr entity.Trace, negative bool) entity.Trace {
	out := entity.Trace{
		Label:        tr.Label,
		Keys:         tr.Keys,
		Values:       make([]entity.Value, len(tr.Values)),
		ShowInLegend: tr.ShowInLegend,
	}
	if tr.TextLabels != nil {
		out.TextLabels = make([]string, len(tr.TextLabels))
	}
	for i, v := range tr.Values {
		keep := v.Valid && (v.Float64 < 0) == negative
		if keep {
			out.Values[i] = v
			if out.TextLabels != nil {
				out.TextLabels[i] = tr.TextLabels[i]
			}
		} else {
			out.Values[i] = entity.Missing()
		}
	}
	return out
}

// FormatValue は観測値を値ラベル用の文字列へ整形します。
// 欠測はプレースホルダではなく空文字列になります。絶対値が1000以上の値は
// 小数点以下なしの桁区切り表記、それ未満は最短の10進表記です。
func FormatValue(v entity.Value, prefix, suffix string) string {
	if !v.Valid {
		return ""
	}
	var body string
	if math.Abs(v.Float64) >= 1000 {
		body = groupThousands(math.Round(v.Float64))
	} else {
		body = strconv.FormatFloat(v.Float64, 'f', -1, 64)
	}
	return prefix + body + suffix
}

// groupThousands は整数値を3桁区切りの文字列にします。
func groupThousands(f float64) string {
	s := strconv.FormatFloat(f, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func (o ComposeOptions) positiveColor(th Theme) string {
	if o.PositiveColor != "" {
		return o.PositiveColor
	}
	return th.PositiveColor
}

func (o ComposeOptions) negativeColor(th Theme) string {
	if o.NegativeColor != "" {
		return o.NegativeColor
	}
	return th.NegativeColor
}
