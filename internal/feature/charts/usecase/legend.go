package usecase

import "chart_backend/internal/feature/charts/domain/entity"

// DedupeLegend は同一ラベルを持つトレース群のうち、入力順で最初の1つだけに
// 凡例エントリを残します。符号分割などで1論理系列が複数トレースに分かれても
// 凡例行が重複しないようにするためです。
//
// ラベルは厳密な文字列一致で比較され、入力順は保持されます。変更されるのは
// ShowInLegend フラグのみで、2回適用しても結果は変わりません。
func DedupeLegend(traces []entity.Trace) []entity.Trace {
	seen := map[string]bool{}
	for i := range traces {
		if seen[traces[i].Label] {
			traces[i].ShowInLegend = false
			continue
		}
		seen[traces[i].Label] = true
		traces[i].ShowInLegend = true
	}
	return traces
}
