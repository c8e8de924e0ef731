// Package usecase はチャート合成のビジネスロジックを実装します。
package usecase

import (
	"math"

	"chart_backend/internal/feature/charts/domain"
	"chart_backend/internal/feature/charts/domain/entity"
)

// targetTickCount はグリッド区間数の目標値です。
// パディング後の最終的な区間数は概ね4〜8本に収まります。
const targetTickCount = 5

// ComputeRange は数値系列から軸の描画範囲とグリッド間隔を計算します。
//
// 欠測値は極値の計算から除外されます。入力が空、または全て欠測の場合は
// domain.ErrEmptyData を返します。
//
// パディング規則:
//   - data_max より上は常に次のグリッド境界まで広げる
//   - data_min より下へ広げるのは data_min < 0 のときのみ。
//     data_min >= 0 のときは下限をちょうど 0 に固定する
//     （ゼロ起点のバーが軸の底から浮いて見えないようにするため）
//   - 全データが負のときは鏡像で、上限をちょうど 0 に固定する
func ComputeRange(values []entity.Value) (entity.AxisRangeSpec, error) {
	dataMin, dataMax, ok := extrema(values)
	if !ok {
		return entity.AxisRangeSpec{}, domain.ErrEmptyData
	}

	// 定数系列は値の前後に対称な範囲を合成して縮退（span=0）を避ける
	if dataMin == dataMax {
		half := math.Abs(dataMin) / 2
		if half == 0 {
			half = 1
		}
		dataMin -= half
		dataMax += half
	}

	// ゼロ固定を織り込んだ目標範囲からステップを選ぶ
	lo, hi := dataMin, dataMax
	if dataMin >= 0 {
		lo = 0
	}
	if dataMax <= 0 {
		hi = 0
	}
	step := niceStep(hi - lo)

	var min, max float64
	if dataMin >= 0 {
		min = 0
	} else {
		min = step * math.Floor(dataMin/step)
		if min == dataMin {
			min -= step
		}
	}
	if dataMax <= 0 {
		max = 0
	} else {
		max = step * math.Ceil(dataMax/step)
		if max == dataMax {
			max += step
		}
	}

	return entity.AxisRangeSpec{
		Min:          min,
		Max:          max,
		TickStep:     step,
		IncludesZero: min <= 0 && max >= 0,
	}, nil
}

// extrema は欠測を除いた最小値・最大値を返します。
// 有効な値が1つもないとき ok は false です。
func extrema(values []entity.Value) (dataMin, dataMax float64, ok bool) {
	for _, v := range values {
		if !v.Valid {
			continue
		}
		if !ok {
			dataMin, dataMax = v.Float64, v.Float64
			ok = true
			continue
		}
		dataMin = math.Min(dataMin, v.Float64)
		dataMax = math.Max(dataMax, v.Float64)
	}
	return dataMin, dataMax, ok
}

// niceStep は span を目標区間数で割った粗いステップを
// {1, 2, 5} × 10^k の「キリの良い数」へ丸めます。
func niceStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	rough := span / targetTickCount
	mag := math.Pow(10, math.Floor(math.Log10(rough)))
	switch {
	case rough/mag < 1.5:
		return mag
	case rough/mag < 3:
		return 2 * mag
	case rough/mag < 7:
		return 5 * mag
	default:
		return 10 * mag
	}
}
