package entity

// AxisRangeSpec は1軸の描画範囲とグリッド線の間隔を表します。
//
// 不変条件:
//   - データが0をまたぐ（または触れる）とき、0は常に [Min, Max] の内側にある
//   - 全データが正のとき Min == 0（ゼロ起点でバーが浮かない）
//   - 全データが負のとき Max == 0
//   - TickStep > 0 であり、(Max-Min)/TickStep は小さい整数（目標4〜8本）
type AxisRangeSpec struct {
	Min          float64
	Max          float64
	TickStep     float64
	IncludesZero bool
}

// TickCount は Min から Max までのグリッド区間数を返します。
func (a AxisRangeSpec) TickCount() int {
	if a.TickStep <= 0 {
		return 0
	}
	return int((a.Max-a.Min)/a.TickStep + 0.5)
}

// Trace は図中の1描画系列（バー、点、線分）です。
// Keys / Values / TextLabels は常に同じ置換が適用された一貫した並びです。
type Trace struct {
	Label        string
	Keys         []Key
	Values       []Value
	Color        string
	TextLabels   []string // 空のとき値ラベル非表示
	ShowInLegend bool
}

// FigureType は図の種別です。
type FigureType string

const (
	FigureBar     FigureType = "bar"
	FigureHBar    FigureType = "hbar"
	FigureStacked FigureType = "stacked"
	FigureScatter FigureType = "scatter"
	FigureTable   FigureType = "table"
)

// Figure は外部レンダラへ引き渡す宣言的なチャート記述です。
// 数値軸のレンジは図の向きに応じて XAxis または YAxis に設定されます。
// テーブル図では両軸とも nil で、Table のみが使われます。
type Figure struct {
	Type     FigureType
	Title    string
	XAxis    *AxisRangeSpec
	YAxis    *AxisRangeSpec
	Traces   []Trace
	Table    *Table
	Excluded []string // 整列時に除外された系列名（厳格モードでなければ空でないことがある）
}

// Table はテーブル図のセル内容です。Columns[i] は Header[i] 列の全セルです。
type Table struct {
	Header  []string
	Columns [][]string
}
