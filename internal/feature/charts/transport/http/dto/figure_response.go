package dto

// FigureResponse は外部レンダラへ渡す宣言的チャート記述のレスポンスDTOです。
type FigureResponse struct {
	Type     string          `json:"type"`
	Title    string          `json:"title"`
	XAxis    *AxisResponse   `json:"xaxis,omitempty"`
	YAxis    *AxisResponse   `json:"yaxis,omitempty"`
	Traces   []TraceResponse `json:"traces,omitempty"`
	Table    *TableResponse  `json:"table,omitempty"`
	Excluded []string        `json:"excluded,omitempty"`
}

// AxisResponse は1軸の描画範囲のレスポンスDTOです。
type AxisResponse struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	TickStep     float64 `json:"tick_step"`
	IncludesZero bool    `json:"includes_zero"`
}

// TraceResponse は1描画系列のレスポンスDTOです。
// 欠測値はnullで表現されます。
type TraceResponse struct {
	Label        string     `json:"label"`
	Keys         []string   `json:"keys"`
	Values       []*float64 `json:"values"`
	Color        string     `json:"color"`
	Text         []string   `json:"text,omitempty"`
	ShowInLegend bool       `json:"show_in_legend"`
}

// TableResponse はテーブル図のレスポンスDTOです。
type TableResponse struct {
	Header  []string   `json:"header"`
	Columns [][]string `json:"columns"`
}
