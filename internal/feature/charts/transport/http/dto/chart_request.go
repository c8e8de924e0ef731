package dto

// BarChartRequest は縦・横バーチャート生成のリクエストDTOです。
// 未知のフィールドはハンドラーの厳格デコードで拒否されます。
type BarChartRequest struct {
	DatasetID     string `json:"dataset_id"`
	Column        string `json:"column"`
	Title         string `json:"title"`
	Sort          string `json:"sort"` // "", "asc", "desc"
	ShowValues    bool   `json:"show_values"`
	Prefix        string `json:"prefix"`
	Suffix        string `json:"suffix"`
	PositiveColor string `json:"positive_color"`
	NegativeColor string `json:"negative_color"`
}

// MultiChartRequest は複数系列の図（積み上げ、散布図、テーブル）の
// リクエストDTOです。Columns が空のときは全数値カラムが使われます。
type MultiChartRequest struct {
	DatasetID   string   `json:"dataset_id"`
	Columns     []string `json:"columns"`
	Title       string   `json:"title"`
	Granularity string   `json:"granularity"` // "", "hour", "day", "month"
	Strict      bool     `json:"strict"`
	ShowValues  bool     `json:"show_values"`
	Prefix      string   `json:"prefix"`
	Suffix      string   `json:"suffix"`
}
