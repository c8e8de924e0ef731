package usecase

import (
	"chart_backend/internal/feature/charts/domain"
	"chart_backend/internal/feature/charts/domain/entity"
)

// BarOptions は縦・横バーチャートのオプションです。
type BarOptions struct {
	Title string
	ComposeOptions
}

// MultiOptions は複数系列の図（積み上げバー、散布図、テーブル）のオプションです。
type MultiOptions struct {
	Title       string
	Granularity Granularity
	Strict      bool
	ShowValues  bool
	Prefix      string
	Suffix      string
	// KeyHeader はテーブル図のキー列見出しです。空なら "key" が使われます。
	KeyHeader string
}

// figureUsecase はプロット種別ごとの図合成ユースケースを定義します。
// 配下の部品を 整列 → 軸レンジ → トレース合成 → 凡例去重 の順に合成します。
type figureUsecase struct {
	theme Theme
}

// NewFigureUsecase は指定テーマでfigureUsecaseの新しいインスタンスを生成します。
func NewFigureUsecase(th Theme) *figureUsecase {
	return &figureUsecase{theme: th}
}

// BarChart は1系列の縦バーチャートを合成します。
// 符号で色分けされた系列は正負のトレースセグメントに分割され、
// 凡例去重で1エントリに集約されます。
func (fu *figureUsecase) BarChart(s entity.Series, opts BarOptions) (entity.Figure, error) {
	return fu.barFigure(s, opts, entity.FigureBar)
}

// HorizontalBarChart は1系列の横バーチャートを合成します。
// 数値軸が横向きになるため、レンジは XAxis に設定されます。
func (fu *figureUsecase) HorizontalBarChart(s entity.Series, opts BarOptions) (entity.Figure, error) {
	return fu.barFigure(s, opts, entity.FigureHBar)
}

func (fu *figureUsecase) barFigure(s entity.Series, opts BarOptions, ft entity.FigureType) (entity.Figure, error) {
	tr, err := Compose(s, opts.ComposeOptions, fu.theme)
	if err != nil {
		return entity.Figure{}, err
	}
	axis, err := ComputeRange(tr.Values)
	if err != nil {
		return entity.Figure{}, err
	}

	traces := DedupeLegend(SplitBySign(tr, opts.ComposeOptions, fu.theme))

	fig := entity.Figure{Type: ft, Title: opts.Title, Traces: traces}
	if ft == entity.FigureHBar {
		fig.XAxis = &axis
	} else {
		fig.YAxis = &axis
	}
	return fig, nil
}

// StackedBarChart は整列済みの複数系列を積み上げバーチャートに合成します。
// 数値軸はキーごとの正の合計と負の合計を覆うように計算されます。
func (fu *figureUsecase) StackedBarChart(ms entity.MultiSeries, opts MultiOptions) (entity.Figure, error) {
	aligned, err := Align(ms, AlignOptions{Granularity: opts.Granularity, Strict: opts.Strict})
	if err != nil {
		return entity.Figure{}, err
	}
	if len(aligned.Series) == 0 {
		return entity.Figure{}, domain.ErrEmptyData
	}

	axis, err := ComputeRange(stackedTotals(aligned))
	if err != nil {
		return entity.Figure{}, err
	}

	traces, err := fu.composeAligned(aligned, opts)
	if err != nil {
		return entity.Figure{}, err
	}

	return entity.Figure{
		Type:     entity.FigureStacked,
		Title:    opts.Title,
		YAxis:    &axis,
		Traces:   DedupeLegend(traces),
		Excluded: aligned.Excluded,
	}, nil
}

// ScatterChart は整列済みの複数系列を散布図（点＋線）に合成します。
// 時系列は常に時刻順を保持します。
func (fu *figureUsecase) ScatterChart(ms entity.MultiSeries, opts MultiOptions) (entity.Figure, error) {
	aligned, err := Align(ms, AlignOptions{Granularity: opts.Granularity, Strict: opts.Strict})
	if err != nil {
		return entity.Figure{}, err
	}
	if len(aligned.Series) == 0 {
		return entity.Figure{}, domain.ErrEmptyData
	}

	var all []entity.Value
	for _, s := range aligned.Series {
		all = append(all, s.Values...)
	}
	axis, err := ComputeRange(all)
	if err != nil {
		return entity.Figure{}, err
	}

	traces, err := fu.composeAligned(aligned, opts)
	if err != nil {
		return entity.Figure{}, err
	}

	return entity.Figure{
		Type:     entity.FigureScatter,
		Title:    opts.Title,
		YAxis:    &axis,
		Traces:   DedupeLegend(traces),
		Excluded: aligned.Excluded,
	}, nil
}

// TableFigure は整列済みの複数系列をテーブル図に合成します。
// 欠測セルはプレースホルダではなく空文字列になります。
func (fu *figureUsecase) TableFigure(ms entity.MultiSeries, opts MultiOptions) (entity.Figure, error) {
	aligned, err := Align(ms, AlignOptions{Granularity: opts.Granularity, Strict: opts.Strict})
	if err != nil {
		return entity.Figure{}, err
	}
	if len(aligned.Series) == 0 {
		return entity.Figure{}, domain.ErrEmptyData
	}

	keyHeader := opts.KeyHeader
	if keyHeader == "" {
		keyHeader = "key"
	}

	table := &entity.Table{Header: []string{keyHeader}}
	keyCol := make([]string, len(aligned.Keys))
	for i, k := range aligned.Keys {
		keyCol[i] = k.String()
	}
	table.Columns = append(table.Columns, keyCol)

	for _, s := range aligned.Series {
		table.Header = append(table.Header, s.Name)
		col := make([]string, len(s.Values))
		for i, v := range s.Values {
			col[i] = FormatValue(v, opts.Prefix, opts.Suffix)
		}
		table.Columns = append(table.Columns, col)
	}

	return entity.Figure{
		Type:     entity.FigureTable,
		Title:    opts.Title,
		Table:    table,
		Excluded: aligned.Excluded,
	}, nil
}

// composeAligned は整列済み系列群をパレット色のトレース群へ合成します。
func (fu *figureUsecase) composeAligned(aligned entity.AlignedMultiSeries, opts MultiOptions) ([]entity.Trace, error) {
	traces := make([]entity.Trace, 0, len(aligned.Series))
	for i, s := range aligned.Series {
		tr, err := Compose(s, ComposeOptions{
			ShowValues:    opts.ShowValues,
			Prefix:        opts.Prefix,
			Suffix:        opts.Suffix,
			PositiveColor: fu.theme.SeriesColor(i),
		}, fu.theme)
		if err != nil {
			return nil, err
		}
		traces = append(traces, tr)
	}
	return traces, nil
}

// stackedTotals はキーごとの正の合計・負の合計を1つの値列にまとめます。
// 積み上げバーの軸は個々の値ではなく積み上げ後の高さを覆う必要があります。
func stackedTotals(aligned entity.AlignedMultiSeries) []entity.Value {
	pos := make([]float64, len(aligned.Keys))
	neg := make([]float64, len(aligned.Keys))
	for _, s := range aligned.Series {
		for i, v := range s.Values {
			if !v.Valid {
				continue
			}
			if v.Float64 < 0 {
				neg[i] += v.Float64
			} else {
				pos[i] += v.Float64
			}
		}
	}
	totals := make([]entity.Value, 0, 2*len(aligned.Keys))
	for i := range aligned.Keys {
		totals = append(totals, entity.Number(pos[i]), entity.Number(neg[i]))
	}
	return totals
}
