package usecase

// Theme は図全体の配色とフォントを保持する不変の値です。
// モジュールレベルの状態ではなく、各合成呼び出しに明示的に渡されます。
type Theme struct {
	// Palette は多系列図で系列順に割り当てる色です。
	Palette []string
	// PositiveColor / NegativeColor は符号別色の既定値です。
	PositiveColor string
	NegativeColor string
	// FontFamily / FontSize はレンダラへそのまま渡す書体指定です。
	FontFamily string
	FontSize   int
}

// DefaultTheme は既定のテーマを返します。
func DefaultTheme() Theme {
	return Theme{
		Palette: []string{
			"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
			"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
		},
		PositiveColor: "#10B981",
		NegativeColor: "#EF4444",
		FontFamily:    "Helvetica, Arial, sans-serif",
		FontSize:      12,
	}
}

// SeriesColor は系列の添字に対応するパレット色を返します。
func (th Theme) SeriesColor(i int) string {
	if len(th.Palette) == 0 {
		return th.PositiveColor
	}
	return th.Palette[i%len(th.Palette)]
}
