// Package handler はchartsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chart_backend/internal/api"
	chartdomain "chart_backend/internal/feature/charts/domain"
	"chart_backend/internal/feature/charts/domain/entity"
	"chart_backend/internal/feature/charts/transport/http/dto"
	"chart_backend/internal/feature/charts/usecase"
	datasetdomain "chart_backend/internal/feature/datasets/domain"
	datasetentity "chart_backend/internal/feature/datasets/domain/entity"
	jwtmw "chart_backend/internal/platform/jwt"
)

// FigureUsecase はプロット種別ごとの図合成インターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type FigureUsecase interface {
	BarChart(s entity.Series, opts usecase.BarOptions) (entity.Figure, error)
	HorizontalBarChart(s entity.Series, opts usecase.BarOptions) (entity.Figure, error)
	StackedBarChart(ms entity.MultiSeries, opts usecase.MultiOptions) (entity.Figure, error)
	ScatterChart(ms entity.MultiSeries, opts usecase.MultiOptions) (entity.Figure, error)
	TableFigure(ms entity.MultiSeries, opts usecase.MultiOptions) (entity.Figure, error)
}

// DatasetReader はチャート生成時のデータセット読み取りを抽象化します。
type DatasetReader interface {
	Get(ctx context.Context, id string) (*datasetentity.Dataset, error)
}

// ChartHandler はチャート生成のHTTPリクエストを処理します。
type ChartHandler struct {
	figures  FigureUsecase
	datasets DatasetReader
}

// NewChartHandler はChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(figures FigureUsecase, datasets DatasetReader) *ChartHandler {
	return &ChartHandler{figures: figures, datasets: datasets}
}

// BarHandler は縦バーチャートを生成します。
//
// エンドポイント例:
// POST /charts/bar  {"dataset_id": "...", "column": "sales", "sort": "desc"}
func (h *ChartHandler) BarHandler(c *gin.Context) {
	h.barFigure(c, false)
}

// HorizontalBarHandler は横バーチャートを生成します。
func (h *ChartHandler) HorizontalBarHandler(c *gin.Context) {
	h.barFigure(c, true)
}

func (h *ChartHandler) barFigure(c *gin.Context, horizontal bool) {
	var req dto.BarChartRequest
	if !decodeStrict(c, &req) {
		return
	}
	if req.DatasetID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "dataset_id is required"})
		return
	}
	if req.Column == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "column is required"})
		return
	}
	switch usecase.SortOrder(req.Sort) {
	case usecase.SortNone, usecase.SortAscending, usecase.SortDescending:
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unknown sort order: " + req.Sort})
		return
	}
	ds, ok := h.loadDataset(c, req.DatasetID)
	if !ok {
		return
	}

	s, found := ds.Series(req.Column)
	if !found {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: datasetdomain.ErrColumnNotFound.Error()})
		return
	}

	opts := usecase.BarOptions{
		Title: req.Title,
		ComposeOptions: usecase.ComposeOptions{
			Sort:          usecase.SortOrder(req.Sort),
			ShowValues:    req.ShowValues,
			Prefix:        req.Prefix,
			Suffix:        req.Suffix,
			PositiveColor: req.PositiveColor,
			NegativeColor: req.NegativeColor,
		},
	}

	var (
		fig entity.Figure
		err error
	)
	if horizontal {
		fig, err = h.figures.HorizontalBarChart(s, opts)
	} else {
		fig, err = h.figures.BarChart(s, opts)
	}
	h.respond(c, fig, err)
}

// StackedHandler は積み上げバーチャートを生成します。
func (h *ChartHandler) StackedHandler(c *gin.Context) {
	h.multiFigure(c, h.figures.StackedBarChart)
}

// ScatterHandler は散布図を生成します。
func (h *ChartHandler) ScatterHandler(c *gin.Context) {
	h.multiFigure(c, h.figures.ScatterChart)
}

// TableHandler はテーブル図を生成します。
func (h *ChartHandler) TableHandler(c *gin.Context) {
	h.multiFigure(c, h.figures.TableFigure)
}

func (h *ChartHandler) multiFigure(c *gin.Context, build func(entity.MultiSeries, usecase.MultiOptions) (entity.Figure, error)) {
	var req dto.MultiChartRequest
	if !decodeStrict(c, &req) {
		return
	}
	if req.DatasetID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "dataset_id is required"})
		return
	}
	switch usecase.Granularity(req.Granularity) {
	case usecase.GranularityNone, usecase.GranularityHour, usecase.GranularityDay, usecase.GranularityMonth:
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unknown granularity: " + req.Granularity})
		return
	}
	ds, ok := h.loadDataset(c, req.DatasetID)
	if !ok {
		return
	}

	// カラム未指定時は全数値カラムを使用
	columns := req.Columns
	if len(columns) == 0 {
		columns = ds.ColumnNames()
	}
	ms, missing := ds.MultiSeries(columns)
	if missing != "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: datasetdomain.ErrColumnNotFound.Error() + ": " + missing})
		return
	}

	fig, err := build(ms, usecase.MultiOptions{
		Title:       req.Title,
		Granularity: usecase.Granularity(req.Granularity),
		Strict:      req.Strict,
		ShowValues:  req.ShowValues,
		Prefix:      req.Prefix,
		Suffix:      req.Suffix,
		KeyHeader:   ds.KeyName,
	})
	h.respond(c, fig, err)
}

// loadDataset はリクエストのデータセットをトークンと突き合わせて取得します。
func (h *ChartHandler) loadDataset(c *gin.Context, datasetID string) (*datasetentity.Dataset, bool) {
	// トークンが示すデータセット以外へのアクセスは拒否
	if owned := c.GetString(jwtmw.ContextDatasetID); owned != "" && owned != datasetID {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "token does not grant access to this dataset"})
		return nil, false
	}

	ds, err := h.datasets.Get(c.Request.Context(), datasetID)
	if err != nil {
		if errors.Is(err, datasetdomain.ErrDatasetNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return ds, true
}

// respond は図をDTOへ変換し、コアのエラーをHTTPステータスへ対応付けます。
func (h *ChartHandler) respond(c *gin.Context, fig entity.Figure, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, chartdomain.ErrEmptyData),
			errors.Is(err, chartdomain.ErrIncompatibleKeyType),
			errors.Is(err, chartdomain.ErrInvalidSort):
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toFigureResponse(fig))
}

// decodeStrict は未知フィールドを拒否する厳格なJSONデコードを行います。
// 認識されないオプションキーは黙って無視せずエラーにします。
func decodeStrict(c *gin.Context, out interface{}) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

func toFigureResponse(fig entity.Figure) dto.FigureResponse {
	out := dto.FigureResponse{
		Type:     string(fig.Type),
		Title:    fig.Title,
		XAxis:    toAxisResponse(fig.XAxis),
		YAxis:    toAxisResponse(fig.YAxis),
		Excluded: fig.Excluded,
	}
	for _, tr := range fig.Traces {
		out.Traces = append(out.Traces, toTraceResponse(tr))
	}
	if fig.Table != nil {
		out.Table = &dto.TableResponse{Header: fig.Table.Header, Columns: fig.Table.Columns}
	}
	return out
}

func toAxisResponse(a *entity.AxisRangeSpec) *dto.AxisResponse {
	if a == nil {
		return nil
	}
	return &dto.AxisResponse{
		Min:          a.Min,
		Max:          a.Max,
		TickStep:     a.TickStep,
		IncludesZero: a.IncludesZero,
	}
}

func toTraceResponse(tr entity.Trace) dto.TraceResponse {
	out := dto.TraceResponse{
		Label:        tr.Label,
		Keys:         make([]string, len(tr.Keys)),
		Values:       make([]*float64, len(tr.Values)),
		Color:        tr.Color,
		Text:         tr.TextLabels,
		ShowInLegend: tr.ShowInLegend,
	}
	for i, k := range tr.Keys {
		out.Keys[i] = k.String()
	}
	for i, v := range tr.Values {
		if v.Valid {
			f := v.Float64
			out.Values[i] = &f
		}
	}
	return out
}
