// Package handler はdatasetsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"chart_backend/internal/api"
	"chart_backend/internal/feature/datasets/domain"
	"chart_backend/internal/feature/datasets/domain/entity"
	"chart_backend/internal/feature/datasets/transport/http/dto"
	"chart_backend/internal/feature/datasets/usecase"
	jwtmw "chart_backend/internal/platform/jwt"
)

// DatasetUsecase はデータセット操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DatasetUsecase interface {
	Upload(ctx context.Context, name string, r io.Reader) (*entity.Dataset, error)
	Get(ctx context.Context, id string) (*entity.Dataset, error)
	List(ctx context.Context) ([]entity.DatasetSummary, error)
	Delete(ctx context.Context, id string) error
}

// DatasetHandler はデータセットのHTTPリクエストを処理します。
type DatasetHandler struct {
	uc       DatasetUsecase
	sessions usecase.SessionRepository
	tokens   jwtmw.Generator
}

// NewDatasetHandler はDatasetHandlerの新しいインスタンスを生成します。
func NewDatasetHandler(uc DatasetUsecase, sessions usecase.SessionRepository, tokens jwtmw.Generator) *DatasetHandler {
	return &DatasetHandler{uc: uc, sessions: sessions, tokens: tokens}
}

// UploadHandler はmultipartのCSVファイルを受け取りデータセットとして登録します。
// 成功時はチャート生成用のBearerトークンを含むレスポンスを返します。
//
// エンドポイント例:
// POST /datasets  (multipart/form-data: file, name)
func (h *DatasetHandler) UploadHandler(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file is required"})
		return
	}
	if fh.Size > usecase.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "file too large"})
		return
	}

	// 表示名未指定時はファイル名を使用
	name := c.PostForm("name")
	if name == "" {
		name = fh.Filename
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	defer f.Close()

	ds, err := h.uc.Upload(c.Request.Context(), name, f)
	if err != nil {
		status := http.StatusInternalServerError
		if isUploadError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, api.ErrorResponse{Error: err.Error()})
		return
	}

	sess := entity.NewUploadSession(ds.ID, usecase.SessionTTL)
	if err := h.sessions.Create(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	token, err := h.tokens.GenerateToken(sess.ID, ds.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{
		Dataset: toDatasetResponse(ds.Summary()),
		Columns: ds.ColumnNames(),
		Token:   token,
	})
}

// ListHandler は全データセットのサマリ一覧を返します。
func (h *DatasetHandler) ListHandler(c *gin.Context) {
	summaries, err := h.uc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]dto.DatasetResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toDatasetResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// GetHandler はIDで指定されたデータセットの詳細を返します。
func (h *DatasetHandler) GetHandler(c *gin.Context) {
	ds, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrDatasetNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.DatasetDetailResponse{
		DatasetResponse: toDatasetResponse(ds.Summary()),
		KeyName:         ds.KeyName,
		Columns:         ds.ColumnNames(),
	})
}

// DeleteHandler はデータセットと、それに紐づくセッションを破棄します。
func (h *DatasetHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrDatasetNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	// トークンの残存を防ぐ（失敗してもデータセット削除自体は成立している）
	_ = h.sessions.RevokeAllByDatasetID(c.Request.Context(), id)

	c.Status(http.StatusNoContent)
}

// isUploadError はクライアント起因のアップロード失敗かを判定します。
func isUploadError(err error) bool {
	for _, target := range []error{
		domain.ErrNoColumns,
		domain.ErrNoRows,
		domain.ErrRowWidth,
		domain.ErrBadNumber,
		domain.ErrBadKey,
		domain.ErrDuplicateKey,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func toDatasetResponse(s entity.DatasetSummary) dto.DatasetResponse {
	return dto.DatasetResponse{
		ID:        s.ID,
		Name:      s.Name,
		Rows:      s.Rows,
		Cols:      s.Cols,
		CreatedAt: s.CreatedAt,
	}
}
