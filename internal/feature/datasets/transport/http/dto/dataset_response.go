package dto

import "time"

// DatasetResponse はデータセットサマリのレスポンスDTOです。
type DatasetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	CreatedAt time.Time `json:"created_at"`
}

// DatasetDetailResponse は個別取得のレスポンスDTOです。
type DatasetDetailResponse struct {
	DatasetResponse
	KeyName string   `json:"key_name"`
	Columns []string `json:"columns"`
}

// UploadResponse はアップロード成功時のレスポンスDTOです。
// Token は以後のチャート生成リクエストのBearerトークンです。
type UploadResponse struct {
	Dataset DatasetResponse `json:"dataset"`
	Columns []string        `json:"columns"`
	Token   string          `json:"token"`
}
