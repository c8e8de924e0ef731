package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	charthandler "chart_backend/internal/feature/charts/transport/handler"
	datasethandler "chart_backend/internal/feature/datasets/transport/handler"
	jwtmw "chart_backend/internal/platform/jwt"
)

// NewRouter は全エンドポイントを登録したginエンジンを生成します。
func NewRouter(datasets *datasethandler.DatasetHandler, charts *charthandler.ChartHandler) *gin.Engine {
	r := gin.Default()

	// デモフロントエンドはブラウザから直接叩くためCORSを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", health)

	// アップロードと一覧は認証不要
	r.POST("/datasets", datasets.UploadHandler)
	r.GET("/datasets", datasets.ListHandler)
	r.GET("/datasets/:id", datasets.GetHandler)
	r.DELETE("/datasets/:id", datasets.DeleteHandler)

	// チャート生成はアップロード時に発行されたトークンが必要
	ch := r.Group("/charts")
	ch.Use(jwtmw.AuthRequired())
	{
		ch.POST("/bar", charts.BarHandler)
		ch.POST("/hbar", charts.HorizontalBarHandler)
		ch.POST("/stacked", charts.StackedHandler)
		ch.POST("/scatter", charts.ScatterHandler)
		ch.POST("/table", charts.TableHandler)
	}

	return r
}

func health(c *gin.Context) {
	// キャッシュされないように明示
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
