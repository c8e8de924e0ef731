package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"chart_backend/internal/app/di"
	"chart_backend/internal/app/router"
	charthandler "chart_backend/internal/feature/charts/transport/handler"
	chartusecase "chart_backend/internal/feature/charts/usecase"
	datasethandler "chart_backend/internal/feature/datasets/transport/handler"
	datasetusecase "chart_backend/internal/feature/datasets/usecase"
	infradb "chart_backend/internal/platform/db"
	infraredis "chart_backend/internal/platform/redis"
	jwtmw "chart_backend/internal/platform/jwt"
)

func main() {
	// ローカル開発用の.envがあれば読み込む
	_ = godotenv.Load()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	datasetRepo := di.NewDatasetRepository(rdb, db, 10*time.Minute)
	sessionRepo := di.NewSessionRepository(rdb, db)

	// Usecase
	datasetUC := datasetusecase.NewDatasetUsecase(datasetRepo)
	figureUC := chartusecase.NewFigureUsecase(chartusecase.DefaultTheme())

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokens := jwtmw.NewGenerator(secret, datasetusecase.SessionTTL)

	// Handler
	datasetH := datasethandler.NewDatasetHandler(datasetUC, sessionRepo, tokens)
	chartH := charthandler.NewChartHandler(figureUC, datasetUC)

	// ルータ生成
	r := router.NewRouter(datasetH, chartH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
