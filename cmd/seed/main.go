// seed はCSVファイル群をHTTPを介さずデータセットストアへ登録するツールです。
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"chart_backend/internal/feature/datasets/adapters"
	"chart_backend/internal/feature/datasets/usecase"
	infradb "chart_backend/internal/platform/db"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal("usage: seed <file.csv> [file.csv ...]")
	}

	db := infradb.OpenDB()
	uc := usecase.NewDatasetUsecase(adapters.NewDatasetRepository(db))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	for _, path := range os.Args[1:] {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}

		name := filepath.Base(path)
		ds, err := uc.Upload(ctx, name, f)
		f.Close()
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		log.Printf("seeded %s as %s (%d rows, %d columns)", name, ds.ID, len(ds.Keys), len(ds.Columns))
	}
	log.Println("seed ok")
}
