package main

import (
	"context"
	"log"
	"net/http"

	webAdapter "stock-available/internal/adapters/web"
	"stock-available/internal/app"
	"stock-available/internal/config"
	"stock-available/internal/core"
	"stock-available/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	stock := core.NewStockService(pool, cfg.UoMDigits)
	svc, cleanup, err := app.Build(ctx, cfg, stock)
	if err != nil {
		log.Fatalf("wiring: %v", err)
	}
	defer cleanup()

	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins)

	log.Printf("server starting on :%s (return_qty mode: %s)", cfg.ServerPort, cfg.ReturnQtyMode)
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
