package main

import (
	"context"
	"log"
	"os"

	"stock-available/internal/adapters/cli"
	"stock-available/internal/app"
	"stock-available/internal/config"
	"stock-available/internal/core"
	"stock-available/internal/db"
	"stock-available/internal/memory"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: app <qty|fields|schema|locations|products|demo> [args]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	ctx := context.Background()

	// demo runs any other command against the in-memory sample warehouse.
	if os.Args[1] == "demo" {
		args := os.Args[2:]
		if len(args) == 0 {
			args = []string{"qty"}
		}
		cfg.CompanyCode = memory.DemoCompanyCode
		cfg.Redis = config.RedisConfig{}
		svc, cleanup, err := app.Build(ctx, cfg, memory.NewDemoStore())
		if err != nil {
			log.Fatalf("Failed to build demo: %v", err)
		}
		defer cleanup()
		cli.Run(ctx, svc, args)
		return
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	svc, cleanup, err := app.Build(ctx, cfg, core.NewStockService(pool, cfg.UoMDigits))
	if err != nil {
		log.Fatalf("Failed to wire services: %v", err)
	}
	defer cleanup()

	cli.Run(ctx, svc, os.Args[1:])
}
