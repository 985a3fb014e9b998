package app

import (
	"context"
	"log"

	"stock-available/internal/cache"
	"stock-available/internal/config"
	"stock-available/internal/core"
	"stock-available/internal/db"
)

// Build wires an ApplicationService over stock according to cfg.
// When Redis is configured, flagged-location searches go through the cache;
// an unreachable Redis is logged and skipped. The returned func releases
// the Redis client.
func Build(ctx context.Context, cfg config.Config, stock core.StockService) (ApplicationService, func(), error) {
	cleanup := func() {}

	var locations core.LocationSource = stock
	if cfg.Redis.Enabled() {
		rdb, err := db.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Printf("Warning: location cache disabled: %v", err)
		} else {
			locations = cache.NewLocationCache(rdb, stock, cfg.LocationCacheTTL)
			cleanup = func() { _ = rdb.Close() }
		}
	}

	if cfg.ReturnQtyMode == core.ReturnQtyLegacy {
		log.Printf("Warning: RETURN_QTY_MODE=legacy, return stock is reported in dock_qty and return_qty stays zero")
	}
	registry, err := core.NewRegistryForMode(stock, locations, cfg.ReturnQtyMode)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	quantities := core.NewQuantityService(registry, stock)
	return NewAppService(stock, quantities, cfg.CompanyCode), cleanup, nil
}
