package app_test

import (
	"context"
	"testing"

	"stock-available/internal/app"
	"stock-available/internal/config"
	"stock-available/internal/core"
	"stock-available/internal/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		mode   core.ReturnQtyMode
		dock   string
		ret    string
	}{
		{core.ReturnQtyContract, "15", "3"},
		{core.ReturnQtyLegacy, "3", "0"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			cfg := config.Config{ReturnQtyMode: tt.mode, CompanyCode: memory.DemoCompanyCode}
			svc, cleanup, err := app.Build(ctx, cfg, memory.NewDemoStore())
			require.NoError(t, err)
			defer cleanup()

			res, err := svc.GetProductQuantities(ctx, app.QuantityRequest{
				CompanyCode:  memory.DemoCompanyCode,
				ProductCodes: []string{"P001"},
			})
			require.NoError(t, err)
			q := res.Rows[0].Quantities
			assert.Equal(t, tt.dock, q.DockQty.String())
			assert.Equal(t, tt.ret, q.ReturnQty.String())
		})
	}
}

func TestBuild_UnreachableRedisFallsBack(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{
		ReturnQtyMode: core.ReturnQtyContract,
		Redis:         config.RedisConfig{Host: "127.0.0.1", Port: "1"},
	}
	svc, cleanup, err := app.Build(ctx, cfg, memory.NewDemoStore())
	require.NoError(t, err)
	defer cleanup()

	res, err := svc.GetProductQuantities(ctx, app.QuantityRequest{CompanyCode: memory.DemoCompanyCode, ProductCodes: []string{"P001"}})
	require.NoError(t, err)
	assert.Equal(t, "15", res.Rows[0].Quantities.DockQty.String())
}
