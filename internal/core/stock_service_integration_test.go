package core_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"stock-available/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// setupStockTestDB applies the schema and seeds one company:
//
//	STOCK (internal), DOCK (dock), DOCK/BAY (child of DOCK), PROC (processing),
//	RET (return), CUST (not internal)
func setupStockTestDB(t *testing.T) (*pgxpool.Pool, context.Context) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../migrations/001_stock_available.sql")
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE stock_moves, stock_quants, stock_locations, products, companies RESTART IDENTITY CASCADE;
		UPDATE decimal_precisions SET digits = 3 WHERE name = 'Product Unit of Measure';

		INSERT INTO companies (id, company_code, name) VALUES (1, '1000', 'Test Company');

		INSERT INTO stock_locations (id, company_id, parent_id, code, name, is_internal, is_processing, is_dock, is_return) VALUES
		(1, 1, NULL, 'STOCK',    'Stock',      true,  false, false, false),
		(2, 1, NULL, 'DOCK',     'Dock',       true,  false, true,  false),
		(3, 1, 2,    'DOCK/BAY', 'Bay',        true,  false, false, false),
		(4, 1, NULL, 'PROC',     'Processing', true,  true,  false, false),
		(5, 1, NULL, 'RET',      'Returns',    true,  false, false, true),
		(6, 1, NULL, 'CUST',     'Customers',  false, false, false, false);

		INSERT INTO products (id, company_id, code, name) VALUES
		(1, 1, 'P001', 'Widget A'),
		(2, 1, 'P002', 'Widget B');

		INSERT INTO stock_quants (product_id, location_id, quantity) VALUES
		(1, 1, 100), (1, 2, 10), (1, 3, 5), (1, 4, 7), (1, 5, 3), (1, 6, 50),
		(2, 1, 20.5);

		INSERT INTO stock_moves (product_id, location_id, direction, quantity, state) VALUES
		(1, 1, 'IN',  30, 'PENDING'),
		(1, 1, 'OUT', 12, 'PENDING'),
		(1, 1, 'IN',  99, 'DONE');
	`)
	if err != nil {
		t.Fatalf("Failed to seed stock test data: %v", err)
	}
	return pool, ctx
}

func TestStockService_Quantities(t *testing.T) {
	pool, ctx := setupStockTestDB(t)
	svc := core.NewStockService(pool, 3)
	batch := []core.ProductID{1, 2}

	t.Run("forecast", func(t *testing.T) {
		v, err := svc.ForecastedQuantities(ctx, batch)
		if err != nil {
			t.Fatalf("ForecastedQuantities failed: %v", err)
		}
		expectQty(t, "P001", v[1], "143")
		expectQty(t, "P002", v[2], "20.5")
	})

	t.Run("on hand under dock includes children", func(t *testing.T) {
		v, err := svc.OnHandQuantities(ctx, batch, core.OnlyLocations(2))
		if err != nil {
			t.Fatalf("OnHandQuantities failed: %v", err)
		}
		expectQty(t, "P001", v[1], "15")
		expectQty(t, "P002", v[2], "0")
	})

	t.Run("empty filter yields zero", func(t *testing.T) {
		v, err := svc.OnHandQuantities(ctx, batch, core.OnlyLocations())
		if err != nil {
			t.Fatalf("OnHandQuantities failed: %v", err)
		}
		if !v[1].IsZero() || !v[2].IsZero() {
			t.Errorf("expected zeros, got %v", v)
		}
	})

	t.Run("unrestricted counts internal only", func(t *testing.T) {
		v, err := svc.OnHandQuantities(ctx, batch, core.AllLocations())
		if err != nil {
			t.Fatalf("OnHandQuantities failed: %v", err)
		}
		expectQty(t, "P001", v[1], "125")
	})
}

func TestStockService_LocationsAndCatalog(t *testing.T) {
	pool, ctx := setupStockTestDB(t)
	svc := core.NewStockService(pool, 3)

	ids, err := svc.LocationsWithFlag(ctx, core.FlagDock)
	if err != nil {
		t.Fatalf("LocationsWithFlag failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("expected dock location [2], got %v", ids)
	}

	if _, err := svc.LocationsWithFlag(ctx, core.LocationFlag("x_dock; DROP TABLE")); !errors.Is(err, core.ErrUnknownFlag) {
		t.Errorf("expected ErrUnknownFlag, got %v", err)
	}

	digits, err := svc.Digits(ctx, core.PrecisionProductUoM)
	if err != nil || digits != 3 {
		t.Errorf("expected 3 digits, got %d, %v", digits, err)
	}
	digits, err = svc.Digits(ctx, "Missing Key")
	if err != nil || digits != 3 {
		t.Errorf("expected fallback of 3 digits, got %d, %v", digits, err)
	}

	products, err := svc.ResolveProducts(ctx, "1000", []string{"P002", "P001"})
	if err != nil {
		t.Fatalf("ResolveProducts failed: %v", err)
	}
	if products[0].Code != "P002" || products[1].Code != "P001" {
		t.Errorf("expected request order, got %s, %s", products[0].Code, products[1].Code)
	}

	if _, err := svc.ResolveProducts(ctx, "1000", []string{"NOPE"}); !errors.Is(err, core.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	locations, err := svc.GetLocations(ctx, "1000")
	if err != nil {
		t.Fatalf("GetLocations failed: %v", err)
	}
	if len(locations) != 6 {
		t.Errorf("expected 6 locations, got %d", len(locations))
	}
}

func TestStockService_QuantityFields(t *testing.T) {
	pool, ctx := setupStockTestDB(t)
	stock := core.NewStockService(pool, 3)
	svc := core.NewQuantityService(core.NewDefaultRegistry(stock, stock), stock)

	sets, err := svc.Compute(ctx, []core.ProductID{1})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	q := sets[1]
	expectQty(t, "immediately usable", q.ImmediatelyUsableQty, "143")
	expectQty(t, "potential", q.PotentialQty, "0")
	expectQty(t, "hidden", q.HiddenQty, "7")
	expectQty(t, "dock", q.DockQty, "15")
	expectQty(t, "return", q.ReturnQty, "3")
}
