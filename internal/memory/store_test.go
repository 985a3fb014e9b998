package memory_test

import (
	"context"
	"errors"
	"testing"

	"stock-available/internal/core"
	"stock-available/internal/memory"

	"github.com/shopspring/decimal"
)

func TestDemoStore_Quantities(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDemoStore()
	products, err := store.ResolveProducts(ctx, memory.DemoCompanyCode, []string{"P001", "P002", "P003"})
	if err != nil {
		t.Fatalf("ResolveProducts failed: %v", err)
	}
	ids := []core.ProductID{products[0].ID, products[1].ID, products[2].ID}

	forecast, err := store.ForecastedQuantities(ctx, ids)
	if err != nil {
		t.Fatalf("ForecastedQuantities failed: %v", err)
	}
	for i, want := range []string{"143", "22.5", "0"} {
		if !forecast[ids[i]].Equal(decimal.RequireFromString(want)) {
			t.Errorf("%s: expected forecast %s, got %s", products[i].Code, want, forecast[ids[i]])
		}
	}

	docks, err := store.LocationsWithFlag(ctx, core.FlagDock)
	if err != nil {
		t.Fatalf("LocationsWithFlag failed: %v", err)
	}
	onHand, err := store.OnHandQuantities(ctx, ids, core.OnlyLocations(docks...))
	if err != nil {
		t.Fatalf("OnHandQuantities failed: %v", err)
	}
	if !onHand[ids[0]].Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected dock stock 15 including Bay-1, got %s", onHand[ids[0]])
	}
}

func TestStore_ParentCycleTerminates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	company := store.AddCompany("C", "Cycle")
	a := core.LocationID(1)
	b := core.LocationID(2)
	store.AddLocation(core.StockLocation{ID: a, CompanyID: company, ParentID: &b, IsInternal: true, IsActive: true})
	store.AddLocation(core.StockLocation{ID: b, CompanyID: company, ParentID: &a, IsInternal: true, IsActive: true})
	p := store.AddProduct(company, "P", "p")
	store.SetQuant(p, a, decimal.NewFromInt(4))

	v, err := store.OnHandQuantities(ctx, []core.ProductID{p}, core.OnlyLocations(99))
	if err != nil {
		t.Fatalf("OnHandQuantities failed: %v", err)
	}
	if !v[p].IsZero() {
		t.Errorf("expected 0, got %s", v[p])
	}
}

func TestStore_FailOn(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDemoStore()
	boom := errors.New("boom")

	store.FailOn(memory.OpCatalog, boom)
	if _, err := store.GetCompanies(ctx); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
	store.FailOn(memory.OpCatalog, nil)
	if _, err := store.GetCompanies(ctx); err != nil {
		t.Errorf("expected failure cleared, got %v", err)
	}
	if got := store.Calls(memory.OpCatalog); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}
