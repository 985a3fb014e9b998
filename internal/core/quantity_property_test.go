package core_test

import (
	"context"
	"fmt"
	"testing"

	"stock-available/internal/core"
	"stock-available/internal/memory"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

// randomStore draws a warehouse with random flags, hierarchy and quants.
func randomStore(t *rapid.T) (*memory.Store, []core.ProductID) {
	store := memory.NewStore()
	company := store.AddCompany("R", "Random")

	nLoc := rapid.IntRange(0, 6).Draw(t, "locations")
	var locs []core.LocationID
	for i := 0; i < nLoc; i++ {
		l := core.StockLocation{
			CompanyID:    company,
			Code:         fmt.Sprintf("L%d", i),
			IsInternal:   rapid.Bool().Draw(t, "internal"),
			IsProcessing: rapid.Bool().Draw(t, "processing"),
			IsDock:       rapid.Bool().Draw(t, "dock"),
			IsReturn:     rapid.Bool().Draw(t, "return"),
			IsActive:     true,
		}
		if len(locs) > 0 && rapid.Bool().Draw(t, "has_parent") {
			parent := locs[rapid.IntRange(0, len(locs)-1).Draw(t, "parent")]
			l.ParentID = &parent
		}
		locs = append(locs, store.AddLocation(l))
	}

	nProd := rapid.IntRange(1, 5).Draw(t, "products")
	products := make([]core.ProductID, nProd)
	for i := range products {
		products[i] = store.AddProduct(company, fmt.Sprintf("P%d", i), "p")
		for _, loc := range locs {
			if rapid.Bool().Draw(t, "stocked") {
				qty := rapid.IntRange(-50, 500).Draw(t, "qty")
				store.SetQuant(products[i], loc, decimal.NewFromInt(int64(qty)))
			}
		}
		if rapid.Bool().Draw(t, "incoming") {
			store.AddPendingMove(products[i], memory.Incoming, decimal.NewFromInt(int64(rapid.IntRange(1, 100).Draw(t, "in"))))
		}
	}
	return store, products
}

func TestQuantity_BatchInvariance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store, products := randomStore(t)
		svc := newQuantityService(store)
		ctx := context.Background()

		batch := rapid.SliceOfN(rapid.SampledFrom(products), 1, 8).Draw(t, "batch")
		together, err := svc.Compute(ctx, batch)
		if err != nil {
			t.Fatalf("batch Compute failed: %v", err)
		}

		for _, id := range batch {
			alone, err := svc.Compute(ctx, []core.ProductID{id})
			if err != nil {
				t.Fatalf("single Compute failed: %v", err)
			}
			for _, field := range core.AllFields() {
				a, _ := together[id].Get(field)
				b, _ := alone[id].Get(field)
				if !a.Equal(b) {
					t.Fatalf("product %d %s: batch %s != single %s", id, field, a, b)
				}
			}
		}
	})
}

func TestQuantity_DefaultsHoldForAnyStock(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store, products := randomStore(t)
		ctx := context.Background()

		sets, err := newQuantityService(store).Compute(ctx, products)
		if err != nil {
			t.Fatalf("Compute failed: %v", err)
		}
		forecast, err := store.ForecastedQuantities(ctx, products)
		if err != nil {
			t.Fatalf("ForecastedQuantities failed: %v", err)
		}
		for _, id := range products {
			if !sets[id].ImmediatelyUsableQty.Equal(forecast[id]) {
				t.Fatalf("product %d: immediately usable %s != forecast %s", id, sets[id].ImmediatelyUsableQty, forecast[id])
			}
			if !sets[id].PotentialQty.IsZero() {
				t.Fatalf("product %d: potential %s != 0", id, sets[id].PotentialQty)
			}
		}
	})
}
