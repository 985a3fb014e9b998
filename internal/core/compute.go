package core

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Computer derives one quantity for a batch of products. Implementations must
// return an entry for every product in the batch and must not let one product's
// value depend on the others in the batch.
type Computer interface {
	Compute(ctx context.Context, products []ProductID) (Values, error)
}

// ComputerFunc adapts a function to Computer.
type ComputerFunc func(ctx context.Context, products []ProductID) (Values, error)

func (f ComputerFunc) Compute(ctx context.Context, products []ProductID) (Values, error) {
	return f(ctx, products)
}

// ForecastComputer is the baseline available-to-promise derivation:
// immediately usable equals the forecasted quantity. Deployments replace it,
// for instance to subtract reservations.
type ForecastComputer struct {
	Stock StockSource
}

func (c ForecastComputer) Compute(ctx context.Context, products []ProductID) (Values, error) {
	forecast, err := c.Stock.ForecastedQuantities(ctx, products)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecasted quantities: %w", err)
	}
	out := make(Values, len(products))
	for _, id := range products {
		out[id] = forecast[id]
	}
	return out, nil
}

// ConstantComputer assigns the same value to every product.
type ConstantComputer struct {
	Value decimal.Decimal
}

func (c ConstantComputer) Compute(_ context.Context, products []ProductID) (Values, error) {
	out := make(Values, len(products))
	for _, id := range products {
		out[id] = c.Value
	}
	return out, nil
}

// LocationQtyComputer sums on-hand stock at every location carrying Flag.
type LocationQtyComputer struct {
	Flag      LocationFlag
	Locations LocationSource
	Stock     StockSource
}

func (c LocationQtyComputer) Compute(ctx context.Context, products []ProductID) (Values, error) {
	ids, err := c.Locations.LocationsWithFlag(ctx, c.Flag)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s locations: %w", c.Flag, err)
	}
	onHand, err := c.Stock.OnHandQuantities(ctx, products, OnlyLocations(ids...))
	if err != nil {
		return nil, fmt.Errorf("failed to read on-hand quantity at %s locations: %w", c.Flag, err)
	}
	out := make(Values, len(products))
	for _, id := range products {
		out[id] = onHand[id]
	}
	return out, nil
}
