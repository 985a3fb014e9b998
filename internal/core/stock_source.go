package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockSource is the inventory platform's quantity lookup.
type StockSource interface {
	// ForecastedQuantities returns on hand at internal locations plus pending
	// incoming minus pending outgoing, for every product in the batch.
	ForecastedQuantities(ctx context.Context, products []ProductID) (Values, error)
	// OnHandQuantities returns on hand restricted by filter. A location counts
	// together with its descendants. An empty filter yields zero for every product.
	OnHandQuantities(ctx context.Context, products []ProductID, filter LocationFilter) (Values, error)
}

// LocationSource finds locations by classification flag.
type LocationSource interface {
	// LocationsWithFlag returns matching location ids in ascending order.
	LocationsWithFlag(ctx context.Context, flag LocationFlag) ([]LocationID, error)
}

// PrecisionSource resolves the number of decimal digits configured for a key.
type PrecisionSource interface {
	Digits(ctx context.Context, key string) (int32, error)
}

// ProductCatalog reads company-scoped products and locations.
type ProductCatalog interface {
	GetCompanies(ctx context.Context) ([]Company, error)
	GetProducts(ctx context.Context, companyCode string) ([]Product, error)
	// ResolveProducts returns products in the order of codes. A missing code
	// yields an error wrapping ErrProductNotFound.
	ResolveProducts(ctx context.Context, companyCode string, codes []string) ([]Product, error)
	GetLocations(ctx context.Context, companyCode string) ([]StockLocation, error)
}

// zeroValues returns a zero entry for every product in the batch.
func zeroValues(products []ProductID) Values {
	out := make(Values, len(products))
	for _, id := range products {
		out[id] = decimal.Zero
	}
	return out
}
