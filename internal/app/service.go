package app

import (
	"context"

	"stock-available/internal/core"
)

// ApplicationService is the single interface all UI adapters (CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// LoadDefaultCompany loads the active company. Uses the configured company code
	// if set; otherwise expects exactly one company.
	LoadDefaultCompany(ctx context.Context) (*core.Company, error)

	// ListProducts returns all active products for a company.
	ListProducts(ctx context.Context, companyCode string) (*ProductListResult, error)

	// ListLocations returns the active locations of a company.
	// A non-empty flag keeps only locations carrying it.
	ListLocations(ctx context.Context, companyCode, flag string) (*LocationListResult, error)

	// GetProductQuantities computes quantity fields for the requested products,
	// or for every active product when no code is given. Rows follow request order.
	GetProductQuantities(ctx context.Context, req QuantityRequest) (*QuantityResult, error)

	// DescribeFields lists the quantity field declarations with their precision
	// and the module currently deriving each one.
	DescribeFields(ctx context.Context) (*FieldListResult, error)

	// QuantitySchema returns the JSON schema of one product's quantity set.
	QuantitySchema() (*SchemaResult, error)
}
