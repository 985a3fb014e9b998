package app

import "stock-available/internal/core"

// QuantityRequest is the input for computing product quantities.
type QuantityRequest struct {
	CompanyCode  string
	ProductCodes []string     // empty means all active products
	Fields       []core.Field // empty means all fields
}
