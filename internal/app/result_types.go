package app

import (
	"encoding/json"

	"stock-available/internal/core"

	"github.com/shopspring/decimal"
)

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// LocationListResult is returned by ListLocations.
type LocationListResult struct {
	CompanyCode string               `json:"company_code"`
	Flag        core.LocationFlag    `json:"flag,omitempty"`
	Locations   []core.StockLocation `json:"locations"`
}

// ProductQuantities is one row of a QuantityResult.
type ProductQuantities struct {
	Product    core.Product     `json:"product"`
	Quantities core.QuantitySet `json:"quantities"`
}

// QuantityResult is returned by GetProductQuantities.
type QuantityResult struct {
	CompanyCode string                         `json:"company_code"`
	Fields      []core.Field                   `json:"fields"`
	Rows        []ProductQuantities            `json:"rows"`
	Totals      map[core.Field]decimal.Decimal `json:"totals"`
}

// FieldInfo describes one quantity field as currently deployed.
type FieldInfo struct {
	core.FieldSpec
	Digits int32      `json:"digits"`
	Module string     `json:"module"`
	Target core.Field `json:"target"`
}

// FieldListResult is returned by DescribeFields.
type FieldListResult struct {
	Fields []FieldInfo `json:"fields"`
}

// SchemaResult is returned by QuantitySchema.
type SchemaResult struct {
	Schema json.RawMessage
}
