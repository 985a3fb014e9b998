package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownField    = errors.New("unknown quantity field")
	ErrUnknownFlag     = errors.New("unknown location flag")
)

// ProductID identifies a product variant.
type ProductID int

// Company scopes products and locations.
type Company struct {
	ID          int    `json:"id"`
	CompanyCode string `json:"company_code"`
	Name        string `json:"name"`
}

// Product is the catalog record the quantity fields are attached to.
type Product struct {
	ID        ProductID `json:"id"`
	CompanyID int       `json:"company_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Values maps each product of a batch to one computed quantity.
type Values map[ProductID]decimal.Decimal

// QuantitySet holds the computed quantity fields of one product.
type QuantitySet struct {
	ImmediatelyUsableQty decimal.Decimal `json:"immediately_usable_qty" jsonschema_description:"Available to promise: stock for this product that can be safely proposed for sale to customers"`
	PotentialQty         decimal.Decimal `json:"potential_qty" jsonschema_description:"Potential: quantity of this product that could be produced using the materials already at hand"`
	HiddenQty            decimal.Decimal `json:"hidden_qty" jsonschema_description:"Processing: quantity of this product not currently available"`
	DockQty              decimal.Decimal `json:"dock_qty" jsonschema_description:"On Dock: quantity of this product currently available on dock"`
	ReturnQty            decimal.Decimal `json:"return_qty" jsonschema_description:"In Returns: quantity of this product currently available in returns locations"`
}

// Get returns the value held for field.
func (q QuantitySet) Get(field Field) (decimal.Decimal, error) {
	switch field {
	case FieldImmediatelyUsable:
		return q.ImmediatelyUsableQty, nil
	case FieldPotential:
		return q.PotentialQty, nil
	case FieldHidden:
		return q.HiddenQty, nil
	case FieldDock:
		return q.DockQty, nil
	case FieldReturn:
		return q.ReturnQty, nil
	}
	return decimal.Zero, unknownField(field)
}

// Set stores v under field.
func (q *QuantitySet) Set(field Field, v decimal.Decimal) error {
	switch field {
	case FieldImmediatelyUsable:
		q.ImmediatelyUsableQty = v
	case FieldPotential:
		q.PotentialQty = v
	case FieldHidden:
		q.HiddenQty = v
	case FieldDock:
		q.DockQty = v
	case FieldReturn:
		q.ReturnQty = v
	default:
		return unknownField(field)
	}
	return nil
}
