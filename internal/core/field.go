package core

import (
	"fmt"
	"strings"
)

// PrecisionProductUoM is the shared precision key used by every quantity field.
const PrecisionProductUoM = "Product Unit of Measure"

// Field names one computed quantity attribute of a product.
type Field string

const (
	FieldImmediatelyUsable Field = "immediately_usable_qty"
	FieldPotential         Field = "potential_qty"
	FieldHidden            Field = "hidden_qty"
	FieldDock              Field = "dock_qty"
	FieldReturn            Field = "return_qty"
)

// FieldSpec declares a computed field: its label, help text and precision key.
type FieldSpec struct {
	Name         Field    `json:"name"`
	Label        string   `json:"label"`
	Help         string   `json:"help"`
	PrecisionKey string   `json:"precision_key"`
	DependsOn    []string `json:"depends_on,omitempty"`
}

// FieldSpecs is the declaration order. Fields are evaluated in this order.
var FieldSpecs = []FieldSpec{
	{
		Name:  FieldImmediatelyUsable,
		Label: "Available to promise",
		Help: "Stock for this Product that can be safely proposed for sale to Customers.\n" +
			"The definition of this value can be configured to suit your needs",
		PrecisionKey: PrecisionProductUoM,
		DependsOn:    []string{"forecasted_quantity"},
	},
	{
		Name:         FieldPotential,
		Label:        "Potential",
		Help:         "Quantity of this Product that could be produced using the materials already at hand.",
		PrecisionKey: PrecisionProductUoM,
	},
	{
		Name:         FieldHidden,
		Label:        "Processing",
		Help:         "Quantity of this Product not currently available.",
		PrecisionKey: PrecisionProductUoM,
		DependsOn:    []string{"stock_locations.is_processing", "stock_quants"},
	},
	{
		Name:         FieldDock,
		Label:        "On Dock",
		Help:         "Quantity of this Product currently available On Dock.",
		PrecisionKey: PrecisionProductUoM,
		DependsOn:    []string{"stock_locations.is_dock", "stock_quants"},
	},
	{
		Name:         FieldReturn,
		Label:        "In Returns",
		Help:         "Quantity of this Product currently available in Returns locations.",
		PrecisionKey: PrecisionProductUoM,
		DependsOn:    []string{"stock_locations.is_return", "stock_quants"},
	},
}

// AllFields returns every field name in declaration order.
func AllFields() []Field {
	out := make([]Field, len(FieldSpecs))
	for i, s := range FieldSpecs {
		out[i] = s.Name
	}
	return out
}

// LookupField returns the declaration for name.
func LookupField(name Field) (FieldSpec, error) {
	for _, s := range FieldSpecs {
		if s.Name == name {
			return s, nil
		}
	}
	return FieldSpec{}, unknownField(name)
}

// ParseFields turns a comma separated list into fields. An empty string means all.
func ParseFields(s string) ([]Field, error) {
	if strings.TrimSpace(s) == "" {
		return AllFields(), nil
	}
	var out []Field
	for _, part := range strings.Split(s, ",") {
		name := Field(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if _, err := LookupField(name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

func fieldIndex(name Field) int {
	for i, s := range FieldSpecs {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func unknownField(name Field) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, string(name))
}
