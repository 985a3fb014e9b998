package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// QuantityService computes the quantity fields of product batches.
// Every call reads current platform state; nothing is cached or persisted.
type QuantityService interface {
	// Compute returns the requested fields for every product in the batch.
	// No fields means all fields. Duplicate product ids are computed once.
	Compute(ctx context.Context, products []ProductID, fields ...Field) (map[ProductID]QuantitySet, error)
	// ComputeField returns one field for every product in the batch.
	ComputeField(ctx context.Context, field Field, products []ProductID) (Values, error)
	// Provider returns the registration currently deriving field.
	Provider(field Field) (Registration, error)
	// Digits returns the rounding precision of field.
	Digits(ctx context.Context, field Field) (int32, error)
}

type quantityService struct {
	registry  *Registry
	precision PrecisionSource
}

// NewQuantityService builds a QuantityService over the registry's computers.
func NewQuantityService(registry *Registry, precision PrecisionSource) QuantityService {
	return &quantityService{registry: registry, precision: precision}
}

func (s *quantityService) Provider(field Field) (Registration, error) {
	return s.registry.Resolve(field)
}

func (s *quantityService) Digits(ctx context.Context, field Field) (int32, error) {
	spec, err := LookupField(field)
	if err != nil {
		return 0, err
	}
	digits, err := s.precision.Digits(ctx, spec.PrecisionKey)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve precision %q: %w", spec.PrecisionKey, err)
	}
	return digits, nil
}

func (s *quantityService) Compute(ctx context.Context, products []ProductID, fields ...Field) (map[ProductID]QuantitySet, error) {
	batch := uniqueProducts(products)
	ordered, err := orderFields(fields)
	if err != nil {
		return nil, err
	}

	out := make(map[ProductID]QuantitySet, len(batch))
	for _, id := range batch {
		out[id] = QuantitySet{}
	}
	if len(batch) == 0 {
		return out, nil
	}

	digits := make(map[Field]int32)
	for _, field := range ordered {
		reg, err := s.registry.Resolve(field)
		if err != nil {
			return nil, err
		}
		target := reg.TargetField()
		if _, ok := digits[target]; !ok {
			d, err := s.Digits(ctx, target)
			if err != nil {
				return nil, err
			}
			digits[target] = d
		}

		values, err := reg.Computer.Compute(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s (%s): %w", field, reg.Module, err)
		}
		for _, id := range batch {
			v, ok := values[id]
			if !ok {
				return nil, fmt.Errorf("computer for %s (%s) returned no value for product %d", field, reg.Module, id)
			}
			set := out[id]
			if err := set.Set(target, v.Round(digits[target])); err != nil {
				return nil, err
			}
			out[id] = set
		}
	}
	return out, nil
}

func (s *quantityService) ComputeField(ctx context.Context, field Field, products []ProductID) (Values, error) {
	sets, err := s.Compute(ctx, products, field)
	if err != nil {
		return nil, err
	}
	out := make(Values, len(sets))
	for id, set := range sets {
		v, err := set.Get(field)
		if err != nil {
			return nil, err
		}
		out[id] = v
	}
	return out, nil
}

// uniqueProducts drops repeated ids, keeping first occurrence order.
func uniqueProducts(products []ProductID) []ProductID {
	seen := make(map[ProductID]struct{}, len(products))
	out := make([]ProductID, 0, len(products))
	for _, id := range products {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// orderFields validates fields and sorts them into declaration order.
func orderFields(fields []Field) ([]Field, error) {
	if len(fields) == 0 {
		return AllFields(), nil
	}
	seen := make(map[Field]struct{}, len(fields))
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if fieldIndex(f) < 0 {
			return nil, unknownField(f)
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return fieldIndex(out[i]) < fieldIndex(out[j]) })
	return out, nil
}

// SumValues adds up the values of a batch.
func SumValues(values Values) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
