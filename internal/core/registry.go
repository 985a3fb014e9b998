package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// BaseModule is the module name of the baseline registrations.
const BaseModule = "stock_available"

// Registration installs a Computer into the slot of Field.
type Registration struct {
	Field    Field
	Module   string
	Priority int
	Computer Computer
	// Target is the field the computed values are written to. Empty means Field.
	Target Field

	seq int
}

// TargetField returns where this registration writes its values.
func (r Registration) TargetField() Field {
	if r.Target == "" {
		return r.Field
	}
	return r.Target
}

// Registry holds the computers installed for each quantity field.
// Resolution takes the highest priority; on equal priority the latest
// registration wins, so replacing a derivation never depends on map order.
type Registry struct {
	mu    sync.RWMutex
	slots map[Field][]Registration
	next  int
}

func NewRegistry() *Registry {
	return &Registry{slots: make(map[Field][]Registration)}
}

// Register validates and installs reg.
func (r *Registry) Register(reg Registration) error {
	if _, err := LookupField(reg.Field); err != nil {
		return err
	}
	if reg.Target != "" {
		if _, err := LookupField(reg.Target); err != nil {
			return err
		}
	}
	if reg.Computer == nil {
		return fmt.Errorf("registration for %s by %q has no computer", reg.Field, reg.Module)
	}
	if reg.Module == "" {
		return fmt.Errorf("registration for %s has no module name", reg.Field)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	reg.seq = r.next
	r.slots[reg.Field] = append(r.slots[reg.Field], reg)
	return nil
}

// Resolve returns the registration currently providing field.
func (r *Registry) Resolve(field Field) (Registration, error) {
	chain := r.Registrations(field)
	if len(chain) == 0 {
		if _, err := LookupField(field); err != nil {
			return Registration{}, err
		}
		return Registration{}, fmt.Errorf("no computer registered for %s", field)
	}
	return chain[0], nil
}

// Registrations lists the slot of field in resolution order.
func (r *Registry) Registrations(field Field) []Registration {
	r.mu.RLock()
	chain := append([]Registration(nil), r.slots[field]...)
	r.mu.RUnlock()

	sort.SliceStable(chain, func(i, j int) bool {
		if chain[i].Priority != chain[j].Priority {
			return chain[i].Priority > chain[j].Priority
		}
		return chain[i].seq > chain[j].seq
	})
	return chain
}

// NewDefaultRegistry installs the baseline derivations of every field.
func NewDefaultRegistry(stock StockSource, locations LocationSource) *Registry {
	r := NewRegistry()
	base := []Registration{
		{Field: FieldImmediatelyUsable, Computer: ForecastComputer{Stock: stock}},
		{Field: FieldPotential, Computer: ConstantComputer{Value: decimal.Zero}},
		{Field: FieldHidden, Computer: LocationQtyComputer{Flag: FlagProcessing, Locations: locations, Stock: stock}},
		{Field: FieldDock, Computer: LocationQtyComputer{Flag: FlagDock, Locations: locations, Stock: stock}},
		{Field: FieldReturn, Computer: LocationQtyComputer{Flag: FlagReturn, Locations: locations, Stock: stock}},
	}
	for _, reg := range base {
		reg.Module = BaseModule
		if err := r.Register(reg); err != nil {
			panic("baseline registration: " + err.Error())
		}
	}
	return r
}

// ReturnQtyMode selects how return_qty is derived.
type ReturnQtyMode string

const (
	// ReturnQtyContract stores return-location stock in return_qty.
	ReturnQtyContract ReturnQtyMode = "contract"
	// ReturnQtyLegacy reproduces the historical derivation, which writes the
	// return-location stock into dock_qty and leaves return_qty at zero.
	ReturnQtyLegacy ReturnQtyMode = "legacy"
)

// LegacyModule is the module name of the legacy return_qty registration.
const LegacyModule = "stock_available_legacy"

// ParseReturnQtyMode maps a config value to a mode. Empty means contract.
func ParseReturnQtyMode(s string) (ReturnQtyMode, error) {
	switch ReturnQtyMode(s) {
	case "", ReturnQtyContract:
		return ReturnQtyContract, nil
	case ReturnQtyLegacy:
		return ReturnQtyLegacy, nil
	}
	return "", fmt.Errorf("invalid return qty mode %q (want contract or legacy)", s)
}

// RegisterLegacyReturnQty overrides return_qty with the historical derivation.
func RegisterLegacyReturnQty(r *Registry, stock StockSource, locations LocationSource) error {
	return r.Register(Registration{
		Field:    FieldReturn,
		Module:   LegacyModule,
		Priority: 10,
		Target:   FieldDock,
		Computer: LocationQtyComputer{Flag: FlagReturn, Locations: locations, Stock: stock},
	})
}

// NewRegistryForMode returns the default registry with the return_qty
// derivation selected by mode.
func NewRegistryForMode(stock StockSource, locations LocationSource, mode ReturnQtyMode) (*Registry, error) {
	r := NewDefaultRegistry(stock, locations)
	if mode == ReturnQtyLegacy {
		if err := RegisterLegacyReturnQty(r, stock, locations); err != nil {
			return nil, fmt.Errorf("failed to register legacy return qty: %w", err)
		}
	}
	return r, nil
}
