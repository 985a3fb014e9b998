package core_test

import (
	"context"
	"errors"
	"testing"

	"stock-available/internal/core"
	"stock-available/internal/memory"

	"github.com/shopspring/decimal"
)

func constant(v int64) core.Computer {
	return core.ConstantComputer{Value: decimal.NewFromInt(v)}
}

func TestRegistry_Resolve(t *testing.T) {
	r := core.NewRegistry()
	must := func(reg core.Registration) {
		t.Helper()
		if err := r.Register(reg); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}
	must(core.Registration{Field: core.FieldPotential, Module: "base", Computer: constant(0)})
	must(core.Registration{Field: core.FieldPotential, Module: "mrp", Priority: 10, Computer: constant(1)})
	must(core.Registration{Field: core.FieldPotential, Module: "late", Priority: 10, Computer: constant(2)})
	must(core.Registration{Field: core.FieldPotential, Module: "low", Priority: -1, Computer: constant(3)})

	t.Run("highest priority, latest on ties", func(t *testing.T) {
		reg, err := r.Resolve(core.FieldPotential)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if reg.Module != "late" {
			t.Errorf("expected late, got %s", reg.Module)
		}
	})

	t.Run("chain order", func(t *testing.T) {
		var got []string
		for _, reg := range r.Registrations(core.FieldPotential) {
			got = append(got, reg.Module)
		}
		want := []string{"late", "mrp", "base", "low"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})

	t.Run("empty slot", func(t *testing.T) {
		if _, err := r.Resolve(core.FieldDock); err == nil {
			t.Error("expected error for a field with no registration")
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		if _, err := r.Resolve(core.Field("nope")); !errors.Is(err, core.ErrUnknownField) {
			t.Errorf("expected ErrUnknownField, got %v", err)
		}
	})
}

func TestRegistry_RegisterValidation(t *testing.T) {
	r := core.NewRegistry()
	tests := []struct {
		name string
		reg  core.Registration
	}{
		{"unknown field", core.Registration{Field: "nope", Module: "m", Computer: constant(0)}},
		{"unknown target", core.Registration{Field: core.FieldDock, Target: "nope", Module: "m", Computer: constant(0)}},
		{"nil computer", core.Registration{Field: core.FieldDock, Module: "m"}},
		{"no module", core.Registration{Field: core.FieldDock, Computer: constant(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Register(tt.reg); err == nil {
				t.Error("expected registration to be rejected")
			}
		})
	}
}

func TestDefaultRegistry_ProvidesEveryField(t *testing.T) {
	r := core.NewDefaultRegistry(nil, nil)
	for _, field := range core.AllFields() {
		reg, err := r.Resolve(field)
		if err != nil {
			t.Fatalf("Resolve(%s) failed: %v", field, err)
		}
		if reg.Module != core.BaseModule {
			t.Errorf("%s: expected module %s, got %s", field, core.BaseModule, reg.Module)
		}
		if reg.TargetField() != field {
			t.Errorf("%s: expected to write its own field, got %s", field, reg.TargetField())
		}
	}
}

func TestParseReturnQtyMode(t *testing.T) {
	tests := []struct {
		in      string
		want    core.ReturnQtyMode
		wantErr bool
	}{
		{"", core.ReturnQtyContract, false},
		{"contract", core.ReturnQtyContract, false},
		{"legacy", core.ReturnQtyLegacy, false},
		{"fixed", "", true},
	}
	for _, tt := range tests {
		got, err := core.ParseReturnQtyMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseReturnQtyMode(%q): unexpected error state %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseReturnQtyMode(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestComputerFunc(t *testing.T) {
	f := core.ComputerFunc(func(_ context.Context, products []core.ProductID) (core.Values, error) {
		return core.Values{products[0]: decimal.NewFromInt(7)}, nil
	})
	values, err := f.Compute(context.Background(), []core.ProductID{4})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !values[4].Equal(decimal.NewFromInt(7)) {
		t.Errorf("expected 7, got %s", values[4])
	}
}

func TestNewRegistryForMode(t *testing.T) {
	store := memory.NewDemoStore()

	contract, err := core.NewRegistryForMode(store, store, core.ReturnQtyContract)
	if err != nil {
		t.Fatalf("NewRegistryForMode failed: %v", err)
	}
	reg, _ := contract.Resolve(core.FieldReturn)
	if reg.Module != core.BaseModule || reg.TargetField() != core.FieldReturn {
		t.Errorf("expected baseline return_qty, got %s -> %s", reg.Module, reg.TargetField())
	}

	legacy, err := core.NewRegistryForMode(store, store, core.ReturnQtyLegacy)
	if err != nil {
		t.Fatalf("NewRegistryForMode failed: %v", err)
	}
	reg, _ = legacy.Resolve(core.FieldReturn)
	if reg.Module != core.LegacyModule || reg.TargetField() != core.FieldDock {
		t.Errorf("expected legacy return_qty writing dock_qty, got %s -> %s", reg.Module, reg.TargetField())
	}
}
