package app

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"stock-available/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
)

type appService struct {
	catalog        core.ProductCatalog
	quantities     core.QuantityService
	defaultCompany string
}

// NewAppService constructs an appService that satisfies ApplicationService.
// defaultCompany may be empty.
func NewAppService(catalog core.ProductCatalog, quantities core.QuantityService, defaultCompany string) ApplicationService {
	return &appService{
		catalog:        catalog,
		quantities:     quantities,
		defaultCompany: defaultCompany,
	}
}

// LoadDefaultCompany loads the configured company, or the only one there is.
func (s *appService) LoadDefaultCompany(ctx context.Context) (*core.Company, error) {
	companies, err := s.catalog.GetCompanies(ctx)
	if err != nil {
		return nil, err
	}

	if s.defaultCompany != "" {
		for i := range companies {
			if companies[i].CompanyCode == s.defaultCompany {
				return &companies[i], nil
			}
		}
		return nil, fmt.Errorf("company %s not found", s.defaultCompany)
	}

	switch len(companies) {
	case 0:
		return nil, fmt.Errorf("no default company found, have migrations run?")
	case 1:
		return &companies[0], nil
	}
	return nil, fmt.Errorf("multiple companies found; set COMPANY_CODE env var (e.g. COMPANY_CODE=1000)")
}

// ListProducts returns all active products for a company.
func (s *appService) ListProducts(ctx context.Context, companyCode string) (*ProductListResult, error) {
	products, err := s.catalog.GetProducts(ctx, companyCode)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

// ListLocations returns active locations, optionally only those carrying flag.
func (s *appService) ListLocations(ctx context.Context, companyCode, flag string) (*LocationListResult, error) {
	var lf core.LocationFlag
	if flag != "" {
		parsed, err := core.ParseLocationFlag(flag)
		if err != nil {
			return nil, err
		}
		lf = parsed
	}

	locations, err := s.catalog.GetLocations(ctx, companyCode)
	if err != nil {
		return nil, err
	}
	if lf != "" {
		kept := locations[:0]
		for _, l := range locations {
			if l.HasFlag(lf) {
				kept = append(kept, l)
			}
		}
		locations = kept
	}
	return &LocationListResult{CompanyCode: companyCode, Flag: lf, Locations: locations}, nil
}

// GetProductQuantities resolves product codes and computes the requested fields.
func (s *appService) GetProductQuantities(ctx context.Context, req QuantityRequest) (*QuantityResult, error) {
	fields := req.Fields
	if len(fields) == 0 {
		fields = core.AllFields()
	}
	for _, f := range fields {
		if _, err := core.LookupField(f); err != nil {
			return nil, err
		}
	}

	var (
		products []core.Product
		err      error
	)
	if len(req.ProductCodes) == 0 {
		products, err = s.catalog.GetProducts(ctx, req.CompanyCode)
	} else {
		products, err = s.catalog.ResolveProducts(ctx, req.CompanyCode, req.ProductCodes)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]core.ProductID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	sets, err := s.quantities.Compute(ctx, ids, fields...)
	if err != nil {
		return nil, err
	}

	result := &QuantityResult{
		CompanyCode: req.CompanyCode,
		Fields:      fields,
		Rows:        make([]ProductQuantities, 0, len(products)),
		Totals:      make(map[core.Field]decimal.Decimal, len(fields)),
	}
	for _, p := range products {
		result.Rows = append(result.Rows, ProductQuantities{Product: p, Quantities: sets[p.ID]})
	}
	for _, f := range fields {
		column := make(core.Values, len(sets))
		for id, set := range sets {
			v, _ := set.Get(f)
			column[id] = v
		}
		result.Totals[f] = core.SumValues(column)
	}
	return result, nil
}

// DescribeFields lists the declarations with precision and provider.
func (s *appService) DescribeFields(ctx context.Context) (*FieldListResult, error) {
	out := make([]FieldInfo, 0, len(core.FieldSpecs))
	for _, spec := range core.FieldSpecs {
		digits, err := s.quantities.Digits(ctx, spec.Name)
		if err != nil {
			return nil, err
		}
		reg, err := s.quantities.Provider(spec.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, FieldInfo{
			FieldSpec: spec,
			Digits:    digits,
			Module:    reg.Module,
			Target:    reg.TargetField(),
		})
	}
	return &FieldListResult{Fields: out}, nil
}

// QuantitySchema reflects core.QuantitySet into a JSON schema. Quantities
// serialize as decimal strings.
func (s *appService) QuantitySchema() (*SchemaResult, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(decimal.Decimal{}) {
				return &jsonschema.Schema{Type: "string", Pattern: `^-?[0-9]+(\.[0-9]+)?$`}
			}
			return nil
		},
	}
	raw, err := json.Marshal(reflector.Reflect(core.QuantitySet{}))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return &SchemaResult{Schema: raw}, nil
}
