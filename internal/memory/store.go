// Package memory provides an in-memory inventory platform for tests and demos.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"stock-available/internal/core"

	"github.com/shopspring/decimal"
)

// Op names a platform lookup, used for failure injection and call counting.
type Op string

const (
	OpForecast  Op = "forecast"
	OpOnHand    Op = "on_hand"
	OpLocations Op = "locations"
	OpPrecision Op = "precision"
	OpCatalog   Op = "catalog"
)

// Direction of a pending stock move.
type Direction int

const (
	Incoming Direction = iota
	Outgoing
)

type quantKey struct {
	product  core.ProductID
	location core.LocationID
}

type move struct {
	product   core.ProductID
	direction Direction
	quantity  decimal.Decimal
}

// Store keeps companies, products, locations, quants and pending moves in memory.
type Store struct {
	mu        sync.RWMutex
	companies []core.Company
	products  []core.Product
	locations map[core.LocationID]core.StockLocation
	quants    map[quantKey]decimal.Decimal
	moves     []move
	digits    map[string]int32

	defaultDigits int32
	failures      map[Op]error
	calls         map[Op]int
}

// Verify interface compliance
var _ core.StockService = (*Store)(nil)

// NewStore creates an empty store. Precision keys default to 3 digits.
func NewStore() *Store {
	return &Store{
		locations:     make(map[core.LocationID]core.StockLocation),
		quants:        make(map[quantKey]decimal.Decimal),
		digits:        make(map[string]int32),
		defaultDigits: 3,
		failures:      make(map[Op]error),
		calls:         make(map[Op]int),
	}
}

// AddCompany registers a company and returns its id.
func (s *Store) AddCompany(code, name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := len(s.companies) + 1
	s.companies = append(s.companies, core.Company{ID: id, CompanyCode: code, Name: name})
	return id
}

// AddProduct registers an active product and returns its id.
func (s *Store) AddProduct(companyID int, code, name string) core.ProductID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := core.ProductID(len(s.products) + 1)
	s.products = append(s.products, core.Product{
		ID:        id,
		CompanyID: companyID,
		Code:      code,
		Name:      name,
		Unit:      "Units",
		IsActive:  true,
	})
	return id
}

// AddLocation stores l, assigning the next id when l.ID is zero.
func (s *Store) AddLocation(l core.StockLocation) core.LocationID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		var max core.LocationID
		for id := range s.locations {
			if id > max {
				max = id
			}
		}
		l.ID = max + 1
	}
	s.locations[l.ID] = l
	return l.ID
}

// SetQuant sets the on-hand quantity of product at location.
func (s *Store) SetQuant(product core.ProductID, location core.LocationID, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quants[quantKey{product, location}] = qty
}

// AddPendingMove records an incoming or outgoing move not yet done.
func (s *Store) AddPendingMove(product core.ProductID, dir Direction, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves = append(s.moves, move{product: product, direction: dir, quantity: qty})
}

// SetDigits configures the precision of key.
func (s *Store) SetDigits(key string, digits int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.digits[key] = digits
}

// FailOn makes every subsequent op return err. A nil err clears the failure.
func (s *Store) FailOn(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Calls returns how many times op was invoked.
func (s *Store) Calls(op Op) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[op]
}

// enter counts the call and returns the injected failure, if any.
// Callers must hold the write lock.
func (s *Store) enter(op Op) error {
	s.calls[op]++
	return s.failures[op]
}

func (s *Store) ForecastedQuantities(_ context.Context, products []core.ProductID) (core.Values, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpForecast); err != nil {
		return nil, err
	}

	out := s.onHand(products, core.AllLocations())
	for _, m := range s.moves {
		cur, ok := out[m.product]
		if !ok {
			continue
		}
		if m.direction == Incoming {
			out[m.product] = cur.Add(m.quantity)
		} else {
			out[m.product] = cur.Sub(m.quantity)
		}
	}
	return out, nil
}

func (s *Store) OnHandQuantities(_ context.Context, products []core.ProductID, filter core.LocationFilter) (core.Values, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpOnHand); err != nil {
		return nil, err
	}
	return s.onHand(products, filter), nil
}

// onHand sums quants per product. Callers must hold the lock.
func (s *Store) onHand(products []core.ProductID, filter core.LocationFilter) core.Values {
	out := make(core.Values, len(products))
	for _, id := range products {
		out[id] = decimal.Zero
	}
	if filter.IsEmpty() {
		return out
	}
	for key, qty := range s.quants {
		cur, ok := out[key.product]
		if !ok || !s.inScope(key.location, filter) {
			continue
		}
		out[key.product] = cur.Add(qty)
	}
	return out
}

// inScope reports whether loc passes filter, either itself or through an ancestor.
// An unrestricted filter counts internal locations only.
func (s *Store) inScope(loc core.LocationID, filter core.LocationFilter) bool {
	if filter.IsAll() {
		return s.locations[loc].IsInternal
	}
	seen := make(map[core.LocationID]bool)
	for cur := loc; !seen[cur]; {
		seen[cur] = true
		if filter.Contains(cur) {
			return true
		}
		l, ok := s.locations[cur]
		if !ok || l.ParentID == nil {
			return false
		}
		cur = *l.ParentID
	}
	return false
}

func (s *Store) LocationsWithFlag(_ context.Context, flag core.LocationFlag) ([]core.LocationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpLocations); err != nil {
		return nil, err
	}
	if _, err := core.ParseLocationFlag(string(flag)); err != nil {
		return nil, err
	}

	var ids []core.LocationID
	for id, l := range s.locations {
		if l.IsActive && l.HasFlag(flag) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) Digits(_ context.Context, key string) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpPrecision); err != nil {
		return 0, err
	}
	if d, ok := s.digits[key]; ok {
		return d, nil
	}
	return s.defaultDigits, nil
}

func (s *Store) GetCompanies(_ context.Context) ([]core.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpCatalog); err != nil {
		return nil, err
	}
	return append([]core.Company(nil), s.companies...), nil
}

func (s *Store) GetProducts(_ context.Context, companyCode string) ([]core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpCatalog); err != nil {
		return nil, err
	}
	companyID, err := s.companyID(companyCode)
	if err != nil {
		return nil, err
	}

	var out []core.Product
	for _, p := range s.products {
		if p.CompanyID == companyID && p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) ResolveProducts(_ context.Context, companyCode string, codes []string) ([]core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpCatalog); err != nil {
		return nil, err
	}
	companyID, err := s.companyID(companyCode)
	if err != nil {
		return nil, err
	}

	out := make([]core.Product, 0, len(codes))
	for _, code := range codes {
		found := false
		for _, p := range s.products {
			if p.CompanyID == companyID && p.Code == code {
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s in company %s", core.ErrProductNotFound, code, companyCode)
		}
	}
	return out, nil
}

func (s *Store) GetLocations(_ context.Context, companyCode string) ([]core.StockLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpCatalog); err != nil {
		return nil, err
	}
	companyID, err := s.companyID(companyCode)
	if err != nil {
		return nil, err
	}

	var out []core.StockLocation
	for _, l := range s.locations {
		if l.CompanyID == companyID && l.IsActive {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) companyID(code string) (int, error) {
	for _, c := range s.companies {
		if c.CompanyCode == code {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("company code %s not found", code)
}
