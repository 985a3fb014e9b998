package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// StockService is the PostgreSQL-backed inventory platform: quantities,
// flagged locations, precision settings and the product catalog.
type StockService interface {
	StockSource
	LocationSource
	PrecisionSource
	ProductCatalog
}

type stockService struct {
	pool          *pgxpool.Pool
	defaultDigits int32
}

// NewStockService constructs a StockService. defaultDigits applies to precision
// keys missing from decimal_precisions.
func NewStockService(pool *pgxpool.Pool, defaultDigits int32) StockService {
	return &stockService{pool: pool, defaultDigits: defaultDigits}
}

func (s *stockService) ForecastedQuantities(ctx context.Context, products []ProductID) (Values, error) {
	out := zeroValues(products)
	if len(products) == 0 {
		return out, nil
	}
	ids := productIDArgs(products)

	rows, err := s.pool.Query(ctx, `
		SELECT q.product_id, SUM(q.quantity)
		FROM stock_quants q
		JOIN stock_locations l ON l.id = q.location_id
		WHERE q.product_id = ANY($1) AND l.is_internal = true
		GROUP BY q.product_id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query on-hand stock: %w", err)
	}
	if err := addRows(rows, out); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx, `
		SELECT product_id,
		       SUM(CASE WHEN direction = 'IN' THEN quantity ELSE -quantity END)
		FROM stock_moves
		WHERE product_id = ANY($1) AND state = 'PENDING'
		GROUP BY product_id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending moves: %w", err)
	}
	if err := addRows(rows, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *stockService) OnHandQuantities(ctx context.Context, products []ProductID, filter LocationFilter) (Values, error) {
	out := zeroValues(products)
	if len(products) == 0 || filter.IsEmpty() {
		return out, nil
	}
	ids := productIDArgs(products)

	var (
		rows pgx.Rows
		err  error
	)
	if filter.IsAll() {
		rows, err = s.pool.Query(ctx, `
			SELECT q.product_id, SUM(q.quantity)
			FROM stock_quants q
			JOIN stock_locations l ON l.id = q.location_id
			WHERE q.product_id = ANY($1) AND l.is_internal = true
			GROUP BY q.product_id
		`, ids)
	} else {
		locs := make([]int, 0, len(filter.ids))
		for _, id := range filter.IDs() {
			locs = append(locs, int(id))
		}
		rows, err = s.pool.Query(ctx, `
			WITH RECURSIVE scope AS (
				SELECT id FROM stock_locations WHERE id = ANY($2)
				UNION
				SELECT l.id FROM stock_locations l JOIN scope ON l.parent_id = scope.id
			)
			SELECT q.product_id, SUM(q.quantity)
			FROM stock_quants q
			WHERE q.product_id = ANY($1)
			  AND q.location_id IN (SELECT id FROM scope)
			GROUP BY q.product_id
		`, ids, locs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query on-hand stock at %s: %w", filter, err)
	}
	if err := addRows(rows, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *stockService) LocationsWithFlag(ctx context.Context, flag LocationFlag) ([]LocationID, error) {
	col, err := flag.column()
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx,
		"SELECT id FROM stock_locations WHERE "+col+" = true AND is_active = true ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s locations: %w", flag, err)
	}
	defer rows.Close()

	var ids []LocationID
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan location id: %w", err)
		}
		ids = append(ids, LocationID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s locations: %w", flag, err)
	}
	return ids, nil
}

func (s *stockService) Digits(ctx context.Context, key string) (int32, error) {
	var digits int32
	err := s.pool.QueryRow(ctx, "SELECT digits FROM decimal_precisions WHERE name = $1", key).Scan(&digits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.defaultDigits, nil
		}
		return 0, fmt.Errorf("failed to query decimal precision %q: %w", key, err)
	}
	return digits, nil
}

func (s *stockService) GetCompanies(ctx context.Context) ([]Company, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, company_code, name FROM companies ORDER BY company_code")
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.CompanyCode, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (s *stockService) GetProducts(ctx context.Context, companyCode string) ([]Product, error) {
	companyID, err := s.resolveCompanyID(ctx, companyCode)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, code, name, unit, is_active, created_at
		FROM products
		WHERE company_id = $1 AND is_active = true
		ORDER BY code
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *stockService) ResolveProducts(ctx context.Context, companyCode string, codes []string) ([]Product, error) {
	companyID, err := s.resolveCompanyID(ctx, companyCode)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, code, name, unit, is_active, created_at
		FROM products
		WHERE company_id = $1 AND code = ANY($2)
	`, companyID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	byCode := make(map[string]Product, len(codes))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		byCode[p.Code] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	out := make([]Product, 0, len(codes))
	for _, code := range codes {
		p, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("%w: %s in company %s", ErrProductNotFound, code, companyCode)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stockService) GetLocations(ctx context.Context, companyCode string) ([]StockLocation, error) {
	companyID, err := s.resolveCompanyID(ctx, companyCode)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, parent_id, code, name,
		       is_internal, is_processing, is_dock, is_return, is_active
		FROM stock_locations
		WHERE company_id = $1 AND is_active = true
		ORDER BY code
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []StockLocation
	for rows.Next() {
		var l StockLocation
		var parent *int
		if err := rows.Scan(&l.ID, &l.CompanyID, &parent, &l.Code, &l.Name,
			&l.IsInternal, &l.IsProcessing, &l.IsDock, &l.IsReturn, &l.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		if parent != nil {
			pid := LocationID(*parent)
			l.ParentID = &pid
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (s *stockService) resolveCompanyID(ctx context.Context, companyCode string) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx, "SELECT id FROM companies WHERE company_code = $1", companyCode).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("company code %s not found", companyCode)
		}
		return 0, fmt.Errorf("failed to resolve company %s: %w", companyCode, err)
	}
	return id, nil
}

func scanProduct(rows pgx.Rows) (Product, error) {
	var p Product
	var id int
	if err := rows.Scan(&id, &p.CompanyID, &p.Code, &p.Name, &p.Unit, &p.IsActive, &p.CreatedAt); err != nil {
		return Product{}, fmt.Errorf("failed to scan product: %w", err)
	}
	p.ID = ProductID(id)
	return p, nil
}

// addRows accumulates (product_id, quantity) rows into out and closes rows.
func addRows(rows pgx.Rows, out Values) error {
	defer rows.Close()
	for rows.Next() {
		var id int
		var qty decimal.Decimal
		if err := rows.Scan(&id, &qty); err != nil {
			return fmt.Errorf("failed to scan quantity row: %w", err)
		}
		pid := ProductID(id)
		out[pid] = out[pid].Add(qty)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating quantity rows: %w", err)
	}
	return nil
}

func productIDArgs(products []ProductID) []int {
	ids := make([]int, len(products))
	for i, id := range products {
		ids[i] = int(id)
	}
	return ids
}
