// restore-seed is a one-shot tool that (re)creates the demo company: a small
// warehouse with processing, dock and return locations plus stock for three
// products. Existing demo stock is replaced.
//
// Usage: go run ./cmd/restore-seed
package main

import (
	"context"
	"log"

	"stock-available/internal/config"
	"stock-available/internal/db"
	"stock-available/internal/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	code := memory.DemoCompanyCode

	steps := []struct {
		msg  string
		sql  string
		fail string
	}{
		{"Restoring company...", `
			INSERT INTO companies (company_code, name)
			VALUES ($1, 'Demo Company')
			ON CONFLICT (company_code) DO UPDATE SET name = EXCLUDED.name`, "Failed to restore company: %v"},
		{"Clearing demo stock...", `
			DELETE FROM stock_moves WHERE product_id IN (
			SELECT p.id FROM products p JOIN companies c ON c.id = p.company_id WHERE c.company_code = $1
			)`, "Failed to clear demo stock: %v"},
		{"", `
			DELETE FROM stock_quants WHERE product_id IN (
			SELECT p.id FROM products p JOIN companies c ON c.id = p.company_id WHERE c.company_code = $1
			)`, "Failed to clear demo stock: %v"},
		{"Restoring locations...", `
			INSERT INTO stock_locations (company_id, code, name, is_internal, is_processing, is_dock, is_return)
			SELECT c.id, l.code, l.name, l.is_internal, l.is_processing, l.is_dock, l.is_return
			FROM companies c
			CROSS JOIN (VALUES
			('WH/Stock',           'Stock',      true,  false, false, false),
			('WH/Dock',            'Dock',       true,  false, true,  false),
			('WH/Processing',      'Processing', true,  true,  false, false),
			('WH/Returns',         'Returns',    true,  false, false, true),
			('Partners/Customers', 'Customers',  false, false, false, false)
			) AS l(code, name, is_internal, is_processing, is_dock, is_return)
			WHERE c.company_code = $1
			ON CONFLICT (company_id, code) DO UPDATE
			SET name = EXCLUDED.name,
			is_internal = EXCLUDED.is_internal,
			is_processing = EXCLUDED.is_processing,
			is_dock = EXCLUDED.is_dock,
			is_return = EXCLUDED.is_return,
			is_active = true`, "Failed to restore locations: %v"},
		{"", `
			INSERT INTO stock_locations (company_id, parent_id, code, name)
			SELECT c.id, d.id, 'WH/Dock/Bay-1', 'Bay 1'
			FROM companies c
			JOIN stock_locations d ON d.company_id = c.id AND d.code = 'WH/Dock'
			WHERE c.company_code = $1
			ON CONFLICT (company_id, code) DO UPDATE SET parent_id = EXCLUDED.parent_id, is_active = true`, "Failed to restore locations: %v"},
		{"Restoring products...", `
			INSERT INTO products (company_id, code, name)
			SELECT c.id, p.code, p.name
			FROM companies c
			CROSS JOIN (VALUES ('P001', 'Widget A'), ('P002', 'Widget B'), ('P003', 'Widget C')) AS p(code, name)
			WHERE c.company_code = $1
			ON CONFLICT (company_id, code) DO UPDATE SET name = EXCLUDED.name, is_active = true`, "Failed to restore products: %v"},
		{"Restoring stock...", `
			INSERT INTO stock_quants (product_id, location_id, quantity)
			SELECT p.id, l.id, q.quantity
			FROM companies c
			CROSS JOIN (VALUES
			('P001', 'WH/Stock',           100),
			('P001', 'WH/Dock',            10),
			('P001', 'WH/Dock/Bay-1',      5),
			('P001', 'WH/Processing',      7),
			('P001', 'WH/Returns',         3),
			('P001', 'Partners/Customers', 50),
			('P002', 'WH/Stock',           20.5),
			('P002', 'WH/Returns',         2)
			) AS q(product, location, quantity)
			JOIN products p ON p.company_id = c.id AND p.code = q.product
			JOIN stock_locations l ON l.company_id = c.id AND l.code = q.location
			WHERE c.company_code = $1`, "Failed to restore stock: %v"},
		{"", `
			INSERT INTO stock_moves (product_id, location_id, direction, quantity)
			SELECT p.id, l.id, m.direction, m.quantity
			FROM companies c
			CROSS JOIN (VALUES ('IN', 30), ('OUT', 12)) AS m(direction, quantity)
			JOIN products p ON p.company_id = c.id AND p.code = 'P001'
			JOIN stock_locations l ON l.company_id = c.id AND l.code = 'WH/Stock'
			WHERE c.company_code = $1`, "Failed to restore stock: %v"},
	}
	for _, step := range steps {
		if step.msg != "" {
			log.Println(step.msg)
		}
		if _, err := tx.Exec(ctx, step.sql, code); err != nil {
			log.Fatalf(step.fail, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed data restored successfully.")
}
