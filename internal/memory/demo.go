package memory

import (
	"stock-available/internal/core"

	"github.com/shopspring/decimal"
)

// DemoCompanyCode is the company seeded by NewDemoStore.
const DemoCompanyCode = "1000"

// NewDemoStore returns a store holding one company with a small warehouse:
//
//	WH/Stock            internal
//	WH/Dock             internal, dock
//	WH/Dock/Bay-1       internal, child of WH/Dock
//	WH/Processing       internal, processing
//	WH/Returns          internal, return
//	Partners/Customers  not internal
//
// P001 holds 100 in stock, 10 on the dock, 5 in Bay-1, 7 in processing, 3 in
// returns and 50 at the customer location, with 30 incoming and 12 outgoing.
// P002 holds 20.5 in stock and 2 in returns. P003 holds nothing.
func NewDemoStore() *Store {
	s := NewStore()
	company := s.AddCompany(DemoCompanyCode, "Demo Company")

	stock := s.AddLocation(core.StockLocation{CompanyID: company, Code: "WH/Stock", Name: "Stock", IsInternal: true, IsActive: true})
	dock := s.AddLocation(core.StockLocation{CompanyID: company, Code: "WH/Dock", Name: "Dock", IsInternal: true, IsDock: true, IsActive: true})
	bay := s.AddLocation(core.StockLocation{CompanyID: company, ParentID: &dock, Code: "WH/Dock/Bay-1", Name: "Bay 1", IsInternal: true, IsActive: true})
	processing := s.AddLocation(core.StockLocation{CompanyID: company, Code: "WH/Processing", Name: "Processing", IsInternal: true, IsProcessing: true, IsActive: true})
	returns := s.AddLocation(core.StockLocation{CompanyID: company, Code: "WH/Returns", Name: "Returns", IsInternal: true, IsReturn: true, IsActive: true})
	customers := s.AddLocation(core.StockLocation{CompanyID: company, Code: "Partners/Customers", Name: "Customers", IsActive: true})

	p1 := s.AddProduct(company, "P001", "Widget A")
	p2 := s.AddProduct(company, "P002", "Widget B")
	s.AddProduct(company, "P003", "Widget C")

	s.SetQuant(p1, stock, decimal.NewFromInt(100))
	s.SetQuant(p1, dock, decimal.NewFromInt(10))
	s.SetQuant(p1, bay, decimal.NewFromInt(5))
	s.SetQuant(p1, processing, decimal.NewFromInt(7))
	s.SetQuant(p1, returns, decimal.NewFromInt(3))
	s.SetQuant(p1, customers, decimal.NewFromInt(50))
	s.AddPendingMove(p1, Incoming, decimal.NewFromInt(30))
	s.AddPendingMove(p1, Outgoing, decimal.NewFromInt(12))

	s.SetQuant(p2, stock, decimal.RequireFromString("20.5"))
	s.SetQuant(p2, returns, decimal.NewFromInt(2))

	s.SetDigits(core.PrecisionProductUoM, 3)
	return s
}
