package web

import (
	"net/http"
	"strings"

	"stock-available/internal/app"
	"stock-available/internal/core"

	"github.com/go-chi/chi/v5"
)

// apiListFields handles GET /api/fields.
func (h *Handler) apiListFields(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.DescribeFields(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Fields)
}

// apiFieldSchema handles GET /api/fields/schema.
func (h *Handler) apiFieldSchema(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.QuantitySchema()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(result.Schema)
}

// apiListProducts handles GET /api/companies/{code}/products.
func (h *Handler) apiListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context(), companyCode(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Products)
}

// apiListLocations handles GET /api/companies/{code}/locations?flag=dock.
func (h *Handler) apiListLocations(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListLocations(r.Context(), companyCode(r), r.URL.Query().Get("flag"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiQuantities handles GET /api/companies/{code}/quantities?products=A,B&fields=dock_qty.
func (h *Handler) apiQuantities(w http.ResponseWriter, r *http.Request) {
	fields, err := core.ParseFields(r.URL.Query().Get("fields"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	result, err := h.svc.GetProductQuantities(r.Context(), app.QuantityRequest{
		CompanyCode:  companyCode(r),
		ProductCodes: splitAndTrim(r.URL.Query().Get("products")),
		Fields:       fields,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiProductQuantities handles GET /api/companies/{code}/products/{productCode}/quantities.
func (h *Handler) apiProductQuantities(w http.ResponseWriter, r *http.Request) {
	productCode := strings.TrimSpace(chi.URLParam(r, "productCode"))
	result, err := h.svc.GetProductQuantities(r.Context(), app.QuantityRequest{
		CompanyCode:  companyCode(r),
		ProductCodes: []string{productCode},
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Rows[0])
}
