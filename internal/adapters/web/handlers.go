package web

import (
	"net/http"

	"stock-available/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// ── Field declarations ───────────────────────────────────────────────────
	r.Get("/api/fields", h.apiListFields)
	r.Get("/api/fields/schema", h.apiFieldSchema)

	// ── Company scoped ───────────────────────────────────────────────────────
	r.Route("/api/companies/{code}", func(r chi.Router) {
		r.Get("/products", h.apiListProducts)
		r.Get("/products/{productCode}/quantities", h.apiProductQuantities)
		r.Get("/locations", h.apiListLocations)
		r.Get("/quantities", h.apiQuantities)
	})

	h.router = r
	return r
}

// health returns service status and the loaded company code.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	company, err := h.svc.LoadDefaultCompany(r.Context())
	companyCode := ""
	if err == nil && company != nil {
		companyCode = company.CompanyCode
	}

	type response struct {
		Status  string `json:"status"`
		Company string `json:"company"`
	}

	writeJSON(w, response{Status: "ok", Company: companyCode})
}

// companyCode extracts the {code} URL parameter.
func companyCode(r *http.Request) string {
	return chi.URLParam(r, "code")
}
