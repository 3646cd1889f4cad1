/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/salespeople/*   Salesperson management + invoices
  /api/commissions/*   Commission entries, status toggles, receipts, import
  /api/settings        Rappel tier ladder and calculation method
  /api/dashboard       Per-salesperson aggregation view
  /api/admin/*         Explicit recompute and data reset

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/salespeople", func(r chi.Router) {
			r.Get("/", h.ListSalespeople)
			r.Post("/", h.CreateSalesperson)
			r.Get("/{id}", h.GetSalesperson)
			r.Put("/{id}", h.UpdateSalesperson)
			r.Delete("/{id}", h.DeleteSalesperson)
			r.Get("/{id}/invoice", h.GetInvoice)
		})

		r.Route("/commissions", func(r chi.Router) {
			r.Get("/", h.ListCommissions)
			r.Post("/", h.CreateCommission)
			r.Post("/import", h.ImportCommissions)
			r.Post("/{id}/status", h.SetPaymentStatus)
			r.Get("/{id}/receipt", h.GetReceipt)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.SaveSettings)
		})

		r.Get("/dashboard", h.GetDashboard)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/recompute", h.TriggerRecompute)
			r.Post("/reset", h.ResetData)
		})
	})

	return r
}
