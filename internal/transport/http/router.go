// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"feria/internal/identity"
	"feria/internal/platform/metrics"
	mw "feria/internal/platform/middleware"
)

// NewRouter wires the public endpoints behind the platform middleware chain
// and the identity gateway.
func NewRouter(h *Handler, gateway *identity.Gateway, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.Recovery(logger))
	r.Use(mw.RequestID)
	r.Use(mw.ClientMetadata)
	r.Use(mw.Logger(logger))
	r.Use(mw.Tracing)
	r.Use(mw.Latency(m))
	r.Use(mw.CORS)
	r.Use(mw.Timeout(30 * time.Second))
	r.Use(mw.ContentTypeJSON)

	r.Get("/", h.handleLiveness("Marketplace API is live!"))
	r.Get("/health", h.handleLiveness("API is running"))
	r.Handle("/metrics", promhttp.Handler())

	// Registration and profile reads only need a verified credential: the
	// register endpoint exists to create the record the gateway checks for,
	// and /users/me must 404 (never provision) for unknown subjects.
	r.Group(func(r chi.Router) {
		r.Use(gateway.RequireCredential)
		r.Post("/users", h.handleRegister)
		r.Get("/users/me", h.handleMe)
	})

	// Listings go through the full gateway: verification plus the
	// policy-driven existence reconciliation.
	r.Group(func(r chi.Router) {
		r.Use(gateway.RequireCredential)
		r.Use(gateway.EnsureRegistered)
		r.Post("/products", h.handleCreateListing)
	})

	return r
}
