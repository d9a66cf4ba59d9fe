package analyticshttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers the management report endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Route("/reports", func(r chi.Router) {
		r.Get("/dashboard", h.handleDashboard)
		r.Get("/eight-column", h.handleEightColumn)
		r.Get("/ar-aging", func(w http.ResponseWriter, req *http.Request) { h.handleAging(w, req, "ar") })
		r.Get("/ap-aging", func(w http.ResponseWriter, req *http.Request) { h.handleAging(w, req, "ap") })
		r.Group(func(gr chi.Router) {
			gr.Use(limiter)
			gr.Get("/export.csv", h.handleCSV)
		})
	})
}
