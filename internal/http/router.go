// Package httpapi assembles the public router. Handlers stay thin and
// delegate to domain services; transport concerns live here and in the
// platform middleware.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	catalogHandler "coursehub/internal/catalog/handler"
	enrollHandler "coursehub/internal/enrollment/handler"
	"coursehub/internal/platform/metrics"
	"coursehub/internal/platform/middleware"
)

// NewRouter wires all public endpoints behind the shared middleware chain.
// Static routes (e.g. /enroll) win over the parameterized legacy routes
// (e.g. /{ownerId}/enroll) under chi's routing rules, which keeps both
// surfaces mountable at the root the way the original API laid them out.
func NewRouter(
	catalog *catalogHandler.Handler,
	enrollment *enrollHandler.Handler,
	m *metrics.Metrics,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	catalog.Register(r)
	enrollment.Register(r)

	return r
}
