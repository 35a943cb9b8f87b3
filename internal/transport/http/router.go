// Package httptransport assembles the HTTP surface: middleware stack, module
// routes, health and metrics endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	anchorhandler "healthanchor/internal/anchor/handler"
	healthpasshandler "healthanchor/internal/healthpass/handler"
	"healthanchor/internal/platform/metrics"
	"healthanchor/internal/platform/middleware"
	streakhandler "healthanchor/internal/streak/handler"
	"healthanchor/internal/transport/http/shared"
)

const requestTimeout = 15 * time.Second

// HealthChecker reports readiness of an optional backing resource.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps collects everything the router needs. Metrics may be nil in tests.
type Deps struct {
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
	IssuerJWTSecret string

	Anchors    anchorhandler.Service
	Streaks    streakhandler.Service
	HealthDeps []HealthChecker
}

// NewRouter wires all public endpoints behind the shared middleware stack.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Latency)
	}
	r.Use(middleware.IssuerIdentity(deps.IssuerJWTSecret, deps.Logger))

	anchorhandler.New(deps.Anchors, deps.Logger).Register(r)
	streakhandler.New(deps.Streaks, deps.Logger).Register(r)
	healthpasshandler.New(deps.Logger).Register(r)

	r.Get("/healthz", healthz(deps.HealthDeps))
	r.Handle("/metrics", metrics.Handler())

	return r
}

func healthz(checks []HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, c := range checks {
			if err := c.Health(r.Context()); err != nil {
				shared.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
				})
				return
			}
		}
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
