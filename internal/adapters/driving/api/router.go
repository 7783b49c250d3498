// Package api exposes the publish endpoint over HTTP.
//
// The same router is served by "newsroom serve" and wrapped for AWS Lambda
// by cmd/publish-lambda.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/newsroom/internal/core/ports/driving"
	"github.com/custodia-labs/newsroom/internal/metrics"
)

// Route paths.
const (
	PublishPath = "/api/publish"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"
)

// NewRouter builds the HTTP router. collector may be nil, in which case
// requests are not measured and /metrics is not mounted.
func NewRouter(publisher driving.Publisher, collector *metrics.Collector) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	if collector != nil {
		router.Use(measure(collector))
	}

	h := &publishHandler{publisher: publisher}

	// Registered for every method so non-POST requests get a JSON 405.
	router.HandleFunc(PublishPath, h.ServeHTTP)
	router.Get(HealthPath, healthz)
	if collector != nil {
		router.Method(http.MethodGet, MetricsPath, collector.Handler())
	}

	return router
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// measure records the status and duration of every request by route pattern.
func measure(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			collector.RecordHTTPRequest(r.Method, route, status, time.Since(start))
		})
	}
}
