package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"interactive-calculator/internal/calculator"
	"interactive-calculator/internal/handlers"
	"interactive-calculator/internal/observability"
)

// StatusProvider exposes the live counters of a calculator session.
type StatusProvider interface {
	Status() calculator.Status
}

// NewRouter builds the status server's routes. status may be nil, in which
// case /status reports that no session is active.
func NewRouter(status StatusProvider) http.Handler {
	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)
	r.Get("/status", statusHandler(status))

	r.Handle("/metrics", observability.PrometheusHandler())

	return r
}

func statusHandler(status StatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if status == nil {
			handlers.WriteError(w, http.StatusServiceUnavailable, "no active session")
			return
		}
		handlers.WriteJSON(w, http.StatusOK, status.Status())
	}
}
