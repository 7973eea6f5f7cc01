// Package chi exposes the docdex server's HTTP surface: raw flat-document
// CRUD plus health and metrics endpoints.
package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/calder-search/docdex/internal/logger"
	"github.com/calder-search/docdex/internal/metrics"
)

// NewRouter builds the HTTP router around a document handler.
func NewRouter(h *Handler, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(metrics.Middleware())

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.Count)
		r.Put("/{id}", h.Upsert)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// requestLogger injects the logger into the request context and logs
// each request on completion.
func requestLogger(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := logger.ContextWithLogger(r.Context(), log)
			next.ServeHTTP(w, r.WithContext(ctx))
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
