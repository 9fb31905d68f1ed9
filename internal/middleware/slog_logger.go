// Package middleware provides HTTP middleware for the promo campaign server.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewSlogLogger returns a middleware that logs each request through log as a
// structured line with method, path, status, duration and the request ID set
// by chi's RequestID middleware. Wire it after chimiddleware.RequestID.
//
// Paths under /promo/ carry a secret token, so only the route prefix is logged
// for them.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", redactPath(r.URL.Path),
				"host", r.Host,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}

func redactPath(path string) string {
	const promoPrefix = "/promo/"
	if len(path) > len(promoPrefix) && strings.HasPrefix(path, promoPrefix) {
		return promoPrefix + ":token"
	}
	return path
}
