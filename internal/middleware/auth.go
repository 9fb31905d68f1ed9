package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Authenticator reports whether a request carries a valid admin session.
type Authenticator interface {
	Authenticated(r *http.Request) bool
}

// RequireSession rejects requests without a valid session with 401 and a JSON
// error body.
func RequireSession(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.Authenticated(r) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				if err := json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"}); err != nil {
					slog.WarnContext(r.Context(), "Failed to write JSON response", "error", err)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
