package middleware

import "net/http"

// NewHTTPSRedirect redirects plain-HTTP requests to HTTPS. Behind a proxy the
// scheme is taken from X-Forwarded-Proto; requests without that header and
// without TLS are passed through so local development keeps working.
func NewHTTPSRedirect(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil && r.Header.Get("X-Forwarded-Proto") == "http" {
				target := "https://" + r.Host + r.URL.RequestURI()
				http.Redirect(w, r, target, http.StatusPermanentRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
