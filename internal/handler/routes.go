package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pauljones0/promo-campaigns/internal/middleware"
)

// RouterOptions configures the middleware stack around the handlers.
type RouterOptions struct {
	Logger       *slog.Logger
	ForceHTTPS   bool
	CORSOrigins  []string
	MaxBodyBytes int64
	// PromoLimiter throttles /promo/{token} per client. Nil disables it.
	PromoLimiter *middleware.ClientRateLimiter
}

// Routes builds the chi router.
//
// Middleware order: ConnAddr, RequestID, RealIP, access log, Recoverer, HTTPS
// redirect. ConnAddr runs before RealIP so the promo limiter keys on the
// connection rather than on forwarding headers.
// The admin API additionally gets CORS, a body size limit and, when sign-in is
// enabled, the session guard.
func (s *Server) Routes(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.ConnAddr)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewHTTPSRedirect(opts.ForceHTTPS))

	r.Get("/health", s.Health)
	r.Get("/", s.Root)
	r.Group(func(r chi.Router) {
		if opts.PromoLimiter != nil {
			r.Use(opts.PromoLimiter.Middleware)
		}
		r.Get("/promo/{token}", s.Promo)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewCORSHandler(opts.CORSOrigins))
		if opts.MaxBodyBytes > 0 {
			r.Use(middleware.NewMaxBodySizeHandler(opts.MaxBodyBytes))
		}

		r.Get("/session", s.GetSession)
		r.Post("/session", s.CreateSession)
		r.Delete("/session", s.DeleteSession)

		r.Route("/campaign", func(r chi.Router) {
			if s.sessions.Enabled() {
				r.Use(middleware.RequireSession(s.sessions))
			}
			r.Post("/", s.CreateCampaign)
			r.Get("/", s.ListCampaigns)
			r.Patch("/{id}", s.UpdateCampaign)
			r.Delete("/{id}", s.DeleteCampaign)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.pages.NotFound(w)
	})

	return r
}
