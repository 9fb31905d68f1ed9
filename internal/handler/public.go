package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pauljones0/promo-campaigns/internal/models"
	"github.com/pauljones0/promo-campaigns/internal/resolver"
)

// Root handles GET /. A tenant subdomain with a known campaign is redirected
// to its promo page; everything else gets the placeholder.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	res := s.resolver.ByHost(r.Context(), r.Host)
	if res.Outcome == resolver.Redirect {
		http.Redirect(w, r, res.Location, http.StatusTemporaryRedirect)
		return
	}
	s.pages.Placeholder(w)
}

// Promo handles GET /promo/{token}.
func (s *Server) Promo(w http.ResponseWriter, r *http.Request) {
	campaign, err := s.resolver.ByToken(r.Context(), chi.URLParam(r, "token"))
	switch {
	case errors.Is(err, models.ErrNotFound):
		s.pages.NotFound(w)
	case err != nil:
		slog.ErrorContext(r.Context(), "Failed to resolve promo token", "error", err)
		s.pages.Error(w, http.StatusInternalServerError)
	default:
		s.pages.Promo(w, *campaign)
	}
}
