package handler

import (
	"log/slog"
	"net/http"
)

type sessionResponse struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}

type signInRequest struct {
	Password string `json:"password"`
}

// GetSession handles GET /api/session.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{IsAuthenticated: s.sessions.Authenticated(r)})
}

// CreateSession handles POST /api/session. A correct password sets the
// session cookie.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Enabled() {
		writeJSON(w, http.StatusOK, sessionResponse{IsAuthenticated: true})
		return
	}

	var req signInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.sessions.CheckPassword(req.Password) {
		slog.WarnContext(r.Context(), "Rejected admin sign-in")
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid password"})
		return
	}

	token, expires, err := s.sessions.Issue()
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.sessions.SetCookie(w, r, token, expires)
	writeJSON(w, http.StatusOK, sessionResponse{IsAuthenticated: true})
}

// DeleteSession handles DELETE /api/session.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearCookie(w, r)
	writeJSON(w, http.StatusOK, sessionResponse{IsAuthenticated: false})
}
