// Package handler implements the HTTP surface of the promo campaign service:
// the admin JSON API, the admin session routes and the public promo pages.
// Handlers are methods on Server and are split by area (campaign.go,
// public.go, session.go, health.go).
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/pauljones0/promo-campaigns/internal/models"
	"github.com/pauljones0/promo-campaigns/internal/resolver"
)

// CampaignServicer is the campaign lifecycle the admin API depends on.
type CampaignServicer interface {
	Create(ctx context.Context, in models.CampaignInput) (string, error)
	List(ctx context.Context) ([]models.Campaign, error)
	Update(ctx context.Context, id string, patch models.CampaignPatch) error
	Delete(ctx context.Context, id string) error
}

// PromoResolver maps public requests to campaigns.
type PromoResolver interface {
	ByToken(ctx context.Context, token string) (*models.Campaign, error)
	ByHost(ctx context.Context, host string) resolver.Resolution
}

// PageRenderer writes the public HTML pages.
type PageRenderer interface {
	Promo(w http.ResponseWriter, campaign models.Campaign)
	NotFound(w http.ResponseWriter)
	Placeholder(w http.ResponseWriter)
	Error(w http.ResponseWriter, status int)
}

// SessionManager signs admins in and out.
type SessionManager interface {
	Enabled() bool
	CheckPassword(password string) bool
	Issue() (string, time.Time, error)
	Authenticated(r *http.Request) bool
	SetCookie(w http.ResponseWriter, r *http.Request, token string, expires time.Time)
	ClearCookie(w http.ResponseWriter, r *http.Request)
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	campaigns CampaignServicer
	resolver  PromoResolver
	pages     PageRenderer
	sessions  SessionManager
}

func NewServer(campaigns CampaignServicer, resolver PromoResolver, pages PageRenderer, sessions SessionManager) *Server {
	return &Server{
		campaigns: campaigns,
		resolver:  resolver,
		pages:     pages,
		sessions:  sessions,
	}
}
