// Package resolver maps public requests to campaigns: a promo-link token is
// looked up by token, and a tenant subdomain is looked up by campaign ID and
// answered with a redirect to that campaign's promo link.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/pauljones0/promo-campaigns/internal/models"
	"github.com/pauljones0/promo-campaigns/internal/util"
)

// CampaignLookup is the read side of the campaign store.
type CampaignLookup interface {
	Get(ctx context.Context, id string) (*models.Campaign, error)
	QueryByToken(ctx context.Context, token string) (*models.Campaign, error)
}

// Outcome is the terminal state of a public request.
type Outcome int

const (
	FallThrough Outcome = iota
	Redirect
	Render
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	case NotFound:
		return "not_found"
	default:
		return "fall_through"
	}
}

// Resolution is the result of resolving a request by host.
type Resolution struct {
	Outcome  Outcome
	Location string // set when Outcome is Redirect
}

type Resolver struct {
	lookup     CampaignLookup
	baseDomain string
}

// New returns a Resolver for tenant subdomains of baseDomain.
func New(lookup CampaignLookup, baseDomain string) *Resolver {
	base, err := util.NormalizeHost(baseDomain)
	if err != nil {
		slog.Warn("Invalid base domain, host resolution disabled", "base_domain", baseDomain, "error", err)
		base = ""
	}
	return &Resolver{lookup: lookup, baseDomain: base}
}

// PromoPath returns the public path of the promo page for token.
func PromoPath(token string) string {
	return "/promo/" + url.PathEscape(token)
}

// ByToken returns the campaign addressed by a promo-link token. It returns
// models.ErrNotFound when no campaign carries the token.
func (r *Resolver) ByToken(ctx context.Context, token string) (*models.Campaign, error) {
	if token == "" {
		return nil, models.ErrNotFound
	}
	campaign, err := r.lookup.QueryByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	if campaign == nil {
		return nil, models.ErrNotFound
	}
	return campaign, nil
}

// ByHost resolves the root route. A tenant subdomain whose campaign exists and
// has a token redirects to the promo page; every other host falls through.
// Lookup failures are logged and fall through as well.
func (r *Resolver) ByHost(ctx context.Context, host string) Resolution {
	normalized, err := util.NormalizeHost(host)
	if err != nil {
		slog.Debug("Unparseable host, falling through", "host", host, "error", err)
		return Resolution{Outcome: FallThrough}
	}
	label, ok := util.TenantLabel(normalized, r.baseDomain)
	if !ok {
		return Resolution{Outcome: FallThrough}
	}

	campaign, err := r.lookup.Get(ctx, label)
	if err != nil {
		slog.Error("Failed to look up tenant campaign", "id", label, "error", err)
		return Resolution{Outcome: FallThrough}
	}
	if campaign == nil || campaign.Token == "" {
		return Resolution{Outcome: FallThrough}
	}
	return Resolution{Outcome: Redirect, Location: PromoPath(campaign.Token)}
}
