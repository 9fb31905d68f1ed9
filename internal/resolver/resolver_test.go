package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/pauljones0/promo-campaigns/internal/models"
)

type mockLookup struct {
	byID      map[string]models.Campaign
	getErr    error
	queryErr  error
	getCalls  []string
	tokenCall []string
}

func (m *mockLookup) Get(_ context.Context, id string) (*models.Campaign, error) {
	m.getCalls = append(m.getCalls, id)
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *mockLookup) QueryByToken(_ context.Context, token string) (*models.Campaign, error) {
	m.tokenCall = append(m.tokenCall, token)
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	for _, c := range m.byID {
		if c.Token == token {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func newLookup() *mockLookup {
	return &mockLookup{byID: map[string]models.Campaign{
		"acme":    {ID: "acme", CompanyName: "Acme", Token: "tok-acme"},
		"notoken": {ID: "notoken", CompanyName: "No Token"},
	}}
}

func TestByToken(t *testing.T) {
	r := New(newLookup(), "berealmediagroup.com")

	c, err := r.ByToken(context.Background(), "tok-acme")
	if err != nil {
		t.Fatalf("ByToken() error: %v", err)
	}
	if c.ID != "acme" {
		t.Errorf("ByToken() = %+v, want acme", c)
	}
}

func TestByToken_NotFound(t *testing.T) {
	lookup := newLookup()
	r := New(lookup, "berealmediagroup.com")

	for _, token := range []string{"no-such-token", ""} {
		c, err := r.ByToken(context.Background(), token)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("ByToken(%q) error = %v, want ErrNotFound", token, err)
		}
		if c != nil {
			t.Errorf("ByToken(%q) returned %+v, want nil", token, c)
		}
	}
}

func TestByToken_IDIsNotAToken(t *testing.T) {
	r := New(newLookup(), "berealmediagroup.com")

	if _, err := r.ByToken(context.Background(), "acme"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("ByToken(id) error = %v, want ErrNotFound", err)
	}
}

func TestByToken_StoreError(t *testing.T) {
	lookup := newLookup()
	lookup.queryErr = errors.New("unavailable")
	r := New(lookup, "berealmediagroup.com")

	_, err := r.ByToken(context.Background(), "tok-acme")
	if err == nil || errors.Is(err, models.ErrNotFound) {
		t.Errorf("ByToken() error = %v, want internal error", err)
	}
}

func TestByHost(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		wantOutcome  Outcome
		wantLocation string
		wantLookupID string
	}{
		{name: "Tenant with token redirects", host: "acme.berealmediagroup.com", wantOutcome: Redirect, wantLocation: "/promo/tok-acme", wantLookupID: "acme"},
		{name: "Port and case ignored", host: "ACME.berealmediagroup.com:443", wantOutcome: Redirect, wantLocation: "/promo/tok-acme", wantLookupID: "acme"},
		{name: "Tenant without token falls through", host: "notoken.berealmediagroup.com", wantOutcome: FallThrough, wantLookupID: "notoken"},
		{name: "Unknown tenant falls through", host: "ghost.berealmediagroup.com", wantOutcome: FallThrough, wantLookupID: "ghost"},
		{name: "www falls through", host: "www.berealmediagroup.com", wantOutcome: FallThrough},
		{name: "Apex falls through", host: "berealmediagroup.com", wantOutcome: FallThrough},
		{name: "Foreign domain falls through", host: "acme.example.com", wantOutcome: FallThrough},
		{name: "Empty host falls through", host: "", wantOutcome: FallThrough},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := newLookup()
			r := New(lookup, "berealmediagroup.com")

			res := r.ByHost(context.Background(), tt.host)
			if res.Outcome != tt.wantOutcome {
				t.Errorf("Outcome = %s, want %s", res.Outcome, tt.wantOutcome)
			}
			if res.Location != tt.wantLocation {
				t.Errorf("Location = %q, want %q", res.Location, tt.wantLocation)
			}
			if tt.wantLookupID == "" && len(lookup.getCalls) != 0 {
				t.Errorf("unexpected lookups %v", lookup.getCalls)
			}
			if tt.wantLookupID != "" && (len(lookup.getCalls) != 1 || lookup.getCalls[0] != tt.wantLookupID) {
				t.Errorf("lookups = %v, want [%s]", lookup.getCalls, tt.wantLookupID)
			}
			if len(lookup.tokenCall) != 0 {
				t.Errorf("host resolution must look up by id, not token; got token lookups %v", lookup.tokenCall)
			}
		})
	}
}

func TestByHost_StoreErrorFallsThrough(t *testing.T) {
	lookup := newLookup()
	lookup.getErr = errors.New("unavailable")
	r := New(lookup, "berealmediagroup.com")

	if res := r.ByHost(context.Background(), "acme.berealmediagroup.com"); res.Outcome != FallThrough {
		t.Errorf("Outcome = %s, want fall_through", res.Outcome)
	}
}

func TestPromoPath(t *testing.T) {
	if got := PromoPath("abc123"); got != "/promo/abc123" {
		t.Errorf("PromoPath() = %q", got)
	}
	if got := PromoPath("a/b"); got != "/promo/a%2Fb" {
		t.Errorf("PromoPath() = %q, want escaped slash", got)
	}
}
