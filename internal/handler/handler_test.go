package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pauljones0/promo-campaigns/internal/handler"
	"github.com/pauljones0/promo-campaigns/internal/models"
	"github.com/pauljones0/promo-campaigns/internal/render"
	"github.com/pauljones0/promo-campaigns/internal/resolver"
	"github.com/pauljones0/promo-campaigns/internal/session"
)

// mockCampaignServicer is a test double for handler.CampaignServicer.
// Set only the method fields your test needs.
type mockCampaignServicer struct {
	create func(ctx context.Context, in models.CampaignInput) (string, error)
	list   func(ctx context.Context) ([]models.Campaign, error)
	update func(ctx context.Context, id string, patch models.CampaignPatch) error
	delete func(ctx context.Context, id string) error
}

func (m *mockCampaignServicer) Create(ctx context.Context, in models.CampaignInput) (string, error) {
	return m.create(ctx, in)
}
func (m *mockCampaignServicer) List(ctx context.Context) ([]models.Campaign, error) {
	return m.list(ctx)
}
func (m *mockCampaignServicer) Update(ctx context.Context, id string, patch models.CampaignPatch) error {
	return m.update(ctx, id, patch)
}
func (m *mockCampaignServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

type mockResolver struct {
	byToken func(ctx context.Context, token string) (*models.Campaign, error)
	byHost  func(ctx context.Context, host string) resolver.Resolution
}

func (m *mockResolver) ByToken(ctx context.Context, token string) (*models.Campaign, error) {
	return m.byToken(ctx, token)
}
func (m *mockResolver) ByHost(ctx context.Context, host string) resolver.Resolution {
	return m.byHost(ctx, host)
}

var (
	_ handler.CampaignServicer = (*mockCampaignServicer)(nil)
	_ handler.PromoResolver    = (*mockResolver)(nil)
	_ handler.PageRenderer     = (*render.Renderer)(nil)
	_ handler.SessionManager   = (*session.Manager)(nil)
)

type testDeps struct {
	campaigns *mockCampaignServicer
	resolver  *mockResolver
	sessions  *session.Manager
	opts      handler.RouterOptions
}

func newDeps() *testDeps {
	return &testDeps{
		campaigns: &mockCampaignServicer{},
		resolver: &mockResolver{
			byHost: func(context.Context, string) resolver.Resolution {
				return resolver.Resolution{Outcome: resolver.FallThrough}
			},
		},
		sessions: session.NewManager("", "", time.Hour),
	}
}

// newHTTPHandler wires a Server into the router exactly as main.go does.
func newHTTPHandler(t *testing.T, d *testDeps) http.Handler {
	t.Helper()
	pages, err := render.New("")
	require.NoError(t, err)
	return handler.NewServer(d.campaigns, d.resolver, pages, d.sessions).Routes(d.opts)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}
