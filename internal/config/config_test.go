package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Set test environment variables (auto-cleaned up after test)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("PORT", "9090")
	t.Setenv("BASE_DOMAIN", "example.com")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://test.webhook")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.ProjectID != "test-project" {
		t.Errorf("Expected test-project, got %s", cfg.ProjectID)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected 9090, got %s", cfg.Port)
	}
	if cfg.BaseDomain != "example.com" {
		t.Errorf("Expected example.com, got %s", cfg.BaseDomain)
	}
	if cfg.DiscordWebhookURL != "https://test.webhook" {
		t.Errorf("Expected https://test.webhook, got %s", cfg.DiscordWebhookURL)
	}
	if cfg.TokenLength != 64 {
		t.Errorf("Expected default TokenLength 64, got %d", cfg.TokenLength)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("Expected default SessionTTL 24h, got %s", cfg.SessionTTL)
	}
	if !cfg.ForceHTTPS {
		t.Error("Expected ForceHTTPS to default to true")
	}
	if cfg.PromoRateLimit != 5 || cfg.PromoRateBurst != 10 {
		t.Errorf("Expected default rate 5/10, got %g/%d", cfg.PromoRateLimit, cfg.PromoRateBurst)
	}
	if want := []string{"companyName", "logoUrl", "videoUrl"}; !reflect.DeepEqual(cfg.RequiredFields, want) {
		t.Errorf("Expected default required fields %v, got %v", want, cfg.RequiredFields)
	}
	if cfg.AuthEnabled() {
		t.Error("Expected auth to be disabled without ADMIN_PASSWORD")
	}
}

func TestLoad_MissingProjectID(t *testing.T) {
	// Do NOT set GOOGLE_CLOUD_PROJECT
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")

	_, err := Load()
	if err == nil {
		t.Error("Load() should return an error when GOOGLE_CLOUD_PROJECT is not set")
	}
}

func TestLoad_CustomSessionTTL(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("SESSION_TTL", "90m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Errorf("Expected 90m, got %s", cfg.SessionTTL)
	}
}

func TestLoad_InvalidSessionTTL(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("SESSION_TTL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Error("Load() should return error for invalid SESSION_TTL")
	}
}

func TestLoad_InvalidTokenLength(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("TOKEN_LENGTH", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() should return error for TOKEN_LENGTH=0")
	}
}

func TestLoad_PasswordRequiresSecret(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should return error when ADMIN_PASSWORD is set without SESSION_SECRET")
	}

	t.Setenv("SESSION_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("Expected auth to be enabled")
	}
}

func TestLoad_RequiredFields(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("CAMPAIGN_REQUIRED_FIELDS", "logoUrl, researchUrl,logoUrl")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	want := []string{"companyName", "logoUrl", "researchUrl"}
	if !reflect.DeepEqual(cfg.RequiredFields, want) {
		t.Errorf("Expected %v, got %v", want, cfg.RequiredFields)
	}
}

func TestLoad_UnknownRequiredField(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("CAMPAIGN_REQUIRED_FIELDS", "companyName,token")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject unknown required field names")
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("CORS_ORIGINS", "https://admin.example.com,https://ops.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	want := []string{"https://admin.example.com", "https://ops.example.com"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("Expected %v, got %v", want, cfg.CORSOrigins)
	}
}

func TestLoad_CalendlyURL(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("CALENDLY_URL", "https://calendly.com/acme/intro")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.CalendlyURL != "https://calendly.com/acme/intro" {
		t.Errorf("Expected Calendly URL, got %q", cfg.CalendlyURL)
	}

	t.Setenv("CALENDLY_URL", "calendly acme")
	if _, err := Load(); err == nil {
		t.Error("Load() should reject a CALENDLY_URL that is not a URL")
	}
}

func TestLoad_TrustedProxyHops(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.TrustedProxyHops != 0 {
		t.Errorf("Expected TrustedProxyHops to default to 0, got %d", cfg.TrustedProxyHops)
	}

	t.Setenv("TRUSTED_PROXY_HOPS", "-1")
	if _, err := Load(); err == nil {
		t.Error("Load() should reject a negative TRUSTED_PROXY_HOPS")
	}
}
