package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/pauljones0/promo-campaigns/internal/validator"
)

// knownFields are the campaign fields that may be listed in CAMPAIGN_REQUIRED_FIELDS.
var knownFields = []string{"companyName", "logoUrl", "videoUrl", "researchUrl", "googleProblemUrl"}

type Config struct {
	ProjectID         string        `env:"GOOGLE_CLOUD_PROJECT"`
	Port              string        `env:"PORT" envDefault:"8080"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	BaseDomain        string        `env:"BASE_DOMAIN" envDefault:"berealmediagroup.com"`
	TokenLength       int           `env:"TOKEN_LENGTH" envDefault:"64"`
	RequiredFields    []string      `env:"CAMPAIGN_REQUIRED_FIELDS" envDefault:"companyName,logoUrl,videoUrl" envSeparator:","`
	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	SessionSecret     string        `env:"SESSION_SECRET"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	ForceHTTPS        bool          `env:"FORCE_HTTPS" envDefault:"true"`
	PromoRateLimit    float64       `env:"PROMO_RATE_LIMIT" envDefault:"5"`
	PromoRateBurst    int           `env:"PROMO_RATE_BURST" envDefault:"10"`
	TrustedProxyHops  int           `env:"TRUSTED_PROXY_HOPS" envDefault:"0"`
	CORSOrigins       []string      `env:"CORS_ORIGINS" envSeparator:","`
	MaxBodyBytes      int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	DiscordWebhookURL string        `env:"DISCORD_WEBHOOK_URL"`
	CalendlyURL       string        `env:"CALENDLY_URL"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT environment variable is required but not set")
	}
	if cfg.BaseDomain == "" {
		return nil, fmt.Errorf("BASE_DOMAIN must not be empty")
	}
	if cfg.TokenLength <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_LENGTH %d: must be positive", cfg.TokenLength)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL %s: must be positive", cfg.SessionTTL)
	}
	if cfg.PromoRateLimit <= 0 || cfg.PromoRateBurst <= 0 {
		return nil, fmt.Errorf("invalid promo rate limit %g/%d: both must be positive", cfg.PromoRateLimit, cfg.PromoRateBurst)
	}
	if cfg.TrustedProxyHops < 0 {
		return nil, fmt.Errorf("invalid TRUSTED_PROXY_HOPS %d: must not be negative", cfg.TrustedProxyHops)
	}
	if cfg.CalendlyURL != "" && !validator.New().IsURL(cfg.CalendlyURL) {
		return nil, fmt.Errorf("invalid CALENDLY_URL %q: must be an absolute URL", cfg.CalendlyURL)
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("invalid MAX_BODY_BYTES %d: must be positive", cfg.MaxBodyBytes)
	}

	required, err := normalizeRequiredFields(cfg.RequiredFields)
	if err != nil {
		return nil, err
	}
	cfg.RequiredFields = required

	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD not set, the admin API is unauthenticated")
	} else if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required when ADMIN_PASSWORD is set")
	}

	if cfg.DiscordWebhookURL == "" {
		slog.Info("DISCORD_WEBHOOK_URL not set, campaign notifications will be skipped")
	}

	return &cfg, nil
}

// AuthEnabled reports whether the admin API requires a session.
func (c *Config) AuthEnabled() bool {
	return c.AdminPassword != ""
}

// normalizeRequiredFields checks every entry names a known field and always
// includes companyName, since the campaign ID is derived from it.
func normalizeRequiredFields(fields []string) ([]string, error) {
	out := []string{"companyName"}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if !slices.Contains(knownFields, f) {
			return nil, fmt.Errorf("invalid CAMPAIGN_REQUIRED_FIELDS entry %q", f)
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}
