package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/pauljones0/promo-campaigns/internal/campaign"
	"github.com/pauljones0/promo-campaigns/internal/config"
	"github.com/pauljones0/promo-campaigns/internal/handler"
	"github.com/pauljones0/promo-campaigns/internal/middleware"
	"github.com/pauljones0/promo-campaigns/internal/notifier"
	"github.com/pauljones0/promo-campaigns/internal/render"
	"github.com/pauljones0/promo-campaigns/internal/resolver"
	"github.com/pauljones0/promo-campaigns/internal/session"
	"github.com/pauljones0/promo-campaigns/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	slog.Info("Starting promo campaign server...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	store, err := storage.New(ctx, cfg.ProjectID)
	if err != nil {
		slog.Error("Critical error initializing Firestore client", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	pages, err := render.New(cfg.CalendlyURL)
	if err != nil {
		slog.Error("Critical error parsing page templates", "error", err)
		os.Exit(1)
	}

	n := notifier.New(cfg.DiscordWebhookURL, "https://"+cfg.BaseDomain)
	campaigns := campaign.New(store, n, cfg)
	res := resolver.New(store, cfg.BaseDomain)
	sessions := session.NewManager(cfg.AdminPassword, cfg.SessionSecret, cfg.SessionTTL)

	srv := handler.NewServer(campaigns, res, pages, sessions)
	router := srv.Routes(handler.RouterOptions{
		Logger:       logger,
		ForceHTTPS:   cfg.ForceHTTPS,
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
		PromoLimiter: middleware.NewClientRateLimiter(cfg.PromoRateLimit, cfg.PromoRateBurst, cfg.TrustedProxyHops),
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening on port", "port", cfg.Port, "auth_enabled", cfg.AuthEnabled())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "error", err)
		store.Close()
		os.Exit(1)
	}
	slog.Info("Server stopped.")
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}
