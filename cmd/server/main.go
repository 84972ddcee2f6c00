// Command server runs the Politely Failed HTTP API.
//
// @title       Politely Failed API
// @version     1.0.0
// @description Randomized, tone-aware failure messages by category.
// @BasePath    /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/politely-failed/internal/config"
	httpapi "github.com/tbourn/politely-failed/internal/http"
	"github.com/tbourn/politely-failed/internal/observability"
	"github.com/tbourn/politely-failed/internal/repo"
	"github.com/tbourn/politely-failed/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("politely-failed exited")
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	service := sysutil.FirstNonEmpty(cfg.OTEL.ServiceName, "politely-failed")
	sysutil.ConfigureLogging(os.Stderr, cfg.LogLevel, cfg.LogPretty, service)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn().Err(envErr).Msg("failed to load .env file; continuing with process environment")
	}

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version,
		observability.CatalogSource(cfg.MessagesFilePath))
	if err != nil {
		return fmt.Errorf("set up tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	// The catalog must load before the listener opens.
	store := repo.NewStore(repo.OpenSource(cfg.MessagesFilePath))
	db, err := store.Load(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Str("source", cfg.MessagesFilePath).
		Str("catalog_version", db.Version).
		Int("messages", db.Count()).
		Msg("messages loaded")

	reloader := repo.NewReloader(store, cfg.ReloadMinInterval)
	go reloadOnHangup(ctx, reloader)
	go reloader.Watch(ctx, cfg.ReloadInterval)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, store, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	log.Info().
		Str("addr", srv.Addr).
		Str("version", version).
		Str("api_base_path", cfg.APIBasePath).
		Msg("politely-failed listening")
	if err := runServer(ctx, srv, cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// reloadOnHangup triggers a catalog reload for every SIGHUP until ctx ends.
func reloadOnHangup(ctx context.Context, r *repo.Reloader) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			_ = r.Trigger(ctx, "sighup")
		}
	}
}

// runServer serves until ctx is canceled, then shuts down gracefully within
// timeout.
func runServer(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Dur("timeout", timeout).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown incomplete")
		}
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
