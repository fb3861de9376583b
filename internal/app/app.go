package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/termtag/internal/config"
	"github.com/heartmarshall/termtag/internal/transport/middleware"
	"github.com/heartmarshall/termtag/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, wires all
// components and serves HTTP until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	deps, err := Build(cfg, logger)
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Termbase.Timeout)
	if err := deps.Termbase.Ping(pingCtx); err != nil {
		// Not fatal: the termbase may come up later, /ready reports it.
		logger.Warn("termbase not reachable at startup", slog.String("error", err.Error()))
	}
	cancel()

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.RouterDeps{
		Health:    rest.NewHealthHandler(Version, rest.Check{Name: "termbase", Pinger: deps.Termbase}),
		Tag:       rest.NewTagHandler(deps.Tags, cfg.Tag, logger),
		Chat:      newChatHandler(deps, cfg, logger),
		Catalog:   rest.NewCatalogHandler(deps.Termbase, deps.Profiles, logger),
		Search:    rest.NewSearchHandler(deps.Termbase, logger),
		Metrics:   deps.Registry,
		Limiter:   limiter,
		Auth:      cfg.Auth,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			slog.String("addr", srv.Addr),
			slog.Bool("auth", cfg.Auth.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("app: http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newChatHandler keeps a disabled translator a nil interface.
func newChatHandler(deps *Deps, cfg *config.Config, logger *slog.Logger) *rest.ChatHandler {
	if deps.LLM == nil {
		return rest.NewChatHandler(deps.Filter, nil, cfg.Tag, logger)
	}
	return rest.NewChatHandler(deps.Filter, deps.LLM, cfg.Tag, logger)
}
