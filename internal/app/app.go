package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/lilurl-web/internal/client"
	"github.com/vadimbarashkov/lilurl-web/internal/config"
	"github.com/vadimbarashkov/lilurl-web/internal/session"
	"github.com/vadimbarashkov/lilurl-web/pkg/middleware/ratelimit"
	"golang.org/x/sync/errgroup"

	myhttp "github.com/vadimbarashkov/lilurl-web/internal/api/http"
)

type components struct {
	handler  http.Handler
	sessions *session.Store
	limiter  *ratelimit.Limiter
}

func build(cfg *config.Config, logger *httplog.Logger) *components {
	var clientOpts []client.Option
	if cfg.Backend.Timeout > 0 {
		clientOpts = append(clientOpts, client.WithTimeout(cfg.Backend.Timeout))
	}
	backend := client.New(cfg.Backend.BaseURL, clientOpts...)

	sessions := session.NewStore(backend, logger.Logger, session.Options{
		TTL:           cfg.Session.TTL,
		SweepInterval: cfg.Session.SweepInterval,
		RecentLimit:   cfg.RecentLimit,
		ShortURLBase:  cfg.ShortURLBase,
		MaxSessions:   cfg.Session.MaxSessions,
	})

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Idle)
	}

	handler := myhttp.NewRouter(logger, sessions, backend, myhttp.Options{
		ShortURLBase: cfg.ShortURLBase,
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Session.CookieSecure,
		Limiter:      limiter,
		TrustProxy:   cfg.HTTPServer.TrustProxy,
	})

	return &components{
		handler:  handler,
		sessions: sessions,
		limiter:  limiter,
	}
}

// Run serves the frontend until ctx is canceled.
func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	c := build(cfg, logger)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        c.handler,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "addr", server.Addr, "env", cfg.Env, "backend", cfg.Backend.BaseURL)

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		return c.sessions.Run(ctx)
	})

	if c.limiter != nil {
		g.Go(func() error {
			return c.limiter.Run(ctx)
		})
	}

	return g.Wait()
}
