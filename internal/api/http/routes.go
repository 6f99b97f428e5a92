// Package http is the web delivery layer of the LilURL frontend: the HTML
// page, the JSON API used by the page's script, QR codes and API docs.
package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/lilurl-web/internal/models"
	"github.com/vadimbarashkov/lilurl-web/internal/session"
	"github.com/vadimbarashkov/lilurl-web/pkg/middleware/ratelimit"
	"github.com/vadimbarashkov/lilurl-web/pkg/middleware/recoverer"
)

// URLLookup defines the backend read operations behind the stats panel.
type URLLookup interface {
	// GetURLByShortCode returns the backend's details for a short code.
	GetURLByShortCode(ctx context.Context, code string) (*models.ShortenResult, error)

	// GetURLByID returns the backend's details for a backend id.
	GetURLByID(ctx context.Context, id string) (*models.ShortenResult, error)
}

// Options holds router settings that are not dependencies.
type Options struct {
	// ShortURLBase is the origin short codes resolve at.
	ShortURLBase string
	// CookieName names the session cookie.
	CookieName string
	// CookieSecure marks the session cookie Secure.
	CookieSecure bool
	// Limiter throttles submissions. Nil disables throttling.
	Limiter *ratelimit.Limiter
	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP.
	// Enable it only behind a proxy that sets those headers, otherwise
	// clients can pick their own rate limit bucket.
	TrustProxy bool
}

// NewRouter initializes and returns a new HTTP router with all routes and middleware configured.
func NewRouter(logger *httplog.Logger, sessions *session.Store, lookup URLLookup, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer.New(logger.Logger))

	throttle := func(next http.Handler) http.Handler {
		if opts.Limiter == nil {
			return next
		}
		return opts.Limiter.Handler(next)
	}

	r.Get("/ping", handlePing)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))
	r.Get("/docs/swagger.yml", handleSwaggerSpec)

	r.Get("/qr/{shortCode}", handleQRCode(opts.ShortURLBase))

	cookies := &sessionCookies{
		store:  sessions,
		name:   opts.CookieName,
		secure: opts.CookieSecure,
	}
	page := newPage(opts.ShortURLBase, cookies)

	r.Group(func(r chi.Router) {
		r.Use(cookies.resolve)

		r.Get("/", page.handleIndex)
		r.With(throttle).Post("/", page.handleSubmit)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/validate", handleValidate)

		r.Route("/lookup", func(r chi.Router) {
			r.Get("/code/{shortCode}", handleLookupByShortCode(lookup, opts.ShortURLBase))
			r.Get("/id/{id}", handleLookupByID(lookup, opts.ShortURLBase))
		})

		r.Group(func(r chi.Router) {
			r.Use(cookies.resolve)

			r.With(throttle).Post("/shorten", handleShorten(cookies))
			r.Get("/recent", handleRecent)
		})
	})

	return r
}
