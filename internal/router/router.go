// Package router sets up all HTTP routes and middleware chains for the
// blogdesk API. Public reads and analytics ingestion are open; writes sit
// behind an authenticated, 2FA-complete session.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"blogdesk/internal/handlers"
	"blogdesk/internal/middleware"
)

// Handlers bundles the handler groups mounted under /api.
type Handlers struct {
	Auth       *handlers.Auth
	Categories *handlers.Categories
	Blogs      *handlers.Blogs
	MainStory  *handlers.Pins
	Trending   *handlers.Pins
	News       *handlers.News
	Analytics  *handlers.Analytics
}

// Options configures the cross-cutting parts of the router.
type Options struct {
	// CORSOrigins lists the origins allowed to call the API. Empty allows none.
	CORSOrigins []string
	// UploadDir, when set, is served under /uploads/ for the disk image store.
	UploadDir string
}

// New creates the chi router with all middleware and route groups wired up.
func New(sessions middleware.SessionGetter, h Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", handlers.Health)

	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoadSession(sessions))

		r.Get("/health", handlers.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Post("/login", h.Auth.Login)

			// A session is enough here; 2FA may still be pending.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSession)
				r.Post("/logout", h.Auth.Logout)
				r.Post("/2fa/verify", h.Auth.VerifyTwoFA)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/me", h.Auth.Me)
				r.Post("/2fa/setup", h.Auth.SetupTwoFA)
			})
		})

		r.With(middleware.NoStore, middleware.RequireAuth, middleware.RequireAdmin).Get("/users", h.Auth.Users)

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", h.Categories.List)
			r.Post("/", h.Categories.Create)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Patch("/{id}", h.Categories.SetActive)
				r.Delete("/{id}", h.Categories.Delete)
			})
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.Blogs.List)
			r.Get("/category/{slug}", h.Blogs.ListByCategory)
			r.Get("/{id}", h.Blogs.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.Blogs.Create)
				r.Put("/{id}", h.Blogs.Update)
				r.Delete("/{id}", h.Blogs.Delete)
			})
		})

		mountPins(r, "/main-stories", h.MainStory)
		mountPins(r, "/trending-stories", h.Trending)

		r.Route("/news-carousel", func(r chi.Router) {
			r.Get("/", h.News.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.News.Create)
				r.Delete("/{id}", h.News.Delete)
			})
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Post("/visit", h.Analytics.RecordVisit)
			r.Post("/time", h.Analytics.RecordTimeSpent)
			r.Get("/stats", h.Analytics.Stats)
			r.Get("/stats/*", h.Analytics.PageStats)
		})
	})

	return r
}

// mountPins registers the routes of one pin list.
func mountPins(r chi.Router, pattern string, h *handlers.Pins) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", h.Add)
			r.Delete("/{blogId}", h.Remove)
		})
	})
}
