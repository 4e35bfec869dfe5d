// Package main is the entry point for the blogdesk API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogdesk/internal/cache"
	"blogdesk/internal/config"
	"blogdesk/internal/database"
	"blogdesk/internal/handlers"
	"blogdesk/internal/models"
	"blogdesk/internal/mongostore"
	"blogdesk/internal/router"
	"blogdesk/internal/service"
	"blogdesk/internal/session"
	"blogdesk/internal/storage"
	"blogdesk/internal/store"
	"blogdesk/internal/store/memory"
)

// repos is the set of content repositories behind the services.
type repos struct {
	categories service.CategoryRepo
	blogs      service.BlogRepo
	mainPins   service.PinRepo
	trendPins  service.PinRepo
	news       service.NewsRepo
	analytics  service.AnalyticsRepo
	users      service.UserRepo
}

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var logHandler slog.Handler
	if cfg.IsDev() {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreBackend,
	)

	ctx := context.Background()

	// Content store: PostgreSQL, or process memory for demos and tests.
	var r repos
	var db *sql.DB
	if cfg.StoreBackend == config.BackendPostgres {
		db, err = database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		r = repos{
			categories: store.NewCategoryStore(db),
			blogs:      store.NewBlogStore(db),
			mainPins:   store.NewPinStore(db, models.PinListMain),
			trendPins:  store.NewPinStore(db, models.PinListTrending),
			news:       store.NewNewsStore(db),
			analytics:  store.NewAnalyticsStore(db),
			users:      store.NewUserStore(db),
		}
	} else {
		slog.Warn("using in-memory content store, data is lost on restart")
		mem := memory.New()
		r = repos{
			categories: mem.Categories(),
			blogs:      mem.Blogs(),
			mainPins:   mem.Pins(models.PinListMain),
			trendPins:  mem.Pins(models.PinListTrending),
			news:       mem.News(),
			analytics:  mem.Analytics(),
			users:      mem.Users(),
		}
	}

	// Analytics events go to MongoDB when configured.
	if cfg.MongoURI != "" {
		events, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			slog.Error("failed to connect to mongodb", "error", err)
			os.Exit(1)
		}
		defer events.Close(context.Background())
		r.analytics = events
	}

	authSvc := service.NewAuth(r.users, cfg.TOTPIssuer)
	categorySvc := service.NewCategories(r.categories)

	if err := seed(ctx, cfg, db, authSvc, categorySvc); err != nil {
		slog.Error("failed to seed", "error", err)
		os.Exit(1)
	}

	// Image store: S3 when credentials are configured, else a local directory.
	var images service.ImageStore
	var uploadDir string
	s3Store, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL, cfg.ImageFolder)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if s3Store != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := s3Store.Ping(pingCtx); err != nil {
			slog.Warn("s3 bucket not reachable", "bucket", cfg.S3Bucket, "error", err)
		}
		cancel()
		slog.Info("s3 storage configured", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		images = s3Store
	} else {
		disk, err := storage.NewDisk(cfg.UploadDir, cfg.PublicBaseURL, cfg.ImageFolder)
		if err != nil {
			slog.Error("failed to initialize upload directory", "error", err)
			os.Exit(1)
		}
		slog.Warn("s3 storage not configured, storing images on disk", "dir", disk.Dir())
		images = disk
		uploadDir = disk.Dir()
	}

	// Sessions: Valkey when configured, else process memory (single instance).
	var sessions handlers.SessionStore
	if cfg.ValkeyHost != "" {
		valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		sessions = session.NewStore(valkeyClient, cfg.SessionTTL)
	} else {
		slog.Warn("valkey not configured, sessions kept in memory")
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	h := router.Handlers{
		Auth:       handlers.NewAuth(authSvc, sessions),
		Categories: handlers.NewCategories(categorySvc),
		Blogs:      handlers.NewBlogs(service.NewBlogs(r.blogs, r.categories, images)),
		MainStory:  handlers.NewPins(service.NewPins(models.PinListMain, r.mainPins, r.blogs)),
		Trending:   handlers.NewPins(service.NewPins(models.PinListTrending, r.trendPins, r.blogs)),
		News:       handlers.NewNews(service.NewNews(r.news, images)),
		Analytics:  handlers.NewAnalytics(service.NewAnalytics(r.analytics)),
	}
	handler := router.New(sessions, h, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		UploadDir:   uploadDir,
	})

	// WriteTimeout covers multipart uploads that are pushed on to S3.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// seed creates the first admin and default categories. PostgreSQL is only
// seeded in development. The memory backend starts empty, so it is seeded
// in every environment, with the default password allowed only in
// development.
func seed(ctx context.Context, cfg *config.Config, db *sql.DB, auth *service.Auth, categories *service.Categories) error {
	if !cfg.IsDev() && db != nil {
		return nil
	}

	email, password := cfg.AdminEmail, cfg.AdminPassword
	if email == "" {
		email = database.DefaultAdminEmail
	}
	if password == "" && cfg.IsDev() {
		password = database.DefaultAdminPassword
	}

	switch {
	case db != nil:
		if err := database.Seed(db, email, password); err != nil {
			return err
		}
	case password == "":
		slog.Warn("ADMIN_PASSWORD not set, no admin account seeded")
	default:
		if _, err := auth.CreateUser(ctx, email, password, "Admin", models.RoleAdmin); err != nil {
			return err
		}
		slog.Info("seeded admin account", "email", email)
	}

	_, err := categories.EnsureDefaults(ctx, service.DefaultCategories)
	return err
}
