package cli

import (
	"context"
	"database/sql"
	"log/slog"

	"blogdesk/internal/config"
	"blogdesk/internal/database"
	"blogdesk/internal/mongostore"
	"blogdesk/internal/service"
	"blogdesk/internal/store"
	"blogdesk/internal/store/memory"
)

// backend bundles the services the commands use.
type backend struct {
	db         *sql.DB // nil for the memory backend
	auth       *service.Auth
	categories *service.Categories
	analytics  *service.Analytics
	closers    []func()
}

// newBackend wires services over the given repositories.
func newBackend(users service.UserRepo, categories service.CategoryRepo, analytics service.AnalyticsRepo, issuer string) *backend {
	return &backend{
		auth:       service.NewAuth(users, issuer),
		categories: service.NewCategories(categories),
		analytics:  service.NewAnalytics(analytics),
	}
}

// newMemoryBackend returns a backend over a fresh in-memory store.
func newMemoryBackend() *backend {
	mem := memory.New()
	return newBackend(mem.Users(), mem.Categories(), mem.Analytics(), "blogdesk")
}

// openBackend connects to the stores named by cfg. Analytics come from
// MongoDB when a URI is configured, as in the server.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	var b *backend
	if cfg.StoreBackend == config.BackendMemory {
		b = newMemoryBackend()
	} else {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, err
		}
		b = newBackend(store.NewUserStore(db), store.NewCategoryStore(db), store.NewAnalyticsStore(db), cfg.TOTPIssuer)
		b.db = db
		b.closers = append(b.closers, func() { db.Close() })
	}

	if cfg.MongoURI != "" {
		events, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.analytics = service.NewAnalytics(events)
		b.closers = append(b.closers, func() {
			if err := events.Close(context.Background()); err != nil {
				slog.Warn("mongodb disconnect failed", "error", err)
			}
		})
	}
	return b, nil
}

// Close releases connections in reverse order of opening.
func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

// open returns the injected backend, or one built from the environment
// that the caller must close.
func open(ctx context.Context, injected *backend) (*backend, func(), error) {
	if injected != nil {
		return injected, func() {}, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	b, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return b, b.Close, nil
}
