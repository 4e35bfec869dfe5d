package service

import (
	"context"

	"github.com/google/uuid"

	"blogdesk/internal/imaging"
	"blogdesk/internal/models"
)

// Repositories are implemented by internal/store (PostgreSQL),
// internal/store/memory and, for analytics, internal/mongostore. Lookups
// return (nil, nil) when nothing matches; unique-index violations wrap
// store.ErrDuplicate.

// CategoryRepo persists categories.
type CategoryRepo interface {
	ListActive(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindActiveByName(ctx context.Context, name string) (*models.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BlogRepo persists blogs. Returned blogs carry their category expanded.
type BlogRepo interface {
	ListActive(ctx context.Context) ([]models.Blog, error)
	ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Blog, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	Create(ctx context.Context, b *models.Blog) (*models.Blog, error)
	Update(ctx context.Context, b *models.Blog) (*models.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Blog, error)
}

// PinRepo persists one pin list.
type PinRepo interface {
	ListBlogs(ctx context.Context) ([]models.Blog, error)
	Exists(ctx context.Context, blogID uuid.UUID) (bool, error)
	Add(ctx context.Context, blogID uuid.UUID) (*models.PinEntry, error)
	Remove(ctx context.Context, blogID uuid.UUID) (bool, error)
}

// NewsRepo persists news carousel items.
type NewsRepo interface {
	ListActive(ctx context.Context) ([]models.NewsItem, error)
	Create(ctx context.Context, n *models.NewsItem) (*models.NewsItem, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.NewsItem, error)
}

// AnalyticsRepo appends and aggregates analytics events.
type AnalyticsRepo interface {
	RecordVisit(ctx context.Context, v *models.PageVisit) error
	RecordTimeSpent(ctx context.Context, e *models.TimeSpent) error
	PageTotals(ctx context.Context, page string) (*models.PageTotals, error)
	VisitCounts(ctx context.Context) ([]models.VisitCount, error)
	TimeStats(ctx context.Context) ([]models.TimeStat, error)
}

// UserRepo persists admin users.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User) (*models.User, error)
	SetTOTPSecret(ctx context.Context, userID uuid.UUID, secret string) error
	EnableTOTP(ctx context.Context, userID uuid.UUID) error
	ResetTOTP(ctx context.Context, userID uuid.UUID) error
}

// ImageStore holds uploaded images. Upload returns a durable public URL,
// which is also the handle Delete accepts.
type ImageStore interface {
	Upload(ctx context.Context, img *imaging.Image) (string, error)
	Delete(ctx context.Context, url string) error
}
