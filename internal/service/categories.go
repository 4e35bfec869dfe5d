package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"blogdesk/internal/models"
	"blogdesk/internal/slug"
	"blogdesk/internal/store"
)

// DefaultCategories are created by EnsureDefaults when seeding.
var DefaultCategories = []string{"Tech", "Travel", "Health", "Fashion", "Sports"}

// fallbackSlug is used for names that have no URL-safe characters.
const fallbackSlug = "category"

// Categories manages blog categories.
type Categories struct {
	repo CategoryRepo
}

// NewCategories returns a category service.
func NewCategories(repo CategoryRepo) *Categories {
	return &Categories{repo: repo}
}

// CategoryInput is the payload for creating a category. Name is a pointer
// so a missing name can be told apart from an empty one.
type CategoryInput struct {
	Name *string `json:"name"`
}

// List returns active categories ordered by name.
func (s *Categories) List(ctx context.Context, actor *Actor) ([]models.Category, error) {
	if err := requireEditor(actor); err != nil {
		return nil, err
	}
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, upstream("list categories", err)
	}
	return items, nil
}

// Create validates the name, assigns a unique slug and stores the category.
func (s *Categories) Create(ctx context.Context, actor *Actor, in CategoryInput) (*models.Category, error) {
	if err := requireEditor(actor); err != nil {
		return nil, err
	}
	if in.Name == nil {
		return nil, validation("Name is required")
	}
	name := collapseSpace(*in.Name)
	if !lengthBetween(name, 1, maxCategoryNameLen) {
		return nil, validation("Name must be between 1 and 40 characters")
	}
	return s.create(ctx, name)
}

func (s *Categories) create(ctx context.Context, name string) (*models.Category, error) {
	existing, err := s.repo.FindActiveByName(ctx, name)
	if err != nil {
		return nil, upstream("find category by name", err)
	}
	if existing != nil {
		return nil, conflict("Category already exists")
	}

	base := slug.Generate(name)
	if base == "" {
		base = fallbackSlug
	}
	candidate, err := slug.Unique(ctx, base, s.repo.SlugExists)
	if err != nil {
		return nil, upstream("assign category slug", err)
	}

	// The slug lookup above can race with a concurrent create; the unique
	// indexes on slug and active name decide the winner.
	c, err := s.repo.Create(ctx, &models.Category{Name: name, Slug: candidate, IsActive: true})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, conflict("Category already exists")
	}
	if err != nil {
		return nil, upstream("create category", err)
	}
	return c, nil
}

// SetActive archives (active=false) or restores a category.
func (s *Categories) SetActive(ctx context.Context, actor *Actor, id string, active bool) (*models.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	cid, ok := parseID(id)
	if !ok {
		return nil, notFound("Category not found")
	}
	c, err := s.repo.SetActive(ctx, cid, active)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, conflict("Category already exists")
	}
	if err != nil {
		return nil, upstream("set category active", err)
	}
	if c == nil {
		return nil, notFound("Category not found")
	}
	return c, nil
}

// Delete hard-deletes a category. Blogs that reference it are kept and
// show the category as N/A.
func (s *Categories) Delete(ctx context.Context, actor *Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	cid, ok := parseID(id)
	if !ok {
		return notFound("Category not found")
	}
	deleted, err := s.repo.Delete(ctx, cid)
	if err != nil {
		return upstream("delete category", err)
	}
	if !deleted {
		return notFound("Category not found")
	}
	return nil
}

// EnsureDefaults creates each named category that has no active
// case-insensitive match. It returns the number created.
func (s *Categories) EnsureDefaults(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, raw := range names {
		name := collapseSpace(raw)
		if !lengthBetween(name, 1, maxCategoryNameLen) {
			return created, validation("Name must be between 1 and 40 characters")
		}
		_, err := s.create(ctx, name)
		if errors.Is(err, ErrConflict) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
		slog.Info("category seeded", "name", name)
	}
	return created, nil
}

// normalizeSlug lower-cases and trims a slug from a URL.
func normalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
