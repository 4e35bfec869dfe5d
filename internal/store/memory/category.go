package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"blogdesk/internal/models"
	"blogdesk/internal/store"
)

// CategoryStore is the in-memory category repository.
type CategoryStore struct {
	db *DB
}

// ListActive returns active categories ordered by name.
func (s *CategoryStore) ListActive(ctx context.Context) ([]models.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var items []models.Category
	for _, rec := range s.db.categories {
		if rec.val.IsActive {
			items = append(items, rec.val)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// FindByID returns a category by id, or nil.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if rec, ok := s.db.categories[id]; ok {
		c := rec.val
		return &c, nil
	}
	return nil, nil
}

// FindBySlug returns a category by slug, or nil.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, rec := range s.db.categories {
		if rec.val.Slug == slug {
			c := rec.val
			return &c, nil
		}
	}
	return nil, nil
}

// FindActiveByName returns the active category named name, ignoring case.
func (s *CategoryStore) FindActiveByName(ctx context.Context, name string) (*models.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if c := s.activeByName(name, uuid.Nil); c != nil {
		found := *c
		return &found, nil
	}
	return nil, nil
}

// activeByName finds an active category other than except with the given
// name. Caller must hold the lock.
func (s *CategoryStore) activeByName(name string, except uuid.UUID) *models.Category {
	for id, rec := range s.db.categories {
		if id != except && rec.val.IsActive && strings.EqualFold(rec.val.Name, name) {
			return &rec.val
		}
	}
	return nil
}

// SlugExists reports whether any category uses slug.
func (s *CategoryStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	c, err := s.FindBySlug(ctx, slug)
	return c != nil, err
}

// Create inserts a category, rejecting a taken slug or active name with
// store.ErrDuplicate.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, rec := range s.db.categories {
		if rec.val.Slug == c.Slug {
			return nil, fmt.Errorf("create category: %w (categories_slug_key)", store.ErrDuplicate)
		}
	}
	if c.IsActive && s.activeByName(c.Name, uuid.Nil) != nil {
		return nil, fmt.Errorf("create category: %w (categories_active_name_key)", store.ErrDuplicate)
	}

	now := s.db.now()
	created := models.Category{
		ID:        uuid.New(),
		Name:      c.Name,
		Slug:      c.Slug,
		IsActive:  c.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.db.categories[created.ID] = &record[models.Category]{val: created, seq: s.db.next()}
	return &created, nil
}

// SetActive archives or restores a category. Returns nil if not found.
func (s *CategoryStore) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec, ok := s.db.categories[id]
	if !ok {
		return nil, nil
	}
	if active && !rec.val.IsActive && s.activeByName(rec.val.Name, id) != nil {
		return nil, fmt.Errorf("set category active: %w (categories_active_name_key)", store.ErrDuplicate)
	}
	rec.val.IsActive = active
	rec.val.UpdatedAt = s.db.now()
	c := rec.val
	return &c, nil
}

// Delete removes a category and reports whether it existed.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.categories[id]; !ok {
		return false, nil
	}
	delete(s.db.categories, id)
	return true, nil
}
