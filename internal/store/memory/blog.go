package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"blogdesk/internal/models"
)

// BlogStore is the in-memory blog repository.
type BlogStore struct {
	db *DB
}

// listActive returns active blogs matching keep, newest date first.
func (s *BlogStore) listActive(keep func(*models.Blog) bool) []models.Blog {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var recs []*record[models.Blog]
	for _, rec := range s.db.blogs {
		if rec.val.IsActive && keep(&rec.val) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.val.Date.Equal(b.val.Date) {
			return a.val.Date.After(b.val.Date)
		}
		return a.seq > b.seq
	})

	items := make([]models.Blog, 0, len(recs))
	for _, rec := range recs {
		items = append(items, s.db.expandBlog(rec.val))
	}
	return items
}

// ListActive returns active blogs, newest date first.
func (s *BlogStore) ListActive(ctx context.Context) ([]models.Blog, error) {
	return s.listActive(func(*models.Blog) bool { return true }), nil
}

// ListActiveByCategory returns active blogs of one category, newest first.
func (s *BlogStore) ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Blog, error) {
	return s.listActive(func(b *models.Blog) bool { return b.CategoryID == categoryID }), nil
}

// FindByID returns a blog with its category expanded, or nil.
func (s *BlogStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	rec, ok := s.db.blogs[id]
	if !ok {
		return nil, nil
	}
	b := s.db.expandBlog(rec.val)
	return &b, nil
}

// Create inserts a blog.
func (s *BlogStore) Create(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := s.db.now()
	created := *b
	created.ID = uuid.New()
	created.Category = nil
	created.DescriptionHTML = ""
	created.CreatedAt = now
	created.UpdatedAt = now
	s.db.blogs[created.ID] = &record[models.Blog]{val: created, seq: s.db.next()}

	out := s.db.expandBlog(created)
	return &out, nil
}

// Update replaces a blog's editable fields. Returns nil if not found.
func (s *BlogStore) Update(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec, ok := s.db.blogs[b.ID]
	if !ok {
		return nil, nil
	}
	rec.val.CategoryID = b.CategoryID
	rec.val.Title = b.Title
	rec.val.Description = b.Description
	rec.val.Image = b.Image
	rec.val.Author = b.Author
	rec.val.Date = b.Date
	rec.val.IsActive = b.IsActive
	rec.val.UpdatedAt = s.db.now()

	out := s.db.expandBlog(rec.val)
	return &out, nil
}

// Delete removes a blog and returns it. Returns nil if not found.
func (s *BlogStore) Delete(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec, ok := s.db.blogs[id]
	if !ok {
		return nil, nil
	}
	delete(s.db.blogs, id)
	out := s.db.expandBlog(rec.val)
	return &out, nil
}
