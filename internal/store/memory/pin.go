package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"blogdesk/internal/models"
	"blogdesk/internal/store"
)

// PinStore is the in-memory repository for one pin list. Entries are kept
// in insertion order.
type PinStore struct {
	db   *DB
	list models.PinList
}

// ListBlogs returns pinned blogs newest pin first, skipping deleted blogs.
func (s *PinStore) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	entries := s.db.pins[s.list]
	var items []models.Blog
	for i := len(entries) - 1; i >= 0; i-- {
		rec, ok := s.db.blogs[entries[i].BlogID]
		if !ok {
			continue
		}
		items = append(items, s.db.expandBlog(rec.val))
	}
	return items, nil
}

// indexOf returns the position of blogID in the list, or -1. Caller must
// hold the lock.
func (s *PinStore) indexOf(blogID uuid.UUID) int {
	for i, e := range s.db.pins[s.list] {
		if e.BlogID == blogID {
			return i
		}
	}
	return -1
}

// Exists reports whether blogID is pinned.
func (s *PinStore) Exists(ctx context.Context, blogID uuid.UUID) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.indexOf(blogID) >= 0, nil
}

// Add pins blogID, returning store.ErrDuplicate if it is already pinned.
func (s *PinStore) Add(ctx context.Context, blogID uuid.UUID) (*models.PinEntry, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.indexOf(blogID) >= 0 {
		return nil, fmt.Errorf("add %s entry: %w", s.list, store.ErrDuplicate)
	}
	now := s.db.now()
	e := &models.PinEntry{ID: uuid.New(), BlogID: blogID, CreatedAt: now, UpdatedAt: now}
	s.db.pins[s.list] = append(s.db.pins[s.list], e)

	out := *e
	return &out, nil
}

// Remove unpins blogID and reports whether it was pinned.
func (s *PinStore) Remove(ctx context.Context, blogID uuid.UUID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i := s.indexOf(blogID)
	if i < 0 {
		return false, nil
	}
	entries := s.db.pins[s.list]
	s.db.pins[s.list] = append(entries[:i:i], entries[i+1:]...)
	return true, nil
}
