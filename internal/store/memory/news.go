package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"blogdesk/internal/models"
)

// NewsStore is the in-memory news carousel repository.
type NewsStore struct {
	db *DB
}

// ListActive returns active items, newest first.
func (s *NewsStore) ListActive(ctx context.Context) ([]models.NewsItem, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var recs []*record[models.NewsItem]
	for _, rec := range s.db.news {
		if rec.val.IsActive {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })

	items := make([]models.NewsItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, rec.val)
	}
	return items, nil
}

// Create inserts a carousel item.
func (s *NewsStore) Create(ctx context.Context, n *models.NewsItem) (*models.NewsItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := s.db.now()
	created := *n
	created.ID = uuid.New()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.db.news[created.ID] = &record[models.NewsItem]{val: created, seq: s.db.next()}
	return &created, nil
}

// Delete removes an item and returns it. Returns nil if not found.
func (s *NewsStore) Delete(ctx context.Context, id uuid.UUID) (*models.NewsItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec, ok := s.db.news[id]
	if !ok {
		return nil, nil
	}
	delete(s.db.news, id)
	out := rec.val
	return &out, nil
}
