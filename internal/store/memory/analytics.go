package memory

import (
	"context"
	"sort"

	"blogdesk/internal/models"
)

// AnalyticsStore is the in-memory analytics event repository.
type AnalyticsStore struct {
	db *DB
}

// RecordVisit appends a page-visit event.
func (s *AnalyticsStore) RecordVisit(ctx context.Context, v *models.PageVisit) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.visits = append(s.db.visits, *v)
	return nil
}

// RecordTimeSpent appends a time-on-page event.
func (s *AnalyticsStore) RecordTimeSpent(ctx context.Context, e *models.TimeSpent) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.timeSpent = append(s.db.timeSpent, *e)
	return nil
}

// PageTotals sums the events recorded for page.
func (s *AnalyticsStore) PageTotals(ctx context.Context, page string) (*models.PageTotals, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var t models.PageTotals
	for _, v := range s.db.visits {
		if v.Page == page {
			t.Visits++
		}
	}
	for _, e := range s.db.timeSpent {
		if e.Page == page {
			t.TimeEvents++
			t.TotalTime += e.TimeSpent
		}
	}
	return &t, nil
}

// VisitCounts groups visits by page, sorted by page.
func (s *AnalyticsStore) VisitCounts(ctx context.Context) ([]models.VisitCount, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	counts := make(map[string]int64)
	for _, v := range s.db.visits {
		counts[v.Page]++
	}
	items := make([]models.VisitCount, 0, len(counts))
	for page, n := range counts {
		items = append(items, models.VisitCount{Page: page, Count: n})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Page < items[j].Page })
	return items, nil
}

// TimeStats groups time events by page, sorted by page.
func (s *AnalyticsStore) TimeStats(ctx context.Context) ([]models.TimeStat, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	type acc struct {
		n     int
		total float64
	}
	groups := make(map[string]*acc)
	for _, e := range s.db.timeSpent {
		g, ok := groups[e.Page]
		if !ok {
			g = &acc{}
			groups[e.Page] = g
		}
		g.n++
		g.total += e.TimeSpent
	}
	items := make([]models.TimeStat, 0, len(groups))
	for page, g := range groups {
		items = append(items, models.TimeStat{Page: page, AvgTime: g.total / float64(g.n), TotalTime: g.total})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Page < items[j].Page })
	return items, nil
}
