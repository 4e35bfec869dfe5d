package service

import (
	"context"
	"math"
	"strings"
	"time"

	"blogdesk/internal/models"
)

// Analytics records page events and aggregates them per page.
type Analytics struct {
	repo AnalyticsRepo
	now  func() time.Time
}

// NewAnalytics returns an analytics service.
func NewAnalytics(repo AnalyticsRepo) *Analytics {
	return &Analytics{repo: repo, now: time.Now}
}

// VisitInput is a page-visit event as sent by the public site.
type VisitInput struct {
	Page      string     `json:"page"`
	Timestamp *time.Time `json:"timestamp"`
	UserAgent string     `json:"userAgent"`
	SessionID string     `json:"sessionId"`
}

// TimeInput is a time-on-page event. TimeSpent is in seconds.
type TimeInput struct {
	Page      string     `json:"page"`
	TimeSpent *float64   `json:"timeSpent"`
	Timestamp *time.Time `json:"timestamp"`
	SessionID string     `json:"sessionId"`
}

// PageStats summarizes one page.
type PageStats struct {
	Page             string  `json:"page"`
	TotalVisits      int64   `json:"totalVisits"`
	AverageTimeSpent int64   `json:"averageTimeSpent"`
	TotalTimeSpent   float64 `json:"totalTimeSpent"`
}

// Stats holds the per-page groups over all pages.
type Stats struct {
	Visits    []models.VisitCount `json:"visits"`
	TimeStats []models.TimeStat   `json:"timeStats"`
}

func (s *Analytics) timestamp(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return s.now().UTC()
	}
	return t.UTC()
}

// RecordVisit appends a page-visit event.
func (s *Analytics) RecordVisit(ctx context.Context, in VisitInput) error {
	page := strings.TrimSpace(in.Page)
	if page == "" {
		return validation("Page is required")
	}
	err := s.repo.RecordVisit(ctx, &models.PageVisit{
		Page:      page,
		Timestamp: s.timestamp(in.Timestamp),
		UserAgent: in.UserAgent,
		SessionID: in.SessionID,
	})
	if err != nil {
		return upstream("record page visit", err)
	}
	return nil
}

// RecordTimeSpent appends a time-on-page event.
func (s *Analytics) RecordTimeSpent(ctx context.Context, in TimeInput) error {
	page := strings.TrimSpace(in.Page)
	if page == "" {
		return validation("Page is required")
	}
	if in.TimeSpent == nil {
		return validation("Time spent is required")
	}
	spent := *in.TimeSpent
	if spent < 0 || math.IsNaN(spent) || math.IsInf(spent, 0) {
		return validation("Time spent must be a non-negative number")
	}
	err := s.repo.RecordTimeSpent(ctx, &models.TimeSpent{
		Page:      page,
		TimeSpent: spent,
		Timestamp: s.timestamp(in.Timestamp),
		SessionID: in.SessionID,
	})
	if err != nil {
		return upstream("record time spent", err)
	}
	return nil
}

// PageStats returns visit count and time totals for one page. The average
// is rounded to the nearest second and is 0 when no time was recorded.
func (s *Analytics) PageStats(ctx context.Context, page string) (*PageStats, error) {
	totals, err := s.repo.PageTotals(ctx, page)
	if err != nil {
		return nil, upstream("page totals", err)
	}
	stats := &PageStats{
		Page:           page,
		TotalVisits:    totals.Visits,
		TotalTimeSpent: totals.TotalTime,
	}
	if totals.TimeEvents > 0 {
		stats.AverageTimeSpent = int64(math.Floor(totals.TotalTime/float64(totals.TimeEvents) + 0.5))
	}
	return stats, nil
}

// AllStats groups visits and time events by page.
func (s *Analytics) AllStats(ctx context.Context) (*Stats, error) {
	visits, err := s.repo.VisitCounts(ctx)
	if err != nil {
		return nil, upstream("visit counts", err)
	}
	times, err := s.repo.TimeStats(ctx)
	if err != nil {
		return nil, upstream("time stats", err)
	}
	if visits == nil {
		visits = []models.VisitCount{}
	}
	if times == nil {
		times = []models.TimeStat{}
	}
	return &Stats{Visits: visits, TimeStats: times}, nil
}
