// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"blogdesk/internal/models"
)

// AnalyticsStore appends page-visit and time-spent events and aggregates
// them on read. Events are never updated or deleted.
type AnalyticsStore struct {
	db *sql.DB
}

// NewAnalyticsStore creates a new AnalyticsStore.
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// nullIfEmpty stores optional strings as NULL rather than ''.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// RecordVisit appends a page-visit event.
func (s *AnalyticsStore) RecordVisit(ctx context.Context, v *models.PageVisit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO page_visits (page, timestamp, user_agent, session_id)
		VALUES ($1, $2, $3, $4)
	`, v.Page, v.Timestamp, nullIfEmpty(v.UserAgent), nullIfEmpty(v.SessionID))
	if err != nil {
		return fmt.Errorf("record page visit: %w", err)
	}
	return nil
}

// RecordTimeSpent appends a time-on-page event.
func (s *AnalyticsStore) RecordTimeSpent(ctx context.Context, e *models.TimeSpent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO time_spent (page, time_spent, timestamp, session_id)
		VALUES ($1, $2, $3, $4)
	`, e.Page, e.TimeSpent, e.Timestamp, nullIfEmpty(e.SessionID))
	if err != nil {
		return fmt.Errorf("record time spent: %w", err)
	}
	return nil
}

// PageTotals returns the raw visit count, time-event count and summed time
// for one page. Zero values are returned for a page with no events.
func (s *AnalyticsStore) PageTotals(ctx context.Context, page string) (*models.PageTotals, error) {
	var t models.PageTotals
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM page_visits WHERE page = $1),
			(SELECT COUNT(*) FROM time_spent WHERE page = $1),
			(SELECT COALESCE(SUM(time_spent), 0) FROM time_spent WHERE page = $1)
	`, page).Scan(&t.Visits, &t.TimeEvents, &t.TotalTime)
	if err != nil {
		return nil, fmt.Errorf("page totals: %w", err)
	}
	return &t, nil
}

// VisitCounts groups visit events by page.
func (s *AnalyticsStore) VisitCounts(ctx context.Context) ([]models.VisitCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT page, COUNT(*) FROM page_visits GROUP BY page ORDER BY page
	`)
	if err != nil {
		return nil, fmt.Errorf("visit counts: %w", err)
	}
	defer rows.Close()

	var items []models.VisitCount
	for rows.Next() {
		var v models.VisitCount
		if err := rows.Scan(&v.Page, &v.Count); err != nil {
			return nil, fmt.Errorf("scan visit count: %w", err)
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

// TimeStats groups time events by page with average and total time.
func (s *AnalyticsStore) TimeStats(ctx context.Context) ([]models.TimeStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT page, AVG(time_spent), SUM(time_spent)
		FROM time_spent GROUP BY page ORDER BY page
	`)
	if err != nil {
		return nil, fmt.Errorf("time stats: %w", err)
	}
	defer rows.Close()

	var items []models.TimeStat
	for rows.Next() {
		var ts models.TimeStat
		if err := rows.Scan(&ts.Page, &ts.AvgTime, &ts.TotalTime); err != nil {
			return nil, fmt.Errorf("scan time stat: %w", err)
		}
		items = append(items, ts)
	}
	return items, rows.Err()
}
