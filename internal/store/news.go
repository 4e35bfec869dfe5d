// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"blogdesk/internal/models"
)

// NewsStore manages news carousel items.
type NewsStore struct {
	db *sql.DB
}

// NewNewsStore creates a new NewsStore.
func NewNewsStore(db *sql.DB) *NewsStore {
	return &NewsStore{db: db}
}

const newsColumns = `id, headline, image, is_active, created_at, updated_at`

func scanNews(scanner rowScanner) (*models.NewsItem, error) {
	var n models.NewsItem
	if err := scanner.Scan(&n.ID, &n.Headline, &n.Image, &n.IsActive, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListActive returns active carousel items, newest first.
func (s *NewsStore) ListActive(ctx context.Context) ([]models.NewsItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+newsColumns+` FROM news_carousel
		WHERE is_active
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list news items: %w", err)
	}
	defer rows.Close()

	var items []models.NewsItem
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("scan news item: %w", err)
		}
		items = append(items, *n)
	}
	return items, rows.Err()
}

// Create inserts a carousel item.
func (s *NewsStore) Create(ctx context.Context, n *models.NewsItem) (*models.NewsItem, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO news_carousel (headline, image, is_active)
		VALUES ($1, $2, $3)
		RETURNING `+newsColumns,
		n.Headline, n.Image, n.IsActive,
	)
	created, err := scanNews(row)
	if err != nil {
		return nil, wrapWrite("create news item", err)
	}
	return created, nil
}

// Delete removes a carousel item and returns it. Returns nil if not found.
func (s *NewsStore) Delete(ctx context.Context, id uuid.UUID) (*models.NewsItem, error) {
	row := s.db.QueryRowContext(ctx,
		`DELETE FROM news_carousel WHERE id = $1 RETURNING `+newsColumns, id)
	n, err := scanNews(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete news item: %w", err)
	}
	return n, nil
}
