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

// pinTables maps each pin list to its table. Table names never come from
// user input, so interpolating them into queries is safe.
var pinTables = map[models.PinList]string{
	models.PinListMain:     "main_stories",
	models.PinListTrending: "trending_stories",
}

// PinStore manages one curated pin list (main or trending stories).
type PinStore struct {
	db    *sql.DB
	table string
}

// NewPinStore returns a PinStore for the given list. It panics on an
// unknown list since that is a programming error.
func NewPinStore(db *sql.DB, list models.PinList) *PinStore {
	table, ok := pinTables[list]
	if !ok {
		panic(fmt.Sprintf("store: unknown pin list %q", list))
	}
	return &PinStore{db: db, table: table}
}

// ListBlogs returns the pinned blogs, most recently pinned first. Entries
// whose blog has been deleted are skipped by the inner join.
func (s *PinStore) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blogColumns+`
		FROM `+s.table+` p
		JOIN blogs b ON b.id = p.blog_id`+blogJoin+`
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table, err)
	}
	return scanBlogs(rows)
}

// Exists reports whether blogID is already pinned.
func (s *PinStore) Exists(ctx context.Context, blogID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+s.table+` WHERE blog_id = $1)`, blogID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s entry: %w", s.table, err)
	}
	return exists, nil
}

// Add pins a blog. A second pin of the same blog returns an error wrapping
// ErrDuplicate from the blog_id unique index.
func (s *PinStore) Add(ctx context.Context, blogID uuid.UUID) (*models.PinEntry, error) {
	var e models.PinEntry
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO `+s.table+` (blog_id) VALUES ($1)
		RETURNING id, blog_id, created_at, updated_at
	`, blogID).Scan(&e.ID, &e.BlogID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, wrapWrite("add "+s.table+" entry", err)
	}
	return &e, nil
}

// Remove unpins a blog and reports whether an entry existed.
func (s *PinStore) Remove(ctx context.Context, blogID uuid.UUID) (bool, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM `+s.table+` WHERE blog_id = $1 RETURNING id`, blogID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove %s entry: %w", s.table, err)
	}
	return true, nil
}
