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

// BlogStore handles all blog-related database operations. Every read joins
// the category so the caller gets {id, name, slug} without a second query.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore with the given database connection.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

// blogColumns selects a blog joined to its category. The join is a LEFT JOIN
// because category_id is not a foreign key and may dangle.
const blogColumns = `b.id, b.category_id, c.name, c.slug, b.title, b.description,
	b.image, b.author, b.date, b.is_active, b.created_at, b.updated_at`

const blogJoin = ` LEFT JOIN categories c ON c.id = b.category_id`

// scanBlog scans a joined blog row.
func scanBlog(scanner rowScanner) (*models.Blog, error) {
	var (
		b              models.Blog
		catName, catSl sql.NullString
	)
	err := scanner.Scan(
		&b.ID, &b.CategoryID, &catName, &catSl, &b.Title, &b.Description,
		&b.Image, &b.Author, &b.Date, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Category = models.NewCategoryRef(b.CategoryID, nullString(catName), nullString(catSl))
	return &b, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// scanBlogs drains rows into a slice.
func scanBlogs(rows *sql.Rows) ([]models.Blog, error) {
	defer rows.Close()

	var items []models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// ListActive returns active blogs, newest date first.
func (s *BlogStore) ListActive(ctx context.Context) ([]models.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blogColumns+` FROM blogs b`+blogJoin+`
		WHERE b.is_active
		ORDER BY b.date DESC, b.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return scanBlogs(rows)
}

// ListActiveByCategory returns active blogs of one category, newest date first.
func (s *BlogStore) ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blogColumns+` FROM blogs b`+blogJoin+`
		WHERE b.is_active AND b.category_id = $1
		ORDER BY b.date DESC, b.created_at DESC
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list blogs by category: %w", err)
	}
	return scanBlogs(rows)
}

// FindByID retrieves a single blog by its UUID. Returns nil if not found.
func (s *BlogStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs b`+blogJoin+` WHERE b.id = $1`, id)
	b, err := scanBlog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog by id: %w", err)
	}
	return b, nil
}

// Create inserts a new blog and returns it with its category expanded.
func (s *BlogStore) Create(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	row := s.db.QueryRowContext(ctx, `
		WITH b AS (
			INSERT INTO blogs (category_id, title, description, image, author, date, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT `+blogColumns+` FROM b`+blogJoin,
		b.CategoryID, b.Title, b.Description, b.Image, b.Author, b.Date, b.IsActive,
	)
	created, err := scanBlog(row)
	if err != nil {
		return nil, wrapWrite("create blog", err)
	}
	return created, nil
}

// Update replaces every editable field of a blog. Returns nil if the blog
// no longer exists.
func (s *BlogStore) Update(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	row := s.db.QueryRowContext(ctx, `
		WITH b AS (
			UPDATE blogs SET
				category_id = $1, title = $2, description = $3, image = $4,
				author = $5, date = $6, is_active = $7, updated_at = NOW()
			WHERE id = $8
			RETURNING *
		)
		SELECT `+blogColumns+` FROM b`+blogJoin,
		b.CategoryID, b.Title, b.Description, b.Image, b.Author, b.Date, b.IsActive, b.ID,
	)
	updated, err := scanBlog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapWrite("update blog", err)
	}
	return updated, nil
}

// Delete removes a blog and returns the deleted row, so the caller can
// clean up its image. Returns nil if not found.
func (s *BlogStore) Delete(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	row := s.db.QueryRowContext(ctx, `
		WITH b AS (DELETE FROM blogs WHERE id = $1 RETURNING *)
		SELECT `+blogColumns+` FROM b`+blogJoin, id)
	b, err := scanBlog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete blog: %w", err)
	}
	return b, nil
}
