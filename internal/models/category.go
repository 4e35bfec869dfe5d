// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MissingCategoryName is shown for blogs whose category has been deleted.
const MissingCategoryName = "N/A"

// Category groups blogs on the public site. The slug is derived from the
// name once, at creation time, and never recomputed.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Ref returns the expanded reference embedded in blog responses.
func (c *Category) Ref() *CategoryRef {
	return &CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// CategoryRef is the category as seen from a blog: only the fields the
// public pages render.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug,omitempty"`
}

// NewCategoryRef builds a reference from a (possibly outer-joined) row.
// A nil name means the category no longer exists.
func NewCategoryRef(id uuid.UUID, name, slug *string) *CategoryRef {
	ref := &CategoryRef{ID: id, Name: MissingCategoryName}
	if name != nil {
		ref.Name = *name
	}
	if slug != nil {
		ref.Slug = *slug
	}
	return ref
}
