// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Blog is an article published under exactly one category. Image holds the
// public URL returned by the image store.
type Blog struct {
	ID              uuid.UUID    `json:"id"`
	CategoryID      uuid.UUID    `json:"-"`
	Category        *CategoryRef `json:"categoryId"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	DescriptionHTML string       `json:"descriptionHtml,omitempty"`
	Image           string       `json:"image"`
	Author          string       `json:"author"`
	Date            time.Time    `json:"date"`
	IsActive        bool         `json:"isActive"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// PinList names one of the curated blog lists used for featured placement.
type PinList string

const (
	PinListMain     PinList = "main"
	PinListTrending PinList = "trending"
)

// Label returns the human-readable list name used in messages.
func (l PinList) Label() string {
	switch l {
	case PinListMain:
		return "main stories"
	case PinListTrending:
		return "trending stories"
	default:
		return string(l) + " stories"
	}
}

// PinEntry references a blog from a pin list. A blog appears at most once
// per list; CreatedAt gives the display order (newest first).
type PinEntry struct {
	ID        uuid.UUID `json:"id"`
	BlogID    uuid.UUID `json:"blogId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewsItem is a headline with an image shown in the homepage carousel.
type NewsItem struct {
	ID        uuid.UUID `json:"id"`
	Headline  string    `json:"headline"`
	Image     string    `json:"image"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
