// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogdesk/internal/middleware"
	"blogdesk/internal/models"
	"blogdesk/internal/service"
)

// Pins serves one pin list: /api/main-stories or /api/trending-stories.
type Pins struct {
	svc     *service.Pins
	listKey string // response key of the list, e.g. "mainStories"
	itemKey string // response key of an added entry, e.g. "mainStory"
}

// NewPins creates the handlers for the pin list managed by svc.
func NewPins(svc *service.Pins) *Pins {
	h := &Pins{svc: svc, listKey: "mainStories", itemKey: "mainStory"}
	if svc.Kind() == models.PinListTrending {
		h.listKey, h.itemKey = "trendingStories", "trendingStory"
	}
	return h
}

// List returns the pinned blogs.
func (h *Pins) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{h.listKey: nonNil(blogs)})
}

// Add pins the blog named by {"blogId": "..."}.
func (h *Pins) Add(w http.ResponseWriter, r *http.Request) {
	var in struct {
		BlogID string `json:"blogId"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	entry, err := h.svc.Add(r.Context(), middleware.ActorFromCtx(r.Context()), in.BlogID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": h.svc.AddedMessage(), h.itemKey: entry})
}

// Remove unpins a blog.
func (h *Pins) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), middleware.ActorFromCtx(r.Context()), chi.URLParam(r, "blogId")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
