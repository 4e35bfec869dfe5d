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

// News serves /api/news-carousel.
type News struct {
	svc *service.News
}

// NewNews creates the news carousel handlers.
func NewNews(svc *service.News) *News {
	return &News{svc: svc}
}

// List returns the active carousel items.
func (h *News) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if items == nil {
		items = []models.NewsItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"newsCarousel": items})
}

// Create adds an item from a multipart form with "headline" and "image".
func (h *News) Create(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r) {
		return
	}
	image, err := formImage(r, "image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	item, err := h.svc.Create(r.Context(), middleware.ActorFromCtx(r.Context()), r.FormValue("headline"), image)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"newsCarousel": item, "message": "Successfully Added"})
}

// Delete removes an item and its image.
func (h *News) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), middleware.ActorFromCtx(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
