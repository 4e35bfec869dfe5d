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

// Categories serves /api/categories.
type Categories struct {
	svc *service.Categories
}

// NewCategories creates the category handlers.
func NewCategories(svc *service.Categories) *Categories {
	return &Categories{svc: svc}
}

// List returns active categories ordered by name.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), middleware.ActorFromCtx(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": items})
}

// Create adds a category from {"name": "..."}.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name any `json:"name"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	// A non-string name is treated as missing.
	var in service.CategoryInput
	if name, ok := body.Name.(string); ok {
		in.Name = &name
	}
	c, err := h.svc.Create(r.Context(), middleware.ActorFromCtx(r.Context()), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"category": c})
}

// SetActive archives or restores a category from {"isActive": bool}.
func (h *Categories) SetActive(w http.ResponseWriter, r *http.Request) {
	var in struct {
		IsActive *bool `json:"isActive"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.IsActive == nil {
		writeMessage(w, http.StatusBadRequest, "isActive is required")
		return
	}
	c, err := h.svc.SetActive(r.Context(), middleware.ActorFromCtx(r.Context()), chi.URLParam(r, "id"), *in.IsActive)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": c})
}

// Delete hard-deletes a category.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), middleware.ActorFromCtx(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
