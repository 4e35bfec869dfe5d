// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blogdesk/internal/middleware"
	"blogdesk/internal/models"
	"blogdesk/internal/service"
)

// Blogs serves /api/blogs.
type Blogs struct {
	svc *service.Blogs
}

// NewBlogs creates the blog handlers.
func NewBlogs(svc *service.Blogs) *Blogs {
	return &Blogs{svc: svc}
}

// List returns active blogs, newest first.
func (h *Blogs) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blogs": nonNil(blogs)})
}

// ListByCategory returns the active blogs of the category with the slug.
func (h *Blogs) ListByCategory(w http.ResponseWriter, r *http.Request) {
	blogs, cat, err := h.svc.ListByCategorySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"blogs":    nonNil(blogs),
		"category": map[string]string{"name": cat.Name, "slug": cat.Slug},
	})
}

// Get returns one blog.
func (h *Blogs) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blog": b})
}

// Create adds a blog from a multipart form with an "image" file.
func (h *Blogs) Create(w http.ResponseWriter, r *http.Request) {
	in, image, ok := readBlogForm(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Create(r.Context(), middleware.ActorFromCtx(r.Context()), in, image)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"blog": b, "message": "Blog created successfully"})
}

// Update replaces a blog from a multipart form; the image is optional.
func (h *Blogs) Update(w http.ResponseWriter, r *http.Request) {
	in, image, ok := readBlogForm(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Update(r.Context(), middleware.ActorFromCtx(r.Context()), chi.URLParam(r, "id"), in, image)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blog": b, "message": "Blog updated successfully"})
}

// Delete removes a blog and its image.
func (h *Blogs) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), middleware.ActorFromCtx(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func nonNil(blogs []models.Blog) []models.Blog {
	if blogs == nil {
		return []models.Blog{}
	}
	return blogs
}

// readBlogForm parses the blog form fields and image.
func readBlogForm(w http.ResponseWriter, r *http.Request) (service.BlogInput, []byte, bool) {
	if !parseMultipart(w, r) {
		return service.BlogInput{}, nil, false
	}
	in := service.BlogInput{
		CategoryID:  r.FormValue("categoryId"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Author:      r.FormValue("author"),
		Date:        r.FormValue("date"),
	}
	if raw := r.FormValue("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "isActive must be true or false")
			return in, nil, false
		}
		in.IsActive = &active
	}
	image, err := formImage(r, "image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid form data")
		return in, nil, false
	}
	return in, image, true
}
