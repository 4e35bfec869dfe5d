// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"blogdesk/internal/service"
)

// Analytics serves /api/analytics.
type Analytics struct {
	svc *service.Analytics
}

// NewAnalytics creates the analytics handlers.
func NewAnalytics(svc *service.Analytics) *Analytics {
	return &Analytics{svc: svc}
}

// RecordVisit appends a page-visit event.
func (h *Analytics) RecordVisit(w http.ResponseWriter, r *http.Request) {
	var in service.VisitInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.UserAgent == "" {
		in.UserAgent = r.UserAgent()
	}
	if err := h.svc.RecordVisit(r.Context(), in); err != nil {
		respondError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Page visit tracked successfully")
}

// RecordTimeSpent appends a time-on-page event.
func (h *Analytics) RecordTimeSpent(w http.ResponseWriter, r *http.Request) {
	var in service.TimeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.svc.RecordTimeSpent(r.Context(), in); err != nil {
		respondError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Time spent tracked successfully")
}

// Stats returns per-page groups over all pages, or a single page's stats
// when ?page= is given.
func (h *Analytics) Stats(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("page") {
		h.pageStats(w, r, r.URL.Query().Get("page"))
		return
	}
	stats, err := h.svc.AllStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// PageStats returns one page's stats. The page is the rest of the path,
// so /api/analytics/stats/blog%2F42 asks for "blog/42".
func (h *Analytics) PageStats(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "*")
	// chi routes on RawPath when it is set, leaving the wildcard escaped.
	if r.URL.RawPath != "" {
		var err error
		if page, err = url.PathUnescape(page); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid page")
			return
		}
	}
	h.pageStats(w, r, page)
}

func (h *Analytics) pageStats(w http.ResponseWriter, r *http.Request, page string) {
	stats, err := h.svc.PageStats(r.Context(), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
