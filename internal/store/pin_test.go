// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogdesk/internal/models"
)

func TestPinStoreLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	cat := createTestCategory(t, db)

	for _, list := range []models.PinList{models.PinListMain, models.PinListTrending} {
		t.Run(string(list), func(t *testing.T) {
			s := NewPinStore(db, list)
			b := createTestBlog(t, db, cat.ID, time.Now())

			entry, err := s.Add(ctx, b.ID)
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if entry.BlogID != b.ID {
				t.Errorf("entry blog id: got %s, want %s", entry.BlogID, b.ID)
			}

			if _, err := s.Add(ctx, b.ID); !errors.Is(err, ErrDuplicate) {
				t.Errorf("second Add: expected ErrDuplicate, got %v", err)
			}

			exists, err := s.Exists(ctx, b.ID)
			if err != nil || !exists {
				t.Errorf("Exists = %v, %v; want true", exists, err)
			}

			blogs, err := s.ListBlogs(ctx)
			if err != nil {
				t.Fatalf("ListBlogs: %v", err)
			}
			count := 0
			for _, pinned := range blogs {
				if pinned.ID == b.ID {
					count++
				}
			}
			if count != 1 {
				t.Errorf("expected blog listed once, got %d", count)
			}

			removed, err := s.Remove(ctx, b.ID)
			if err != nil || !removed {
				t.Errorf("Remove = %v, %v; want true", removed, err)
			}
			removed, err = s.Remove(ctx, b.ID)
			if err != nil || removed {
				t.Errorf("second Remove = %v, %v; want false", removed, err)
			}
		})
	}
}

func TestPinStoreSkipsDeletedBlogs(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	cat := createTestCategory(t, db)
	s := NewPinStore(db, models.PinListMain)

	b := createTestBlog(t, db, cat.ID, time.Now())
	if _, err := s.Add(ctx, b.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := NewBlogStore(db).Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete blog: %v", err)
	}

	blogs, err := s.ListBlogs(ctx)
	if err != nil {
		t.Fatalf("ListBlogs: %v", err)
	}
	for _, pinned := range blogs {
		if pinned.ID == b.ID {
			t.Error("deleted blog must not appear in the pin list")
		}
	}
}

func TestNewPinStoreUnknownList(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown pin list")
		}
	}()
	NewPinStore(nil, models.PinList("sidebar"))
}
