package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"blogdesk/internal/models"
)

func TestNewsStoreLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewNewsStore(db)
	ctx := context.Background()

	item, err := s.Create(ctx, &models.NewsItem{
		Headline: uniqueName("Headline"),
		Image:    "https://cdn.example.com/blogs/" + uuid.NewString() + ".jpg",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM news_carousel WHERE id = $1", item.ID) })

	items, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	var listed bool
	for _, n := range items {
		listed = listed || n.ID == item.ID
	}
	if !listed {
		t.Error("expected created item in active list")
	}

	deleted, err := s.Delete(ctx, item.ID)
	if err != nil || deleted == nil {
		t.Fatalf("Delete: %v, %v", deleted, err)
	}
	if deleted.Image != item.Image {
		t.Errorf("deleted image: got %q, want %q", deleted.Image, item.Image)
	}

	gone, err := s.Delete(ctx, item.ID)
	if err != nil || gone != nil {
		t.Errorf("second Delete = %v, %v; want nil, nil", gone, err)
	}
}
