package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blogdesk/internal/imaging"
)

func TestNewKey(t *testing.T) {
	key := NewKey("/blogs/", ".png")
	if !strings.HasPrefix(key, "blogs/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("unexpected key %q", key)
	}
	if len(key) != len("blogs/")+36+len(".png") {
		t.Errorf("expected uuid-based name, got %q", key)
	}
}

func TestNewS3WithoutConfig(t *testing.T) {
	c, err := NewS3("", "us-east-1", "", "", "bucket", "", "blogs")
	if err != nil || c != nil {
		t.Errorf("expected (nil, nil) without endpoint, got (%v, %v)", c, err)
	}

	if _, err := NewS3("http://s3.local", "us-east-1", "ak", "sk", "", "", "blogs"); err == nil {
		t.Error("expected error without bucket")
	}
}

func TestStoresRejectEmptyFolder(t *testing.T) {
	for _, folder := range []string{"", "/", "///"} {
		if _, err := NewS3("http://s3.local", "us-east-1", "ak", "sk", "media", "", folder); !errors.Is(err, ErrNoFolder) {
			t.Errorf("NewS3 folder %q: expected ErrNoFolder, got %v", folder, err)
		}
		dir := t.TempDir()
		if _, err := NewDisk(dir, "", folder); !errors.Is(err, ErrNoFolder) {
			t.Errorf("NewDisk folder %q: expected ErrNoFolder, got %v", folder, err)
		}
	}
}

func TestS3FileURLAndExtractKey(t *testing.T) {
	direct, err := NewS3("http://s3.local:9000/", "us-east-1", "ak", "sk", "media", "", "blogs")
	if err != nil {
		t.Fatal(err)
	}
	cdn, err := NewS3("http://s3.local:9000", "us-east-1", "ak", "sk", "media", "https://cdn.example.com/", "blogs")
	if err != nil {
		t.Fatal(err)
	}

	key := "blogs/0b0f6c0e-1f7e-4a53-9d55-1b8f5a1b2c3d.jpg"

	tests := []struct {
		name    string
		client  *S3
		url     string
		wantKey string
		wantOK  bool
	}{
		{"path style", direct, direct.FileURL(key), key, true},
		{"cdn url", cdn, cdn.FileURL(key), key, true},
		{"cdn client accepts path style", cdn, "http://s3.local:9000/media/" + key, key, true},
		{"other host", direct, "https://elsewhere.com/media/" + key, "", false},
		{"other folder", direct, "http://s3.local:9000/media/avatars/x.jpg", "", false},
		{"nested path", direct, "http://s3.local:9000/media/blogs/a/b.jpg", "", false},
		{"traversal", direct, "http://s3.local:9000/media/blogs/..", "", false},
		{"folder only", direct, "http://s3.local:9000/media/blogs/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.client.ExtractKey(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ExtractKey(%q) ok = %v, want %v", tt.url, ok, tt.wantOK)
			}
			if ok && got != tt.wantKey {
				t.Errorf("key: got %q, want %q", got, tt.wantKey)
			}
		})
	}

	if got := direct.FileURL(key); got != "http://s3.local:9000/media/"+key {
		t.Errorf("FileURL path style: got %q", got)
	}
}

func TestS3DeleteForeignURL(t *testing.T) {
	c, _ := NewS3("http://s3.local:9000", "us-east-1", "ak", "sk", "media", "", "blogs")
	err := c.Delete(context.Background(), "https://res.cloudinary.com/demo/image/upload/x.jpg")
	if !errors.Is(err, ErrForeignURL) {
		t.Errorf("expected ErrForeignURL, got %v", err)
	}
}

func TestDiskUploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDisk(dir, "http://localhost:8080/", "blogs")
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	ctx := context.Background()

	url, err := d.Upload(ctx, &imaging.Image{Data: []byte("png-bytes"), ContentType: "image/png", Ext: ".png"})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/blogs/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	key := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	path := filepath.Join(dir, filepath.FromSlash(key))
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("stored file: %q, %v", data, err)
	}

	if err := d.Delete(ctx, url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected file removed")
	}

	// Deleting twice is fine.
	if err := d.Delete(ctx, url); err != nil {
		t.Errorf("second Delete: %v", err)
	}

	if err := d.Delete(ctx, "http://localhost:8080/uploads/../secret"); !errors.Is(err, ErrForeignURL) {
		t.Errorf("traversal: expected ErrForeignURL, got %v", err)
	}
}
