package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"blogdesk/internal/imaging"
)

// URLPrefix is the path under which disk-stored images are served.
const URLPrefix = "/uploads/"

// Disk stores images in a local directory and serves them from
// baseURL + URLPrefix.
type Disk struct {
	dir     string
	folder  string
	baseURL string
}

// NewDisk creates the upload directory if needed and returns a Disk store.
func NewDisk(dir, baseURL, folder string) (*Disk, error) {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return nil, fmt.Errorf("disk: %w", ErrNoFolder)
	}
	if err := os.MkdirAll(filepath.Join(dir, folder), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{dir: dir, folder: folder, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the root directory, for serving files over HTTP.
func (d *Disk) Dir() string {
	return d.dir
}

// Upload writes img to disk and returns its public URL.
func (d *Disk) Upload(ctx context.Context, img *imaging.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := NewKey(d.folder, img.Ext)
	path := filepath.Join(d.dir, filepath.FromSlash(key))
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("write image %s: %w", key, err)
	}
	return d.baseURL + URLPrefix + key, nil
}

// Delete removes the file behind a URL returned by Upload. A file that is
// already gone is not an error.
func (d *Disk) Delete(ctx context.Context, rawURL string) error {
	key, ok := strings.CutPrefix(rawURL, d.baseURL+URLPrefix)
	if !ok || !validKey(key, d.folder) {
		return fmt.Errorf("disk delete %q: %w", rawURL, ErrForeignURL)
	}
	err := os.Remove(filepath.Join(d.dir, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image %s: %w", key, err)
	}
	return nil
}
