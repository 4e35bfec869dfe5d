// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging validates uploaded images and fits raster images into the
// bounding box used by the public site. Formats the standard library and
// x/image can decode are downscaled when larger than the box; other
// accepted formats (SVG, AVIF, HEIC, ICO) are stored as uploaded.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxUploadSize is the maximum accepted image size (5 MB).
	MaxUploadSize = 5 << 20

	// MaxWidth and MaxHeight bound stored images; larger images are
	// scaled down preserving aspect ratio, smaller ones are left alone.
	MaxWidth  = 1200
	MaxHeight = 800

	// jpegQuality is used when a resized image is re-encoded as JPEG.
	jpegQuality = 85

	// maxImagePixels caps the number of pixels to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	maxImagePixels = 100_000_000
)

var (
	// ErrEmpty is returned for a zero-length upload.
	ErrEmpty = errors.New("image is empty")
	// ErrTooLarge is returned when the upload exceeds MaxUploadSize.
	ErrTooLarge = errors.New("image exceeds the 5 MB limit")
	// ErrUnsupportedType is returned for anything outside the allow-list.
	ErrUnsupportedType = errors.New("only image files are allowed (jpeg, jpg, png, webp, gif, avif, bmp, tiff, svg, ico, heic, heif)")
)

// allowedTypes lists accepted MIME types with the extension used for
// storage. Detect walks it in order, so the first entry of a format is the
// content type it reports.
var allowedTypes = []struct {
	mime, ext string
}{
	{"image/jpeg", ".jpg"},
	{"image/png", ".png"},
	{"image/webp", ".webp"},
	{"image/gif", ".gif"},
	{"image/avif", ".avif"},
	{"image/bmp", ".bmp"},
	{"image/tiff", ".tiff"},
	{"image/svg+xml", ".svg"},
	{"image/x-icon", ".ico"},
	{"image/vnd.microsoft.icon", ".ico"},
	{"image/heic", ".heic"},
	{"image/heic-sequence", ".heic"},
	{"image/heif", ".heif"},
	{"image/heif-sequence", ".heif"},
}

// resizableTypes are decoded and fitted into the bounding box. GIF is
// excluded to preserve animation.
var resizableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
}

// Image is an upload that passed validation and is ready for storage.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int // zero for formats that are not decoded
	Height      int
}

// Size returns the encoded size in bytes.
func (i *Image) Size() int64 {
	return int64(len(i.Data))
}

// Detect sniffs the content type of data and checks it against the
// allow-list without decoding pixels.
func Detect(data []byte) (contentType, ext string, err error) {
	if len(data) == 0 {
		return "", "", ErrEmpty
	}
	if len(data) > MaxUploadSize {
		return "", "", ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	for m := mtype; m != nil; m = m.Parent() {
		// Is also matches the library's aliases for a type.
		for _, t := range allowedTypes {
			if m.Is(t.mime) {
				return t.mime, t.ext, nil
			}
		}
	}
	return "", "", fmt.Errorf("%w: got %s", ErrUnsupportedType, mtype.String())
}

// Prepare validates an upload and, for decodable raster formats, scales it
// down to fit MaxWidth x MaxHeight. Images already inside the box are
// returned byte-for-byte.
func Prepare(data []byte) (*Image, error) {
	contentType, ext, err := Detect(data)
	if err != nil {
		return nil, err
	}

	img := &Image{Data: data, ContentType: contentType, Ext: ext}
	if !resizableTypes[contentType] {
		return img, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("imaging: image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxImagePixels)
	}

	img.Width, img.Height = cfg.Width, cfg.Height
	w, h, ok := FitWithin(cfg.Width, cfg.Height, MaxWidth, MaxHeight)
	if !ok {
		return img, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	// Resize using CatmullRom (high quality).
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if contentType == "image/png" {
		if err := png.Encode(&buf, dst); err != nil {
			return nil, fmt.Errorf("imaging: encode png: %w", err)
		}
	} else {
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("imaging: encode jpeg: %w", err)
		}
		img.ContentType = "image/jpeg"
		img.Ext = ".jpg"
	}

	img.Data = buf.Bytes()
	img.Width, img.Height = w, h
	return img, nil
}

// FitWithin returns the largest dimensions with the same aspect ratio as
// width x height that fit inside maxW x maxH. ok is false when the image
// already fits and no resize is needed.
func FitWithin(width, height, maxW, maxH int) (w, h int, ok bool) {
	if width <= maxW && height <= maxH {
		return width, height, false
	}

	ratio := min(float64(maxW)/float64(width), float64(maxH)/float64(height))
	w = max(1, int(float64(width)*ratio+0.5))
	h = max(1, int(float64(height)*ratio+0.5))
	return min(w, maxW), min(h, maxH), true
}
