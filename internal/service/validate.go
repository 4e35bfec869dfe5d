package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"blogdesk/internal/imaging"
)

// Field limits, counted in characters after trimming.
const (
	maxCategoryNameLen = 40
	maxTitleLen        = 200
	minDescriptionLen  = 10
	maxDescriptionLen  = 5000
	maxAuthorLen       = 100
	maxHeadlineLen     = 200
)

// Accepted layouts for a blog's date field.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// collapseSpace trims s and collapses internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// trimText trims surrounding whitespace but keeps line breaks inside.
func trimText(s string) string {
	return strings.TrimSpace(s)
}

// lengthBetween reports whether s has between min and max characters.
func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseID parses an identifier, treating malformed input as absent.
func parseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// prepareImage validates an upload and fits it into the bounding box.
func prepareImage(data []byte) (*imaging.Image, error) {
	img, err := imaging.Prepare(data)
	switch {
	case err == nil:
		return img, nil
	case errors.Is(err, imaging.ErrEmpty):
		return nil, validation("Image is required")
	case errors.Is(err, imaging.ErrTooLarge):
		return nil, &Error{Kind: ErrTooLarge, Message: "Image must be 5 MB or smaller"}
	case errors.Is(err, imaging.ErrUnsupportedType):
		return nil, validation("Only image files are allowed (jpeg, jpg, png, webp, gif, avif, bmp, tiff, svg, ico, heic, heif)")
	default:
		return nil, &Error{Kind: ErrValidation, Message: "Image could not be processed", Err: err}
	}
}
