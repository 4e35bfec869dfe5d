package service

import (
	"context"
	"errors"
	"strings"

	"blogdesk/internal/models"
	"blogdesk/internal/store"
)

// Pins manages one curated pin list. Main stories and trending stories
// share this contract and differ only in list and repository.
type Pins struct {
	list  models.PinList
	repo  PinRepo
	blogs BlogRepo
}

// NewPins returns the service for one pin list.
func NewPins(list models.PinList, repo PinRepo, blogs BlogRepo) *Pins {
	return &Pins{list: list, repo: repo, blogs: blogs}
}

// List returns the pinned blogs, most recently pinned first. Entries
// whose blog was deleted are left out.
func (s *Pins) List(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.repo.ListBlogs(ctx)
	if err != nil {
		return nil, upstream("list "+s.list.Label(), err)
	}
	return blogs, nil
}

// Add pins an existing blog. A blog can be pinned once per list.
func (s *Pins) Add(ctx context.Context, actor *Actor, blogID string) (*models.PinEntry, error) {
	if err := requireEditor(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(blogID) == "" {
		return nil, validation("Blog ID is required")
	}
	id, ok := parseID(blogID)
	if !ok {
		return nil, notFound("Blog not found")
	}
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, upstream("find blog", err)
	}
	if blog == nil {
		return nil, notFound("Blog not found")
	}

	alreadyPinned := conflict("Blog is already in " + s.list.Label())
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, upstream("check "+s.list.Label(), err)
	}
	if exists {
		return nil, alreadyPinned
	}

	entry, err := s.repo.Add(ctx, id)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, alreadyPinned
	}
	if err != nil {
		return nil, upstream("add to "+s.list.Label(), err)
	}
	return entry, nil
}

// Remove unpins a blog.
func (s *Pins) Remove(ctx context.Context, actor *Actor, blogID string) error {
	if err := requireEditor(actor); err != nil {
		return err
	}
	missing := notFound("Blog not found in " + s.list.Label())
	id, ok := parseID(blogID)
	if !ok {
		return missing
	}
	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		return upstream("remove from "+s.list.Label(), err)
	}
	if !removed {
		return missing
	}
	return nil
}

// AddedMessage is the confirmation shown after a successful Add.
func (s *Pins) AddedMessage() string {
	return "Added to " + s.list.Label()
}

// Kind returns which pin list this service manages.
func (s *Pins) Kind() models.PinList {
	return s.list
}
