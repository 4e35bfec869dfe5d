package service

import (
	"context"

	"blogdesk/internal/models"
)

// News manages the headline carousel on the home page.
type News struct {
	repo   NewsRepo
	images ImageStore
}

// NewNews returns a news carousel service.
func NewNews(repo NewsRepo, images ImageStore) *News {
	return &News{repo: repo, images: images}
}

// List returns active carousel items, newest first.
func (s *News) List(ctx context.Context) ([]models.NewsItem, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, upstream("list news items", err)
	}
	return items, nil
}

// Create validates the headline and image, uploads the image and stores
// the item.
func (s *News) Create(ctx context.Context, actor *Actor, headline string, image []byte) (*models.NewsItem, error) {
	if err := requireEditor(actor); err != nil {
		return nil, err
	}
	if headline == "" {
		return nil, validation("Headline is required")
	}
	if len(image) == 0 {
		return nil, validation("Image is required")
	}
	img, err := prepareImage(image)
	if err != nil {
		return nil, err
	}
	headline = trimText(headline)
	if !lengthBetween(headline, 1, maxHeadlineLen) {
		return nil, validation("Headline must be between 1 and 200 characters")
	}

	url, err := s.images.Upload(ctx, img)
	if err != nil {
		return nil, upstream("upload news image", err)
	}
	item, err := s.repo.Create(ctx, &models.NewsItem{Headline: headline, Image: url, IsActive: true})
	if err != nil {
		discardImage(ctx, s.images, url)
		return nil, upstream("create news item", err)
	}
	return item, nil
}

// Delete removes an item and then its image on a best-effort basis.
func (s *News) Delete(ctx context.Context, actor *Actor, id string) error {
	if err := requireEditor(actor); err != nil {
		return err
	}
	nid, ok := parseID(id)
	if !ok {
		return notFound("News carousel item not found")
	}
	item, err := s.repo.Delete(ctx, nid)
	if err != nil {
		return upstream("delete news item", err)
	}
	if item == nil {
		return notFound("News carousel item not found")
	}
	discardImage(ctx, s.images, item.Image)
	return nil
}
