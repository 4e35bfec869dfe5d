package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"blogdesk/internal/imaging"
	"blogdesk/internal/markdown"
	"blogdesk/internal/models"
)

// Blogs manages blog posts and their images.
type Blogs struct {
	repo       BlogRepo
	categories CategoryRepo
	images     ImageStore
}

// NewBlogs returns a blog service.
func NewBlogs(repo BlogRepo, categories CategoryRepo, images ImageStore) *Blogs {
	return &Blogs{repo: repo, categories: categories, images: images}
}

// BlogInput carries the text fields of a create or update, exactly as the
// client sent them. IsActive is optional and defaults to true on create
// and to the current value on update.
type BlogInput struct {
	CategoryID  string
	Title       string
	Description string
	Author      string
	Date        string
	IsActive    *bool
}

func (in *BlogInput) missingField() bool {
	return in.CategoryID == "" || in.Title == "" || in.Description == "" || in.Author == "" || in.Date == ""
}

// blogFields is a validated BlogInput.
type blogFields struct {
	categoryID  uuid.UUID
	title       string
	description string
	author      string
	date        time.Time
}

// validate checks category existence, field bounds and the date, in that
// order, returning the first failure.
func (s *Blogs) validate(ctx context.Context, in *BlogInput) (*blogFields, error) {
	cid, ok := parseID(in.CategoryID)
	if !ok {
		return nil, validation("Invalid category")
	}
	cat, err := s.categories.FindByID(ctx, cid)
	if err != nil {
		return nil, upstream("find category", err)
	}
	if cat == nil {
		return nil, validation("Invalid category")
	}

	f := &blogFields{
		categoryID:  cid,
		title:       trimText(in.Title),
		description: trimText(in.Description),
		author:      trimText(in.Author),
	}
	if !lengthBetween(f.title, 1, maxTitleLen) {
		return nil, validation("Title must be between 1 and 200 characters")
	}
	if !lengthBetween(f.description, minDescriptionLen, maxDescriptionLen) {
		return nil, validation("Description must be between 10 and 5000 characters")
	}
	if !lengthBetween(f.author, 1, maxAuthorLen) {
		return nil, validation("Author must be between 1 and 100 characters")
	}
	date, ok := parseDate(trimText(in.Date))
	if !ok {
		return nil, validation("Invalid date")
	}
	f.date = date
	return f, nil
}

// List returns active blogs, newest first.
func (s *Blogs) List(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, upstream("list blogs", err)
	}
	return blogs, nil
}

// ListByCategorySlug returns the category and its active blogs, newest first.
func (s *Blogs) ListByCategorySlug(ctx context.Context, categorySlug string) ([]models.Blog, *models.Category, error) {
	cat, err := s.categories.FindBySlug(ctx, normalizeSlug(categorySlug))
	if err != nil {
		return nil, nil, upstream("find category by slug", err)
	}
	if cat == nil {
		return nil, nil, notFound("Category not found")
	}
	blogs, err := s.repo.ListActiveByCategory(ctx, cat.ID)
	if err != nil {
		return nil, nil, upstream("list blogs by category", err)
	}
	return blogs, cat, nil
}

// Get returns one blog with its description rendered to HTML.
func (s *Blogs) Get(ctx context.Context, id string) (*models.Blog, error) {
	bid, ok := parseID(id)
	if !ok {
		return nil, notFound("Blog not found")
	}
	b, err := s.repo.FindByID(ctx, bid)
	if err != nil {
		return nil, upstream("find blog", err)
	}
	if b == nil {
		return nil, notFound("Blog not found")
	}

	html, err := markdown.ToHTML(b.Description)
	if err != nil {
		slog.Warn("render blog description failed", "blog_id", b.ID, "error", err)
	} else {
		b.DescriptionHTML = html
	}
	return b, nil
}

// Create validates everything, then uploads the image, then stores the
// blog. No image is uploaded for a request that fails validation, and the
// image is removed again if the insert fails.
func (s *Blogs) Create(ctx context.Context, actor *Actor, in BlogInput, image []byte) (*models.Blog, error) {
	if err := requireEditor(actor); err != nil {
		return nil, err
	}
	if in.missingField() {
		return nil, validation("All fields are required")
	}
	if len(image) == 0 {
		return nil, validation("Image is required")
	}
	img, err := prepareImage(image)
	if err != nil {
		return nil, err
	}
	f, err := s.validate(ctx, &in)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Upload(ctx, img)
	if err != nil {
		return nil, upstream("upload blog image", err)
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	b, err := s.repo.Create(ctx, &models.Blog{
		CategoryID:  f.categoryID,
		Title:       f.title,
		Description: f.description,
		Image:       url,
		Author:      f.author,
		Date:        f.date,
		IsActive:    active,
	})
	if err != nil {
		s.discardImage(ctx, url)
		return nil, upstream("create blog", err)
	}
	return b, nil
}

// Update replaces a blog's fields and, when image is non-empty, its image.
// The old image is removed only after the new record is stored.
func (s *Blogs) Update(ctx context.Context, actor *Actor, id string, in BlogInput, image []byte) (*models.Blog, error) {
	if err := requireEditor(actor); err != nil {
		return nil, err
	}
	bid, ok := parseID(id)
	if !ok {
		return nil, notFound("Blog not found")
	}
	current, err := s.repo.FindByID(ctx, bid)
	if err != nil {
		return nil, upstream("find blog", err)
	}
	if current == nil {
		return nil, notFound("Blog not found")
	}

	if in.missingField() {
		return nil, validation("All fields are required")
	}
	var img *imaging.Image
	if len(image) > 0 {
		if img, err = prepareImage(image); err != nil {
			return nil, err
		}
	}
	f, err := s.validate(ctx, &in)
	if err != nil {
		return nil, err
	}

	next := *current
	next.CategoryID = f.categoryID
	next.Title = f.title
	next.Description = f.description
	next.Author = f.author
	next.Date = f.date
	if in.IsActive != nil {
		next.IsActive = *in.IsActive
	}

	var newURL string
	if img != nil {
		if newURL, err = s.images.Upload(ctx, img); err != nil {
			return nil, upstream("upload blog image", err)
		}
		next.Image = newURL
	}

	updated, err := s.repo.Update(ctx, &next)
	if err != nil || updated == nil {
		s.discardImage(ctx, newURL)
		if err != nil {
			return nil, upstream("update blog", err)
		}
		return nil, notFound("Blog not found")
	}

	if newURL != "" && current.Image != newURL {
		s.discardImage(ctx, current.Image)
	}
	return updated, nil
}

// Delete removes a blog, then its image on a best-effort basis.
func (s *Blogs) Delete(ctx context.Context, actor *Actor, id string) error {
	if err := requireEditor(actor); err != nil {
		return err
	}
	bid, ok := parseID(id)
	if !ok {
		return notFound("Blog not found")
	}
	b, err := s.repo.Delete(ctx, bid)
	if err != nil {
		return upstream("delete blog", err)
	}
	if b == nil {
		return notFound("Blog not found")
	}
	s.discardImage(ctx, b.Image)
	return nil
}

// discardImage deletes an image without failing the caller. It runs even
// if the request context was cancelled after the record write.
func (s *Blogs) discardImage(ctx context.Context, url string) {
	discardImage(ctx, s.images, url)
}

func discardImage(ctx context.Context, images ImageStore, url string) {
	if url == "" {
		return
	}
	if err := images.Delete(context.WithoutCancel(ctx), url); err != nil {
		slog.Warn("best-effort image delete failed", "url", url, "error", err)
	}
}
