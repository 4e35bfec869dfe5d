package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogdesk/internal/models"
	"blogdesk/internal/store"
)

func newCategory(t *testing.T, db *DB, name, slug string) *models.Category {
	t.Helper()
	c, err := db.Categories().Create(context.Background(), &models.Category{Name: name, Slug: slug, IsActive: true})
	require.NoError(t, err)
	return c
}

func newBlog(t *testing.T, db *DB, categoryID uuid.UUID, date time.Time) *models.Blog {
	t.Helper()
	b, err := db.Blogs().Create(context.Background(), &models.Blog{
		CategoryID:  categoryID,
		Title:       "Title",
		Description: "Some description",
		Image:       "https://cdn.example.com/blogs/x.png",
		Author:      "A",
		Date:        date,
		IsActive:    true,
	})
	require.NoError(t, err)
	return b
}

func TestCategoryStore_UniqueConstraints(t *testing.T) {
	db := New()
	ctx := context.Background()
	cats := db.Categories()

	travel := newCategory(t, db, "Travel", "travel")

	_, err := cats.Create(ctx, &models.Category{Name: "Other", Slug: "travel", IsActive: true})
	assert.ErrorIs(t, err, store.ErrDuplicate, "slug must be unique")

	_, err = cats.Create(ctx, &models.Category{Name: "TRAVEL", Slug: "travel-1", IsActive: true})
	assert.ErrorIs(t, err, store.ErrDuplicate, "active name must be unique ignoring case")

	_, err = cats.SetActive(ctx, travel.ID, false)
	require.NoError(t, err)

	again, err := cats.Create(ctx, &models.Category{Name: "travel", Slug: "travel-1", IsActive: true})
	require.NoError(t, err, "archived name is free again")

	_, err = cats.SetActive(ctx, travel.ID, true)
	assert.ErrorIs(t, err, store.ErrDuplicate, "restore collides with the new active category")

	found, err := cats.FindActiveByName(ctx, "TRAVEL")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, again.ID, found.ID)

	exists, err := cats.SlugExists(ctx, "travel")
	require.NoError(t, err)
	assert.True(t, exists, "archived categories keep their slug")
}

func TestCategoryStore_ListActiveSorted(t *testing.T) {
	db := New()
	ctx := context.Background()

	newCategory(t, db, "Travel", "travel")
	newCategory(t, db, "Health", "health")
	tech := newCategory(t, db, "Tech", "tech")
	_, err := db.Categories().SetActive(ctx, tech.ID, false)
	require.NoError(t, err)

	list, err := db.Categories().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Health", list[0].Name)
	assert.Equal(t, "Travel", list[1].Name)
}

func TestCategoryStore_DeleteLeavesDanglingBlogs(t *testing.T) {
	db := New()
	ctx := context.Background()

	cat := newCategory(t, db, "Sports", "sports")
	b := newBlog(t, db, cat.ID, time.Now())

	deleted, err := db.Categories().Delete(ctx, cat.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := db.Blogs().FindByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, models.MissingCategoryName, found.Category.Name)
	assert.Equal(t, cat.ID, found.Category.ID)

	deleted, err = db.Categories().Delete(ctx, cat.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestBlogStore_ListOrderAndFilter(t *testing.T) {
	db := New()
	ctx := context.Background()

	tech := newCategory(t, db, "Tech", "tech")
	travel := newCategory(t, db, "Travel", "travel")

	old := newBlog(t, db, tech.ID, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	recent := newBlog(t, db, tech.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	other := newBlog(t, db, travel.ID, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))

	hidden := newBlog(t, db, tech.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	hidden.IsActive = false
	_, err := db.Blogs().Update(ctx, hidden)
	require.NoError(t, err)

	all, err := db.Blogs().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{recent.ID, other.ID, old.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})

	techOnly, err := db.Blogs().ListActiveByCategory(ctx, tech.ID)
	require.NoError(t, err)
	require.Len(t, techOnly, 2)
	assert.Equal(t, "Tech", techOnly[0].Category.Name)
}

func TestBlogStore_ReturnsCopies(t *testing.T) {
	db := New()
	ctx := context.Background()
	cat := newCategory(t, db, "Tech", "tech")
	b := newBlog(t, db, cat.ID, time.Now())

	b.Title = "mutated by caller"

	found, err := db.Blogs().FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Title", found.Title)
}

func TestPinStore_Lifecycle(t *testing.T) {
	db := New()
	ctx := context.Background()
	cat := newCategory(t, db, "Tech", "tech")
	first := newBlog(t, db, cat.ID, time.Now())
	second := newBlog(t, db, cat.ID, time.Now())

	main := db.Pins(models.PinListMain)
	_, err := main.Add(ctx, first.ID)
	require.NoError(t, err)
	_, err = main.Add(ctx, second.ID)
	require.NoError(t, err)

	_, err = main.Add(ctx, first.ID)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	// Lists are independent.
	trending, err := db.Pins(models.PinListTrending).ListBlogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, trending)

	blogs, err := main.ListBlogs(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, second.ID, blogs[0].ID, "newest pin first")

	_, err = db.Blogs().Delete(ctx, second.ID)
	require.NoError(t, err)
	blogs, err = main.ListBlogs(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, 1, "deleted blogs are skipped")

	removed, err := main.Remove(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = main.Remove(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPinStore_ConcurrentAddSingleWinner(t *testing.T) {
	db := New()
	ctx := context.Background()
	cat := newCategory(t, db, "Tech", "tech")
	b := newBlog(t, db, cat.ID, time.Now())
	pins := db.Pins(models.PinListTrending)

	const workers = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := pins.Add(ctx, b.ID); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	blogs, err := pins.ListBlogs(ctx)
	require.NoError(t, err)
	assert.Len(t, blogs, 1)
}

func TestAnalyticsStore_Aggregates(t *testing.T) {
	db := New()
	ctx := context.Background()
	a := db.Analytics()
	now := time.Now()

	require.NoError(t, a.RecordVisit(ctx, &models.PageVisit{Page: "/b", Timestamp: now}))
	require.NoError(t, a.RecordVisit(ctx, &models.PageVisit{Page: "/a", Timestamp: now}))
	require.NoError(t, a.RecordVisit(ctx, &models.PageVisit{Page: "/a", Timestamp: now}))
	require.NoError(t, a.RecordTimeSpent(ctx, &models.TimeSpent{Page: "/a", TimeSpent: 3, Timestamp: now}))
	require.NoError(t, a.RecordTimeSpent(ctx, &models.TimeSpent{Page: "/a", TimeSpent: 4, Timestamp: now}))

	totals, err := a.PageTotals(ctx, "/a")
	require.NoError(t, err)
	assert.Equal(t, models.PageTotals{Visits: 2, TimeEvents: 2, TotalTime: 7}, *totals)

	empty, err := a.PageTotals(ctx, "/none")
	require.NoError(t, err)
	assert.Zero(t, *empty)

	visits, err := a.VisitCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.VisitCount{{Page: "/a", Count: 2}, {Page: "/b", Count: 1}}, visits)

	stats, err := a.TimeStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TimeStat{{Page: "/a", AvgTime: 3.5, TotalTime: 7}}, stats)
}

func TestNewsStore_Lifecycle(t *testing.T) {
	db := New()
	ctx := context.Background()
	news := db.News()

	first, err := news.Create(ctx, &models.NewsItem{Headline: "One", Image: "u1", IsActive: true})
	require.NoError(t, err)
	second, err := news.Create(ctx, &models.NewsItem{Headline: "Two", Image: "u2", IsActive: true})
	require.NoError(t, err)

	items, err := news.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)

	deleted, err := news.Delete(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "u1", deleted.Image)

	gone, err := news.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestUserStore_Lifecycle(t *testing.T) {
	db := New()
	ctx := context.Background()
	users := db.Users()

	u, err := users.Create(ctx, &models.User{Email: "ed@example.com", PasswordHash: "h", DisplayName: "Ed", Role: models.RoleEditor})
	require.NoError(t, err)

	_, err = users.Create(ctx, &models.User{Email: "ED@example.com", PasswordHash: "h", Role: models.RoleEditor})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	found, err := users.FindByEmail(ctx, "Ed@Example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	require.NoError(t, users.SetTOTPSecret(ctx, u.ID, "SECRET"))
	require.NoError(t, users.EnableTOTP(ctx, u.ID))
	found, err = users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, found.Requires2FA())

	require.NoError(t, users.ResetTOTP(ctx, u.ID))
	found, err = users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, found.TOTPEnabled)
	assert.Nil(t, found.TOTPSecret)

	missing, err := users.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
