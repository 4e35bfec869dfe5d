// Package memory is an in-process implementation of every blogdesk
// repository. It enforces the same unique constraints as the PostgreSQL
// schema while holding the write lock, so it is safe for concurrent use and
// suitable for tests and single-instance demos (STORE_BACKEND=memory).
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"blogdesk/internal/models"
)

// DB holds all collections behind a single RWMutex. Values are copied on
// the way in and out so callers never share memory with the store.
type DB struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	categories map[uuid.UUID]*record[models.Category]
	blogs      map[uuid.UUID]*record[models.Blog]
	pins       map[models.PinList][]*models.PinEntry
	news       map[uuid.UUID]*record[models.NewsItem]
	users      map[uuid.UUID]*models.User
	visits     []models.PageVisit
	timeSpent  []models.TimeSpent
}

// record pairs a value with its insertion sequence, which breaks ties
// between rows created within the same clock tick.
type record[T any] struct {
	val T
	seq int64
}

// New returns an empty in-memory database.
func New() *DB {
	return &DB{
		now:        func() time.Time { return time.Now().UTC() },
		categories: make(map[uuid.UUID]*record[models.Category]),
		blogs:      make(map[uuid.UUID]*record[models.Blog]),
		pins:       make(map[models.PinList][]*models.PinEntry),
		news:       make(map[uuid.UUID]*record[models.NewsItem]),
		users:      make(map[uuid.UUID]*models.User),
	}
}

// next returns the next insertion sequence. Caller must hold the write lock.
func (db *DB) next() int64 {
	db.seq++
	return db.seq
}

// Categories returns the category repository.
func (db *DB) Categories() *CategoryStore { return &CategoryStore{db: db} }

// Blogs returns the blog repository.
func (db *DB) Blogs() *BlogStore { return &BlogStore{db: db} }

// Pins returns the repository for one pin list.
func (db *DB) Pins(list models.PinList) *PinStore { return &PinStore{db: db, list: list} }

// Analytics returns the analytics event repository.
func (db *DB) Analytics() *AnalyticsStore { return &AnalyticsStore{db: db} }

// News returns the news carousel repository.
func (db *DB) News() *NewsStore { return &NewsStore{db: db} }

// Users returns the user repository.
func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// categoryRef resolves a blog's category the way the SQL LEFT JOIN does.
// Caller must hold at least the read lock.
func (db *DB) categoryRef(id uuid.UUID) *models.CategoryRef {
	if rec, ok := db.categories[id]; ok {
		return rec.val.Ref()
	}
	return models.NewCategoryRef(id, nil, nil)
}

// expandBlog returns a copy of b with its category resolved.
func (db *DB) expandBlog(b models.Blog) models.Blog {
	b.Category = db.categoryRef(b.CategoryID)
	return b
}
