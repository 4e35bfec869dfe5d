// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"blogdesk/internal/database"
	"blogdesk/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching the development setup.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogdesk")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogdesk")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// uniqueName returns a name no other test run will use.
func uniqueName(prefix string) string {
	return prefix + " " + uuid.NewString()[:8]
}

// cleanUsers removes test users by email. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// cleanCategories removes test categories by id. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, ids ...uuid.UUID) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM categories WHERE id = $1", id)
	}
}

// cleanBlogs removes test blogs and their pin entries. Call in t.Cleanup().
func cleanBlogs(t *testing.T, db *sql.DB, ids ...uuid.UUID) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM main_stories WHERE blog_id = $1", id)
		db.Exec("DELETE FROM trending_stories WHERE blog_id = $1", id)
		db.Exec("DELETE FROM blogs WHERE id = $1", id)
	}
}

// createTestCategory inserts an active category with a unique name.
func createTestCategory(t *testing.T, db *sql.DB) *models.Category {
	t.Helper()
	name := uniqueName("Cat")
	c, err := NewCategoryStore(db).Create(context.Background(), &models.Category{
		Name: name, Slug: "test-" + uuid.NewString(), IsActive: true,
	})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { cleanCategories(t, db, c.ID) })
	return c
}

// createTestBlog inserts an active blog in the given category.
func createTestBlog(t *testing.T, db *sql.DB, categoryID uuid.UUID, date time.Time) *models.Blog {
	t.Helper()
	b, err := NewBlogStore(db).Create(context.Background(), &models.Blog{
		CategoryID:  categoryID,
		Title:       uniqueName("Post"),
		Description: "A description long enough.",
		Image:       "https://cdn.example.com/blogs/" + uuid.NewString() + ".png",
		Author:      "Tester",
		Date:        date,
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("create test blog: %v", err)
	}
	t.Cleanup(func() { cleanBlogs(t, db, b.ID) })
	return b
}
