package catalog

import (
	"path/filepath"
	"testing"

	"bookdex/internal/domain"
)

func newTestCatalog(t *testing.T) *SQLiteCatalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCatalog_PutGet(t *testing.T) {
	c := newTestCatalog(t)

	meta := domain.BookMeta{
		ID:          84,
		Title:       "Frankenstein; Or, The Modern Prometheus",
		Author:      "Mary Wollstonecraft Shelley",
		ReleaseDate: "October 1, 1993",
		Updated:     "December 2, 2022",
		Language:    "English",
	}
	if err := c.Put(meta); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(84)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != meta {
		t.Errorf("got %+v, want %+v", got, meta)
	}
}

func TestCatalog_PutUpserts(t *testing.T) {
	c := newTestCatalog(t)

	_ = c.Put(domain.BookMeta{ID: 1, Title: "First"})
	if err := c.Put(domain.BookMeta{ID: 1, Title: "Second"}); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, _, _ := c.Get(1)
	if got.Title != "Second" {
		t.Errorf("title = %q, want upserted value", got.Title)
	}
	n, err := c.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestCatalog_TitleFallback(t *testing.T) {
	c := newTestCatalog(t)

	title, err := c.Title(99)
	if err != nil {
		t.Fatalf("title: %v", err)
	}
	if title != "Book 99" {
		t.Errorf("title = %q, want fallback", title)
	}

	_ = c.Put(domain.BookMeta{ID: 99, Title: "Moby Dick"})
	title, _ = c.Title(99)
	if title != "Moby Dick" {
		t.Errorf("title = %q, want Moby Dick", title)
	}
}

func TestCatalog_GetMissing(t *testing.T) {
	c := newTestCatalog(t)

	_, ok, err := c.Get(12345)
	if err != nil {
		t.Fatalf("missing row must not be an error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing row")
	}
}
