package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bookdex/internal/adapter/analyzer"
	"bookdex/internal/adapter/extractor"
	"bookdex/internal/adapter/library"
	"bookdex/internal/adapter/store"
)

func newTestIndexer(t *testing.T) (*IndexUseCase, *store.BoltStore, *library.Library) {
	t.Helper()
	dir := t.TempDir()

	st, err := store.NewBoltStore(filepath.Join(dir, "index.db"), nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	lib := library.New(filepath.Join(dir, "books"))
	ex := extractor.New(analyzer.NewRuleLemmatizer(), "en")
	return NewIndexUseCase(st, lib, ex, nil), st, lib
}

func TestIndexRun_AdvancesCursorAfterFullRange(t *testing.T) {
	uc, st, lib := newTestIndexer(t)

	_ = lib.WriteBook(1, "the whale")
	_ = lib.WriteBook(2, "the harpoon")
	if err := st.SetLastAvailable(2); err != nil {
		t.Fatalf("set last available: %v", err)
	}

	result, err := uc.Run(nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Indexed != 2 {
		t.Errorf("indexed = %d, want 2", result.Indexed)
	}

	cur, _ := st.Cursor()
	if cur.NextToIndex != 3 {
		t.Errorf("next to index = %d, want 3", cur.NextToIndex)
	}
	if cur.LastAvailable != 2 {
		t.Errorf("last available = %d, want unchanged 2", cur.LastAvailable)
	}

	if _, found, _ := st.Lookup("whale"); !found {
		t.Error("whale should be indexed")
	}
}

func TestIndexRun_MissingBookAbortsAndLeavesCursor(t *testing.T) {
	uc, st, lib := newTestIndexer(t)

	// Book 2 is missing from the datalake.
	_ = lib.WriteBook(1, "the whale")
	_ = lib.WriteBook(3, "the harpoon")
	_ = st.SetLastAvailable(3)

	_, err := uc.Run(nil)
	if err == nil {
		t.Fatal("expected run to abort on missing book")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}

	cur, _ := st.Cursor()
	if cur.NextToIndex != 0 {
		t.Errorf("failed run must leave cursor as read, got next=%d", cur.NextToIndex)
	}

	// Book 1 was merged before the abort; a retry re-merges it, which the
	// idempotent store absorbs without double counting.
	_ = lib.WriteBook(2, "the sea")
	if _, err := uc.Run(nil); err != nil {
		t.Fatalf("retry: %v", err)
	}
	rec, _, _ := st.Lookup("whale")
	if rec.Total != 1 {
		t.Errorf("whale total = %d after retry, want 1", rec.Total)
	}
}

func TestIndexRun_NothingToIndex(t *testing.T) {
	uc, st, _ := newTestIndexer(t)

	result, err := uc.Run(nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Indexed != 0 {
		t.Errorf("indexed = %d, want 0", result.Indexed)
	}

	// A fresh store advances next-to-index to 1 and leaves it there.
	cur, _ := st.Cursor()
	if cur.NextToIndex != 1 {
		t.Errorf("next to index = %d, want 1", cur.NextToIndex)
	}
}

func TestIndexRun_SecondRunPicksUpWhereFirstEnded(t *testing.T) {
	uc, st, lib := newTestIndexer(t)

	_ = lib.WriteBook(1, "the whale")
	_ = st.SetLastAvailable(1)
	if _, err := uc.Run(nil); err != nil {
		t.Fatalf("first run: %v", err)
	}

	_ = lib.WriteBook(2, "the whale again")
	_ = st.SetLastAvailable(2)

	var indexed []int
	progress := func(done, total, bookID int) { indexed = append(indexed, bookID) }
	if _, err := uc.Run(progress); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(indexed) != 1 || indexed[0] != 2 {
		t.Errorf("second run processed %v, want just book 2", indexed)
	}

	rec, _, _ := st.Lookup("whale")
	if rec.Total != 2 {
		t.Errorf("whale total = %d, want 2", rec.Total)
	}
	if len(rec.Allocations) != 2 {
		t.Errorf("whale allocations = %v, want both books", rec.Allocations)
	}
}
