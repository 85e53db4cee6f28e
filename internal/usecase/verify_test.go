package usecase

import (
	"path/filepath"
	"testing"

	"bookdex/internal/adapter/analyzer"
	"bookdex/internal/adapter/extractor"
	"bookdex/internal/adapter/library"
	"bookdex/internal/adapter/store"
	"bookdex/internal/domain"
)

func TestVerify_ConsistentStore(t *testing.T) {
	dir := t.TempDir()

	st, err := store.NewBoltStore(filepath.Join(dir, "index.db"), nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	lib := library.New(filepath.Join(dir, "books"))
	_ = lib.WriteBook(1, "whales and harpoons")
	_ = lib.WriteBook(2, "more whales")
	_ = st.SetLastAvailable(2)

	indexUC := NewIndexUseCase(st, lib, extractor.New(analyzer.NewRuleLemmatizer(), "en"), nil)
	if _, err := indexUC.Run(nil); err != nil {
		t.Fatalf("index: %v", err)
	}

	cat := &stubCatalog{titles: map[int]string{1: "One", 2: "Two"}}
	result, err := NewVerifyUseCase(st, cat, lib).Run()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(result.Problems) != 0 {
		t.Errorf("expected no problems, got %v", result.Problems)
	}
	if result.WordsChecked == 0 || result.BooksChecked != 2 {
		t.Errorf("checked %d words, %d books", result.WordsChecked, result.BooksChecked)
	}
}

func TestVerify_ReportsUncataloguedBooks(t *testing.T) {
	dir := t.TempDir()

	st, err := store.NewBoltStore(filepath.Join(dir, "index.db"), nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	lib := library.New(filepath.Join(dir, "books"))
	_ = lib.WriteBook(9, "orphan body")

	result, err := NewVerifyUseCase(st, &stubCatalog{}, lib).Run()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(result.Problems) != 1 {
		t.Fatalf("problems = %v, want exactly the missing catalog row", result.Problems)
	}
}

// brokenStore serves one word record that disagrees with its own counts
// and with the global index.
type brokenStore struct {
	*store.BoltStore
}

func (b *brokenStore) Words(fn func(rec *domain.WordRecord) error) error {
	rec := domain.NewWordRecord("whale")
	rec.Allocations["1"] = domain.Allocation{
		Times:     3, // disagrees with the single position below
		Positions: domain.NewPositionSet(domain.Position{Line: 1, Offset: 1}),
	}
	rec.Total = 99
	return fn(rec)
}

func (b *brokenStore) GlobalIndex() (map[string][]int, error) {
	return map[string][]int{"whale": {1, 2}, "ghost": {4}}, nil
}

func TestVerify_DetectsBrokenInvariants(t *testing.T) {
	dir := t.TempDir()

	st, err := store.NewBoltStore(filepath.Join(dir, "index.db"), nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	lib := library.New(filepath.Join(dir, "books"))
	result, err := NewVerifyUseCase(&brokenStore{st}, &stubCatalog{}, lib).Run()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	// times != positions, total != sum, record/global disagreement, and a
	// global entry with no record.
	if len(result.Problems) != 4 {
		t.Errorf("problems = %v, want 4", result.Problems)
	}
}
