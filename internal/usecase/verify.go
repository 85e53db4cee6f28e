package usecase

import (
	"fmt"

	"bookdex/internal/domain"
	"bookdex/internal/port"
)

// VerifyUseCase audits the invariants the store is supposed to maintain:
// counts derived from position sets, totals derived from counts, and exact
// agreement between word records and the global index. It also reports
// datalake books the catalog has no row for.
type VerifyUseCase struct {
	store   port.IndexStore
	catalog port.Catalog
	library port.Library
}

func NewVerifyUseCase(store port.IndexStore, catalog port.Catalog, library port.Library) *VerifyUseCase {
	return &VerifyUseCase{store: store, catalog: catalog, library: library}
}

// VerifyResult lists every violation found. An empty list means the store
// is consistent.
type VerifyResult struct {
	WordsChecked int
	BooksChecked int
	Problems     []string
}

func (r *VerifyResult) problemf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

func (u *VerifyUseCase) Run() (*VerifyResult, error) {
	result := &VerifyResult{}

	global, err := u.store.GlobalIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to read global index: %w", err)
	}

	seen := make(map[string]struct{})
	err = u.store.Words(func(rec *domain.WordRecord) error {
		result.WordsChecked++
		seen[rec.Word] = struct{}{}
		u.checkRecord(rec, global, result)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk word records: %w", err)
	}

	for word := range global {
		if _, ok := seen[word]; !ok {
			result.problemf("global index entry %q has no word record", word)
		}
	}

	if err := u.checkCatalog(result); err != nil {
		return nil, err
	}
	return result, nil
}

func (u *VerifyUseCase) checkRecord(rec *domain.WordRecord, global map[string][]int, result *VerifyResult) {
	total := 0
	for key, alloc := range rec.Allocations {
		if alloc.Times != len(alloc.Positions) {
			result.problemf("word %q book %s: times %d != %d positions",
				rec.Word, key, alloc.Times, len(alloc.Positions))
		}
		total += alloc.Times
	}
	if rec.Total != total {
		result.problemf("word %q: total %d != allocation sum %d", rec.Word, rec.Total, total)
	}

	globalIDs := make(map[int]struct{}, len(global[rec.Word]))
	for _, id := range global[rec.Word] {
		globalIDs[id] = struct{}{}
	}
	recIDs := rec.DocIDs()
	if len(globalIDs) != len(recIDs) {
		result.problemf("word %q: %d books in record, %d in global index",
			rec.Word, len(recIDs), len(globalIDs))
		return
	}
	for _, id := range recIDs {
		if _, ok := globalIDs[id]; !ok {
			result.problemf("word %q: book %d missing from global index", rec.Word, id)
		}
	}
}

func (u *VerifyUseCase) checkCatalog(result *VerifyResult) error {
	ids, err := u.library.BookIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		result.BooksChecked++
		_, ok, err := u.catalog.Get(id)
		if err != nil {
			return fmt.Errorf("failed to read catalog row for book %d: %w", id, err)
		}
		if !ok {
			result.problemf("book %d has a body but no catalog row", id)
		}
	}
	return nil
}
