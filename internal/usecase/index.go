package usecase

import (
	"fmt"
	"log/slog"

	"bookdex/internal/adapter/extractor"
	"bookdex/internal/port"
)

// IndexUseCase drives one indexing run: cursor -> extract -> fold -> merge
// -> advance.
type IndexUseCase struct {
	store     port.IndexStore
	library   port.Library
	extractor *extractor.Extractor
	log       *slog.Logger
}

func NewIndexUseCase(store port.IndexStore, library port.Library, ex *extractor.Extractor, log *slog.Logger) *IndexUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &IndexUseCase{store: store, library: library, extractor: ex, log: log}
}

// IndexResult reports one run.
type IndexResult struct {
	From    int
	To      int
	Indexed int
	Words   int
}

// ProgressFunc reports per-book progress to the caller's UI.
type ProgressFunc func(done, total int, bookID int)

// Run indexes every book in [nextToIndex, lastAvailable] in increasing ID
// order. A failure on any book aborts the whole run and leaves the cursor
// exactly as read, so a re-run retries the same range; the idempotent merge
// makes that reprocessing safe. Only after the full range succeeds does the
// cursor advance to lastAvailable+1.
func (u *IndexUseCase) Run(progress ProgressFunc) (*IndexResult, error) {
	cur, err := u.store.Cursor()
	if err != nil {
		return nil, fmt.Errorf("failed to read cursor: %w", err)
	}

	from := cur.NextToIndex
	if from < 1 {
		// Book IDs are positive; a fresh or recovered cursor starts at 1.
		from = 1
	}
	to := cur.LastAvailable

	result := &IndexResult{From: from, To: to}
	total := to - from + 1
	if total < 0 {
		total = 0
	}

	for id := from; id <= to; id++ {
		words, err := u.indexBook(id)
		if err != nil {
			return nil, fmt.Errorf("indexing aborted at book %d: %w", id, err)
		}
		result.Indexed++
		result.Words += words
		u.log.Info("book indexed", slog.Int("book", id), slog.Int("words", words))
		if progress != nil {
			progress(result.Indexed, total, id)
		}
	}

	if err := u.store.Advance(to + 1); err != nil {
		return nil, fmt.Errorf("failed to advance cursor: %w", err)
	}
	return result, nil
}

func (u *IndexUseCase) indexBook(id int) (int, error) {
	lines, err := u.library.ReadBook(id)
	if err != nil {
		return 0, err
	}
	local := u.extractor.Extract(lines)
	if err := u.store.MergeDocument(id, local); err != nil {
		return 0, err
	}
	return len(local), nil
}
