package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"bookdex/internal/port"
)

// AcquireUseCase downloads books into the datalake and records their
// metadata. It owns the last-available half of the cursor; the indexer
// picks up from there.
type AcquireUseCase struct {
	fetcher port.Fetcher
	library port.Library
	catalog port.Catalog
	store   port.IndexStore
	log     *slog.Logger
}

func NewAcquireUseCase(fetcher port.Fetcher, library port.Library, catalog port.Catalog, store port.IndexStore, log *slog.Logger) *AcquireUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &AcquireUseCase{fetcher: fetcher, library: library, catalog: catalog, store: store, log: log}
}

// AcquireResult reports one acquisition batch.
type AcquireResult struct {
	Downloaded []int
	Skipped    []int
	LastID     int
}

// Run downloads count books, starting right after the last available ID.
// IDs without a plain-text edition are skipped and do not count toward the
// batch. The last-available cursor moves only after the whole batch is on
// disk, and never touches next-to-index.
func (u *AcquireUseCase) Run(ctx context.Context, count int, progress ProgressFunc) (*AcquireResult, error) {
	cur, err := u.store.Cursor()
	if err != nil {
		return nil, fmt.Errorf("failed to read cursor: %w", err)
	}

	result := &AcquireResult{LastID: cur.LastAvailable}
	id := cur.LastAvailable

	for len(result.Downloaded) < count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id++

		book, ok, err := u.fetcher.Fetch(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("acquisition aborted at book %d: %w", id, err)
		}
		if !ok {
			u.log.Info("book unavailable, skipping", slog.Int("book", id))
			result.Skipped = append(result.Skipped, id)
			continue
		}

		if err := u.library.WriteBook(id, book.Body); err != nil {
			return nil, err
		}
		if err := u.catalog.Put(book.Meta); err != nil {
			return nil, err
		}

		result.Downloaded = append(result.Downloaded, id)
		result.LastID = id
		u.log.Info("book downloaded",
			slog.Int("book", id), slog.String("title", book.Meta.Title))
		if progress != nil {
			progress(len(result.Downloaded), count, id)
		}
	}

	if result.LastID > cur.LastAvailable {
		if err := u.store.SetLastAvailable(result.LastID); err != nil {
			return nil, fmt.Errorf("failed to record last available book: %w", err)
		}
	}
	return result, nil
}
