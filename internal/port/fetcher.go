package port

import (
	"context"

	"bookdex/internal/domain"
)

// FetchedBook is one acquired document: its metadata plus the reflowed
// body text, one line per paragraph.
type FetchedBook struct {
	Meta domain.BookMeta
	Body string
}

// Fetcher acquires one remote document by ID. A nil error with ok == false
// means the document does not exist at the source and the ID should be
// skipped.
type Fetcher interface {
	Fetch(ctx context.Context, id int) (FetchedBook, bool, error)
}
