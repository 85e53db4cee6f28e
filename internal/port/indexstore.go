package port

import "bookdex/internal/domain"

// IndexStore owns the persisted word records, the global word index and the
// progress cursor. Single writer at a time; the pipeline runs acquisition
// and indexing sequentially, never concurrently.
type IndexStore interface {
	// MergeDocument merges one document's folded extraction result into the
	// persisted records. Idempotent: merging the same data twice leaves the
	// store byte-identical to merging it once.
	MergeDocument(docID int, local map[string]domain.Allocation) error

	// Lookup reads the record for a canonical word. A miss is a normal
	// outcome, not an error.
	Lookup(word string) (*domain.WordRecord, bool, error)

	// Documents reads the global index entry for a word.
	Documents(word string) ([]int, error)

	// GlobalIndex returns the whole word -> document-ID index.
	GlobalIndex() (map[string][]int, error)

	// Words walks every persisted word record.
	Words(fn func(rec *domain.WordRecord) error) error

	Cursor() (domain.Cursor, error)

	// Advance rewrites only the next-to-index half of the cursor.
	// Caller guarantees next <= lastAvailable+1.
	Advance(next int) error

	// SetLastAvailable is the acquisition side of the cursor hand-off.
	SetLastAvailable(id int) error

	Close() error
}

// Catalog resolves document metadata. Backed by the tabular store the
// acquisition pipeline fills.
type Catalog interface {
	Put(meta domain.BookMeta) error
	Get(id int) (domain.BookMeta, bool, error)
	Title(id int) (string, error)
	Count() (int, error)
	Close() error
}

// Library provides read and write access to document bodies, one plain-text
// file per document ID.
type Library interface {
	ReadBook(id int) ([]string, error)
	WriteBook(id int, body string) error
	BookIDs() ([]int, error)
}
