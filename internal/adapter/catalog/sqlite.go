package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // pure Go driver, no cgo

	"bookdex/internal/domain"
)

// SQLiteCatalog is the tabular metadata store the acquisition pipeline
// fills: one row per book, keyed by ID.
type SQLiteCatalog struct {
	db *sql.DB
}

func Open(path string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	// Single writer; the pipeline never runs acquisition and queries
	// concurrently, the pool limit just enforces it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	c := &SQLiteCatalog{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return c, nil
}

func (c *SQLiteCatalog) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS books (
		id           INTEGER PRIMARY KEY,
		title        TEXT NOT NULL,
		author       TEXT NOT NULL DEFAULT '',
		release_date TEXT NOT NULL DEFAULT '',
		updated      TEXT NOT NULL DEFAULT '',
		language     TEXT NOT NULL DEFAULT ''
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Put inserts or replaces one metadata row.
func (c *SQLiteCatalog) Put(meta domain.BookMeta) error {
	_, err := c.db.Exec(`
		INSERT INTO books (id, title, author, release_date, updated, language)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			release_date = excluded.release_date,
			updated = excluded.updated,
			language = excluded.language`,
		meta.ID, meta.Title, meta.Author, meta.ReleaseDate, meta.Updated, meta.Language)
	if err != nil {
		return fmt.Errorf("failed to store metadata for book %d: %w", meta.ID, err)
	}
	return nil
}

// Get reads one row; a missing row is reported through the bool.
func (c *SQLiteCatalog) Get(id int) (domain.BookMeta, bool, error) {
	var meta domain.BookMeta
	row := c.db.QueryRow(`
		SELECT id, title, author, release_date, updated, language
		FROM books WHERE id = ?`, id)
	err := row.Scan(&meta.ID, &meta.Title, &meta.Author, &meta.ReleaseDate, &meta.Updated, &meta.Language)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BookMeta{}, false, nil
	}
	if err != nil {
		return domain.BookMeta{}, false, err
	}
	return meta, true, nil
}

// Title resolves a book title, falling back to "Book <id>" for books that
// never made it into the catalog.
func (c *SQLiteCatalog) Title(id int) (string, error) {
	meta, ok, err := c.Get(id)
	if err != nil {
		return "", err
	}
	if !ok || meta.Title == "" {
		return fmt.Sprintf("Book %d", id), nil
	}
	return meta.Title, nil
}

func (c *SQLiteCatalog) Count() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}
