package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"bookdex/internal/adapter/fs"
)

// Library is the datalake of document bodies: one plain-text file per book
// ID, one logical line per physical line. Bodies are immutable once
// written; nothing here ever rewrites an existing book.
type Library struct {
	dir    string
	walker *fs.Walker
}

func New(dir string) *Library {
	return &Library{
		dir:    dir,
		walker: fs.NewWalker([]string{"**/*.txt"}, nil),
	}
}

// BookPath returns the body file path for a book ID.
func (l *Library) BookPath(id int) string {
	return filepath.Join(l.dir, fmt.Sprintf("%d.txt", id))
}

// ReadBook reads a body as its ordered line sequence. A missing body
// propagates so the caller can abort the run; os.IsNotExist holds on the
// wrapped error.
func (l *Library) ReadBook(id int) ([]string, error) {
	data, err := os.ReadFile(l.BookPath(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read book %d: %w", id, err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// A trailing newline is file formatting, not an empty last line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// WriteBook stores a body, creating the datalake directory on first use.
func (l *Library) WriteBook(id int, body string) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create books directory: %w", err)
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	if err := os.WriteFile(l.BookPath(id), []byte(body), 0644); err != nil {
		return fmt.Errorf("failed to write book %d: %w", id, err)
	}
	return nil
}

// BookIDs enumerates the stored bodies, ascending. Files whose names are
// not a plain integer are ignored.
func (l *Library) BookIDs() ([]int, error) {
	if _, err := os.Stat(l.dir); os.IsNotExist(err) {
		return nil, nil
	}
	files, err := l.walker.Walk(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan books directory: %w", err)
	}

	var ids []int
	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".txt")
		if id, err := strconv.Atoi(name); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}
