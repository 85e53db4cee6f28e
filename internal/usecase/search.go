package usecase

import (
	"fmt"
	"strings"

	"bookdex/internal/adapter/analyzer"
	"bookdex/internal/domain"
	"bookdex/internal/port"
)

// Highlighter marks a matched span in rendered output. The CLI injects a
// styled renderer; tests inject a plain one.
type Highlighter func(span string) string

// SearchUseCase answers word lookups against the index, re-reading the
// source books to render the matching lines.
type SearchUseCase struct {
	store      port.IndexStore
	catalog    port.Catalog
	library    port.Library
	lemmatizer port.Lemmatizer
	lang       string
	highlight  Highlighter
}

func NewSearchUseCase(store port.IndexStore, catalog port.Catalog, library port.Library, lemmatizer port.Lemmatizer, lang string, highlight Highlighter) *SearchUseCase {
	if highlight == nil {
		highlight = func(s string) string { return s }
	}
	return &SearchUseCase{
		store:      store,
		catalog:    catalog,
		library:    library,
		lemmatizer: lemmatizer,
		lang:       lang,
		highlight:  highlight,
	}
}

// MatchLine is one rendered occurrence line.
type MatchLine struct {
	Line   int
	Offset int
	Text   string
}

// BookMatches groups a word's occurrences within one book.
type BookMatches struct {
	BookID int
	Title  string
	Times  int
	Lines  []MatchLine
}

// SearchResult is the outcome of one lookup. NotIndexed is a normal
// outcome: the canonical term simply never reached the store.
type SearchResult struct {
	Term       string
	Canonical  string
	NotIndexed bool
	Total      int
	Books      []BookMatches
}

// Search canonicalizes and lemmatizes the term exactly the way the indexer
// does — identical normalization is what makes lookups line up with merge
// keys — then renders every recorded occurrence with its source line.
func (u *SearchUseCase) Search(term string) (*SearchResult, error) {
	canonical := analyzer.CleanToken(strings.TrimSpace(term))
	if canonical != "" {
		canonical = u.lemmatizer.Lemmatize(canonical, u.lang)
	}

	result := &SearchResult{Term: term, Canonical: canonical}
	if canonical == "" {
		result.NotIndexed = true
		return result, nil
	}

	rec, found, err := u.store.Lookup(canonical)
	if err != nil {
		return nil, fmt.Errorf("lookup failed: %w", err)
	}
	if !found {
		result.NotIndexed = true
		return result, nil
	}
	result.Total = rec.Total

	for _, bookID := range rec.DocIDs() {
		alloc := rec.Allocations[domain.DocKey(bookID)]
		matches, err := u.renderBook(bookID, alloc)
		if err != nil {
			return nil, err
		}
		result.Books = append(result.Books, matches)
	}
	return result, nil
}

func (u *SearchUseCase) renderBook(bookID int, alloc domain.Allocation) (BookMatches, error) {
	title, err := u.catalog.Title(bookID)
	if err != nil {
		return BookMatches{}, fmt.Errorf("failed to resolve title for book %d: %w", bookID, err)
	}

	lines, err := u.library.ReadBook(bookID)
	if err != nil {
		return BookMatches{}, err
	}

	matches := BookMatches{BookID: bookID, Title: title, Times: alloc.Times}
	for _, pos := range alloc.Positions.Sorted() {
		if pos.Line < 1 || pos.Line > len(lines) {
			continue
		}
		matches.Lines = append(matches.Lines, MatchLine{
			Line:   pos.Line,
			Offset: pos.Offset,
			Text:   u.renderLine(lines[pos.Line-1], pos.Offset),
		})
	}
	return matches, nil
}

// renderLine marks the token at the recorded 1-based offset. Marking by
// offset rather than by substring means folded variants ("Cats" found via
// "cat") highlight correctly, with the original casing around and inside
// the span untouched.
func (u *SearchUseCase) renderLine(line string, offset int) string {
	start, end, ok := tokenSpan(line, offset)
	if !ok {
		return line
	}
	return line[:start] + u.highlight(line[start:end]) + line[end:]
}

// tokenSpan locates the byte range of the n-th (1-based) whitespace-
// delimited token.
func tokenSpan(line string, n int) (int, int, bool) {
	inToken := false
	count := 0
	start := 0
	for i, r := range line {
		space := r == ' ' || r == '\t'
		if !space && !inToken {
			inToken = true
			count++
			start = i
		} else if space && inToken {
			if count == n {
				return start, i, true
			}
			inToken = false
		}
	}
	if inToken && count == n {
		return start, len(line), true
	}
	return 0, 0, false
}
