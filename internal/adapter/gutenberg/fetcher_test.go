package gutenberg

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleEbook = `The Project Gutenberg eBook of Moby Dick

Title: Moby Dick; Or, The Whale

Author: Herman Melville

Release date: July 1, 2001

Most recently updated: August 18, 2021

Language: English

*** START OF THE PROJECT GUTENBERG EBOOK MOBY DICK ***

Call me Ishmael. Some years ago--never mind how long
precisely--having little or no money in my purse.

It is a way I have of driving off the spleen.

*** END OF THE PROJECT GUTENBERG EBOOK MOBY DICK ***
`

func TestExtractMeta(t *testing.T) {
	meta := ExtractMeta(2701, sampleEbook)

	if meta.Title != "Moby Dick; Or, The Whale" {
		t.Errorf("title = %q", meta.Title)
	}
	if meta.Author != "Herman Melville" {
		t.Errorf("author = %q", meta.Author)
	}
	if meta.ReleaseDate != "July 1, 2001" {
		t.Errorf("release date = %q", meta.ReleaseDate)
	}
	if meta.Updated != "August 18, 2021" {
		t.Errorf("updated = %q", meta.Updated)
	}
	if meta.Language != "English" {
		t.Errorf("language = %q", meta.Language)
	}
}

func TestExtractMeta_Fallbacks(t *testing.T) {
	meta := ExtractMeta(7, "no header here")

	if meta.Title != "Unknown Title id 7" {
		t.Errorf("title fallback = %q", meta.Title)
	}
	if meta.Author != "Unknown Author" {
		t.Errorf("author fallback = %q", meta.Author)
	}
}

func TestExtractBody(t *testing.T) {
	body, ok := ExtractBody(sampleEbook)
	if !ok {
		t.Fatal("expected body markers to match")
	}
	if strings.Contains(body, "Title:") {
		t.Error("body must not include the header")
	}
	if !strings.Contains(body, "Call me Ishmael") {
		t.Errorf("body = %q", body)
	}
	if strings.Contains(body, "*** END") {
		t.Error("body must not include the end marker")
	}
}

func TestExtractBody_NoMarkers(t *testing.T) {
	if _, ok := ExtractBody("just some text"); ok {
		t.Error("expected no body without markers")
	}
}

func TestReflow(t *testing.T) {
	body := "Call me Ishmael. Some years\nago--never mind.\n\nIt is a way I have\nof driving off the spleen."

	got := Reflow(body)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 paragraph lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "Call me Ishmael. Some years ago--never mind." {
		t.Errorf("line 1 = %q", lines[0])
	}
	if lines[1] != "It is a way I have of driving off the spleen." {
		t.Errorf("line 2 = %q", lines[1])
	}
}

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cache/epub/2701/pg2701.txt":
			fmt.Fprint(w, sampleEbook)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)

	book, ok, err := c.Fetch(context.Background(), 2701)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !ok {
		t.Fatal("expected book to be available")
	}
	if book.Meta.ID != 2701 || book.Meta.Title != "Moby Dick; Or, The Whale" {
		t.Errorf("meta = %+v", book.Meta)
	}
	if !strings.HasPrefix(book.Body, "Call me Ishmael.") {
		t.Errorf("body = %q", book.Body)
	}

	_, ok, err = c.Fetch(context.Background(), 999)
	if err != nil {
		t.Fatalf("missing book must not error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing book")
	}
}
