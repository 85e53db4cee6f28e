package gutenberg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"bookdex/internal/domain"
	"bookdex/internal/port"
)

const DefaultBaseURL = "https://www.gutenberg.org"

var (
	reTitle    = regexp.MustCompile(`(?m)^Title: (.+)$`)
	reAuthor   = regexp.MustCompile(`(?m)^Author: (.+)$`)
	reRelease  = regexp.MustCompile(`(?m)^Release [Dd]ate: (.+)$`)
	reUpdated  = regexp.MustCompile(`(?m)^Most recently updated: (.+)$`)
	reLanguage = regexp.MustCompile(`(?m)^Language: (.+)$`)

	reBodyStart = regexp.MustCompile(`\*\*\* START OF TH(E|IS) PROJECT GUTENBERG EBOOK .+ \*\*\*`)
	reBodyEnd   = regexp.MustCompile(`\*\*\* END OF TH(E|IS) PROJECT GUTENBERG EBOOK .+ \*\*\*`)
)

// Client fetches plain-text ebooks from a Project Gutenberg mirror.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Fetch downloads one ebook by ID. IDs with no plain-text edition report
// ok == false without an error; callers skip them and move on.
func (c *Client) Fetch(ctx context.Context, id int) (port.FetchedBook, bool, error) {
	url := fmt.Sprintf("%s/cache/epub/%d/pg%d.txt", c.baseURL, id, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return port.FetchedBook{}, false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return port.FetchedBook{}, false, fmt.Errorf("failed to fetch book %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return port.FetchedBook{}, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return port.FetchedBook{}, false, fmt.Errorf("unexpected status %d fetching book %d", resp.StatusCode, id)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return port.FetchedBook{}, false, fmt.Errorf("failed to read book %d: %w", id, err)
	}

	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	body, ok := ExtractBody(text)
	if !ok {
		// No content markers means no usable body; treat like unavailable.
		return port.FetchedBook{}, false, nil
	}

	return port.FetchedBook{
		Meta: ExtractMeta(id, text),
		Body: Reflow(body),
	}, true, nil
}

// ExtractMeta pulls the catalog fields out of the ebook header.
func ExtractMeta(id int, text string) domain.BookMeta {
	return domain.BookMeta{
		ID:          id,
		Title:       firstGroup(reTitle, text, fmt.Sprintf("Unknown Title id %d", id)),
		Author:      firstGroup(reAuthor, text, "Unknown Author"),
		ReleaseDate: firstGroup(reRelease, text, "Unknown"),
		Updated:     firstGroup(reUpdated, text, "Unknown"),
		Language:    firstGroup(reLanguage, text, "Unknown"),
	}
}

func firstGroup(re *regexp.Regexp, text, fallback string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return fallback
}

// ExtractBody slices the text between the START and END content markers.
func ExtractBody(text string) (string, bool) {
	start := reBodyStart.FindStringIndex(text)
	if start == nil {
		return "", false
	}
	end := reBodyEnd.FindStringIndex(text)
	if end == nil || end[0] <= start[1] {
		return "", false
	}
	return strings.TrimSpace(text[start[1]:end[0]]), true
}

// Reflow joins hard-wrapped lines so each output line is one paragraph.
// Blank lines separate paragraphs; runs of more than two blank lines also
// emit a separator line, preserving section breaks.
func Reflow(body string) string {
	var paragraphs []string
	var current []string
	emptyRun := 0

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, " \t")
		if line != "" {
			if emptyRun > 2 {
				paragraphs = append(paragraphs, "")
			}
			current = append(current, line)
			emptyRun = 0
			continue
		}
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
		emptyRun++
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}

	return strings.Join(paragraphs, "\n")
}
