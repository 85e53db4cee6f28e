package extractor

import (
	"strings"

	"bookdex/internal/adapter/analyzer"
	"bookdex/internal/domain"
	"bookdex/internal/port"
)

// Extractor scans one document's lines into a document-local
// canonical word -> allocation map, ready to merge into the store.
type Extractor struct {
	lemmatizer port.Lemmatizer
	lang       string
}

func New(lemmatizer port.Lemmatizer, lang string) *Extractor {
	return &Extractor{lemmatizer: lemmatizer, lang: lang}
}

// Extract tokenizes every line, canonicalizes each raw token and records
// non-empty results at their 1-based (line, offset) position. Offsets count
// raw tokens, so a token that cleans to nothing still occupies its slot.
// The lemma folder runs over the map before it is returned; the store only
// ever sees canonical words.
func (e *Extractor) Extract(lines []string) map[string]domain.Allocation {
	local := make(map[string]domain.Allocation)

	for lineNo, line := range lines {
		tokens := strings.Fields(line)
		for offset, raw := range tokens {
			word := analyzer.CleanToken(raw)
			if word == "" {
				continue
			}
			alloc, ok := local[word]
			if !ok {
				alloc = domain.NewAllocation()
			}
			pos := domain.Position{Line: lineNo + 1, Offset: offset + 1}
			if !alloc.Positions.Contains(pos) {
				alloc.Positions.Add(pos)
				alloc.Times = len(alloc.Positions)
			}
			local[word] = alloc
		}
	}

	return analyzer.Fold(local, e.lemmatizer, e.lang)
}
