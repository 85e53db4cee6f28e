package analyzer

import (
	"sort"

	"bookdex/internal/domain"
	"bookdex/internal/port"
)

// Fold collapses morphological variants in one extraction unit's
// word -> allocation map into their canonical lemmas. It builds a new map
// rather than moving keys inside the input, so the input is never mutated
// while being walked.
//
// For each document present in both a lemma's record and a variant's
// record, the position sets union and the count is recomputed as the union
// size, so folding the same data again cannot inflate counts.
func Fold(local map[string]domain.Allocation, lemmatizer port.Lemmatizer, lang string) map[string]domain.Allocation {
	words := make([]string, 0, len(local))
	for word := range local {
		words = append(words, word)
	}
	sort.Strings(words)

	folded := make(map[string]domain.Allocation, len(local))
	for _, word := range words {
		lemma := lemmatizer.Lemmatize(word, lang)
		target, ok := folded[lemma]
		if !ok {
			target = domain.NewAllocation()
		}
		target.Merge(local[word])
		folded[lemma] = target
	}
	return folded
}
