package analyzer

import "strings"

// RuleLemmatizer is a dictionary plus suffix-rule English lemmatizer. For
// languages without a rule set it returns words unchanged, which keeps the
// index usable (surface forms become their own canonical entries).
type RuleLemmatizer struct {
	irregular map[string]string
}

func NewRuleLemmatizer() *RuleLemmatizer {
	return &RuleLemmatizer{irregular: irregularForms()}
}

// Lemmatize maps a cleaned surface word to its canonical lemma.
func (l *RuleLemmatizer) Lemmatize(word, lang string) string {
	if lang != "" && lang != "en" {
		return word
	}
	if lemma, ok := l.irregular[word]; ok {
		return lemma
	}
	if len(word) < 3 {
		return word
	}
	if lemma, ok := pluralRule(word); ok {
		return lemma
	}
	if lemma, ok := verbRule(word); ok {
		return lemma
	}
	return word
}

// pluralRule undoes regular noun plurals.
func pluralRule(word string) (string, bool) {
	switch {
	case strings.HasSuffix(word, "sses"):
		return word[:len(word)-2], true
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y", true
	case strings.HasSuffix(word, "xes"), strings.HasSuffix(word, "zes"),
		strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"):
		return word[:len(word)-2], true
	case strings.HasSuffix(word, "men"):
		return word[:len(word)-3] + "man", true
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") &&
		!strings.HasSuffix(word, "us") && !strings.HasSuffix(word, "is"):
		return word[:len(word)-1], true
	}
	return "", false
}

// verbRule undoes regular -ed and -ing inflections, restoring a dropped
// final e and undoing consonant doubling where the stem calls for it.
func verbRule(word string) (string, bool) {
	var stem string
	switch {
	case strings.HasSuffix(word, "ying") && len(word) > 5:
		return word[:len(word)-4] + "y", true
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		stem = word[:len(word)-3]
	case strings.HasSuffix(word, "ied") && len(word) > 4:
		return word[:len(word)-3] + "y", true
	case strings.HasSuffix(word, "ed") && len(word) > 4:
		stem = word[:len(word)-2]
	default:
		return "", false
	}
	if !hasVowelByte(stem) {
		return "", false
	}
	if endsDoubledConsonant(stem) {
		c := stem[len(stem)-1]
		if c != 'l' && c != 's' && c != 'z' {
			return stem[:len(stem)-1], true
		}
	}
	if needsFinalE(stem) {
		return stem + "e", true
	}
	return stem, true
}

func hasVowelByte(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'a', 'e', 'i', 'o', 'u', 'y':
			return true
		}
	}
	return false
}

func endsDoubledConsonant(s string) bool {
	n := len(s)
	if n < 2 || s[n-1] != s[n-2] {
		return false
	}
	switch s[n-1] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	}
	return true
}

// needsFinalE restores stems like "mak" -> "make" and "us" -> "use":
// a consonant-vowel-consonant tail (excluding w, x, y) had its e elided.
func needsFinalE(s string) bool {
	n := len(s)
	if n < 2 {
		return false
	}
	last := s[n-1]
	switch last {
	case 'a', 'e', 'i', 'o', 'u', 'w', 'x', 'y':
		return false
	}
	prev := s[n-2]
	switch prev {
	case 'a', 'e', 'i', 'o', 'u':
		if n >= 3 {
			switch s[n-3] {
			case 'a', 'e', 'i', 'o', 'u':
				return false
			}
		}
		return true
	}
	return false
}

// irregularForms covers the common English forms the suffix rules cannot
// reach. Keyed by surface form, value is the lemma.
func irregularForms() map[string]string {
	return map[string]string{
		"children": "child",
		"mice":     "mouse",
		"feet":     "foot",
		"geese":    "goose",
		"teeth":    "tooth",
		"people":   "person",
		"oxen":     "ox",
		"lives":    "life",
		"wives":    "wife",
		"knives":   "knife",
		"leaves":   "leaf",
		"wolves":   "wolf",
		"selves":   "self",
		"was":      "be",
		"were":     "be",
		"been":     "be",
		"being":    "be",
		"are":      "be",
		"is":       "be",
		"am":       "be",
		"has":      "have",
		"had":      "have",
		"having":   "have",
		"does":     "do",
		"did":      "do",
		"done":     "do",
		"went":     "go",
		"gone":     "go",
		"goes":     "go",
		"ran":      "run",
		"running":  "run",
		"said":     "say",
		"saw":      "see",
		"seen":     "see",
		"came":     "come",
		"taken":    "take",
		"took":     "take",
		"gave":     "give",
		"given":    "give",
		"made":     "make",
		"found":    "find",
		"thought":  "think",
		"told":     "tell",
		"knew":     "know",
		"known":    "know",
		"wrote":    "write",
		"written":  "write",
		"spoke":    "speak",
		"spoken":   "speak",
		"left":     "leave",
		"felt":     "feel",
		"kept":     "keep",
		"held":     "hold",
		"stood":    "stand",
		"heard":    "hear",
		"brought":  "bring",
		"bought":   "buy",
		"caught":   "catch",
		"taught":   "teach",
		"sat":      "sit",
		"better":   "good",
		"best":     "good",
		"worse":    "bad",
		"worst":    "bad",
	}
}
