package analyzer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent decomposes characters and drops combining marks, turning
// "café" into "cafe". Non-decomposable letters are folded separately.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldTable maps base-alphabet substitutes for letters that NFD cannot
// decompose into letter + mark.
var foldTable = map[rune]string{
	'ß': "ss",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'đ': "d", 'Đ': "D",
	'ð': "d", 'Ð': "D",
	'þ': "th", 'Þ': "Th",
	'ł': "l", 'Ł': "L",
}

// CleanToken canonicalizes one whitespace-delimited raw token into an index
// key. It returns "" when the token reduces to nothing, in which case the
// token produces no occurrence.
//
// Rules, in order: emphasis-only tokens drop and emphasis-wrapped tokens
// collapse to their inner text; digits are removed; everything that is not
// a word character is removed; accented characters transliterate to the
// base alphabet; the result is lowercased and trimmed of leftover
// underscores.
func CleanToken(token string) string {
	token = stripEmphasis(token)
	if token == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		if unicode.IsDigit(r) {
			continue
		}
		if !isWordRune(r) {
			continue
		}
		b.WriteRune(r)
	}

	token = transliterate(b.String())
	token = strings.ToLower(token)
	return strings.Trim(token, "_")
}

// stripEmphasis handles underscore emphasis markers: a pure delimiter run
// drops the token, a wrapped token keeps its inner text.
func stripEmphasis(token string) string {
	if token == "" {
		return ""
	}
	if strings.Trim(token, "_") == "" {
		return ""
	}
	if strings.HasPrefix(token, "_") && strings.HasSuffix(token, "_") {
		return strings.Trim(token, "_")
	}
	return token
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func transliterate(s string) string {
	if isASCII(s) {
		return s
	}
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}
	if isASCII(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if sub, ok := foldTable[r]; ok {
			b.WriteString(sub)
			continue
		}
		if r < 128 {
			b.WriteRune(r)
			continue
		}
		// Unmappable extended characters carry no base-alphabet key value.
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 128 {
			return false
		}
	}
	return true
}
