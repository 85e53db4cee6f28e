package port

// Lemmatizer maps a cleaned surface word to its canonical lemma for the
// given language code. Implementations must be deterministic: the query
// path relies on reproducing index-time normalization exactly.
type Lemmatizer interface {
	Lemmatize(word, lang string) string
}
