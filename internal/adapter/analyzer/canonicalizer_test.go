package analyzer

import "testing"

func TestCleanToken(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Cat", "cat"},
		{"cat,", "cat"},
		{"'quoted'", "quoted"},
		{"don't", "dont"},
		{"abc123", "abc"},
		{"123", ""},
		{"___", ""},
		{"_emphasis_", "emphasis"},
		{"café", "cafe"},
		{"naïve", "naive"},
		{"Äpfel", "apfel"},
		{"straße", "strasse"},
		{"Ødegaard", "odegaard"},
		{"—", ""},
		{"", ""},
		{"_wrapped_,", "wrapped"},
	}

	for _, tt := range tests {
		if got := CleanToken(tt.input); got != tt.expected {
			t.Errorf("CleanToken(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCleanToken_EmphasisRun(t *testing.T) {
	for _, token := range []string{"_", "__", "______"} {
		if got := CleanToken(token); got != "" {
			t.Errorf("CleanToken(%q) = %q, want empty", token, got)
		}
	}
}

func TestCleanToken_TrailingUnderscores(t *testing.T) {
	if got := CleanToken("word_"); got != "word" {
		t.Errorf("CleanToken(%q) = %q, want %q", "word_", got, "word")
	}
	if got := CleanToken("foo_bar"); got != "foo_bar" {
		t.Errorf("inner underscores should survive: got %q", got)
	}
}
