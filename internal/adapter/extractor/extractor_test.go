package extractor

import (
	"testing"

	"bookdex/internal/adapter/analyzer"
	"bookdex/internal/domain"
)

func newTestExtractor() *Extractor {
	return New(analyzer.NewRuleLemmatizer(), "en")
}

func TestExtract_Positions(t *testing.T) {
	ex := newTestExtractor()

	local := ex.Extract([]string{
		"whale whale harpoon",
		"harpoon",
	})

	whale, ok := local["whale"]
	if !ok {
		t.Fatalf("expected entry for whale, got %v", local)
	}
	if whale.Times != 2 {
		t.Errorf("whale times = %d, want 2", whale.Times)
	}
	for _, pos := range []domain.Position{{Line: 1, Offset: 1}, {Line: 1, Offset: 2}} {
		if !whale.Positions.Contains(pos) {
			t.Errorf("whale missing position %v", pos)
		}
	}

	harpoon := local["harpoon"]
	if harpoon.Times != 2 {
		t.Errorf("harpoon times = %d, want 2", harpoon.Times)
	}
	if !harpoon.Positions.Contains(domain.Position{Line: 2, Offset: 1}) {
		t.Errorf("harpoon missing position on line 2: %v", harpoon.Positions)
	}
}

func TestExtract_DroppedTokensKeepTheirOffsetSlot(t *testing.T) {
	ex := newTestExtractor()

	// "123" cleans to nothing but still occupies offset 2.
	local := ex.Extract([]string{"whale 123 harpoon"})

	if _, ok := local[""]; ok {
		t.Error("empty token must not produce an entry")
	}
	harpoon := local["harpoon"]
	if !harpoon.Positions.Contains(domain.Position{Line: 1, Offset: 3}) {
		t.Errorf("harpoon position = %v, want offset 3", harpoon.Positions)
	}
}

func TestExtract_FoldsVariants(t *testing.T) {
	ex := newTestExtractor()

	local := ex.Extract([]string{"cats cat"})

	if _, ok := local["cats"]; ok {
		t.Errorf("surface form should have folded away: %v", local)
	}
	cat := local["cat"]
	if cat.Times != 2 {
		t.Errorf("cat times = %d, want 2", cat.Times)
	}
}

func TestExtract_CanonicalizesCaseAndPunctuation(t *testing.T) {
	ex := newTestExtractor()

	local := ex.Extract([]string{"The Whale, the whale!"})

	whale := local["whale"]
	if whale.Times != 2 {
		t.Errorf("whale times = %d, want 2: %v", whale.Times, local)
	}
}

func TestExtract_EmptyBody(t *testing.T) {
	ex := newTestExtractor()

	if local := ex.Extract(nil); len(local) != 0 {
		t.Errorf("expected empty map for empty body, got %v", local)
	}
}
