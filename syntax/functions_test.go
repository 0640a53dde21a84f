package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWordListFunction(t *testing.T) {
	fn := NewWordListFunction([]string{"coke", "bag of chips", "  ", "Pringles"})

	names := func(opts []*Option) []string {
		var got []string
		for _, opt := range opts {
			got = append(got, opt.Semantics)
		}
		return got
	}

	if got := len(fn(nil)); got != 3 {
		t.Errorf("expected 3 options without words, got %d", got)
	}

	if diff := cmp.Diff([]string{`"bag of chips"`}, names(fn([]string{"bag", "of"}))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if got := fn([]string{"water"}); len(got) != 0 {
		t.Errorf("expected no options, got %v", names(got))
	}

	opts := fn([]string{"Pringles"})
	if len(opts) != 1 || opts[0].Conjuncts[0].Kind != KindTerminal || opts[0].Semantics != `"Pringles"` {
		t.Errorf("capitalized entries must be terminals, got %v", opts)
	}
}

func TestWordListFunctionParse(t *testing.T) {
	g := robotGrammar(t)

	MustParse(t, g, "C", "bring me the coke", map[string]interface{}{
		"action": "bring",
		"entity": "coke",
		"to":     map[string]interface{}{"special": "operator"},
	})
}
