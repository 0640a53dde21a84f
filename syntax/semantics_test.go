package syntax

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func strictBuilder(t *testing.T, text string) *Builder {
	t.Helper()
	b := NewBuilder()
	b.SetStrictSemantics(true)
	if err := b.LoadString(text); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDecodeSemantics(t *testing.T) {
	cases := []struct {
		text     string
		expected interface{}
	}{
		{"", nil},
		{`"left"`, "left"},
		{`<"a", "b">`, []interface{}{"a", "b"}},
		{`{"side": "left", "arms": <1, 2>}`, map[string]interface{}{"side": "left", "arms": []interface{}{1, 2}}},
	}

	for _, c := range cases {
		got, err := DecodeSemantics(c.text)
		if err != nil {
			t.Errorf("DecodeSemantics(%q): unexpected error %s", c.text, err)
			continue
		}

		if diff := cmp.Diff(c.expected, got); diff != "" {
			t.Errorf("DecodeSemantics(%q): mismatch (-want +got):\n%s", c.text, diff)
		}
	}
}

func TestSemanticsDecodeError(t *testing.T) {
	g := MustLoad(t, `T[{"a": ] -> x`)

	_, err := g.ParseRaw("T", []string{"x"})

	var se *SemanticsError
	if !errors.As(err, &se) || !errors.Is(err, ErrSemanticsDecode) {
		t.Errorf("expected a semantics error, got %v", err)
	}
}

func TestSemanticsText(t *testing.T) {
	g := MustLoad(t, `
		T[{"action": A, "side": S}] -> V[A] SIDE[S]
		V["move"] -> go
		SIDE["left"] -> left
	`)

	tree, err := g.ParseTree("T", Tokenize("go left"))
	if err != nil {
		t.Fatal(err)
	}

	text, err := g.SemanticsText(tree)
	if err != nil {
		t.Fatal(err)
	}

	if expected := `{"action": "move", "side": "left"}`; text != expected {
		t.Errorf("SemanticsText() = %s, expected %s", text, expected)
	}
}

func TestBlindReplacement(t *testing.T) {
	text := `
		T[{"a": X, "b": X}] -> A[X]
		A["1"] -> p
	`

	// every occurrence of the key is replaced
	g := MustLoad(t, text)
	MustParse(t, g, "T", "p", map[string]interface{}{"a": "1", "b": "1"})

	_, err := strictBuilder(t, text).Build()
	if !errors.Is(err, ErrAmbiguousTemplate) || !errors.Is(err, ErrSemanticsDecode) {
		t.Errorf("expected an ambiguous template error, got %v", err)
	}
}

func TestStrictSemantics(t *testing.T) {
	b := strictBuilder(t, `
		T[{"action": A, "side": S}] -> V[A] SIDE[S]
		V["move"] -> go
		SIDE["left"] -> left
	`)

	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	MustParse(t, g, "T", "go left", map[string]interface{}{"action": "move", "side": "left"})
}

func TestStrictSemanticsFunctionOptions(t *testing.T) {
	b := strictBuilder(t, "T[Z] -> $pair[Z]")
	b.SetFunction("pair", func(words []string) []*Option {
		opts, _ := ParseOptions("A[K]", `{"x": K, "y": K}`)
		return opts
	})

	if err := b.LoadString(`A["1"] -> p`); err != nil {
		t.Fatal(err)
	}

	g, err := b.Build()
	if err != nil {
		t.Fatalf("function options are not checked at load time, got %s", err)
	}

	_, err = g.ParseRaw("T", []string{"p"})
	if !errors.Is(err, ErrAmbiguousTemplate) {
		t.Errorf("expected an ambiguous template error, got %v", err)
	}
}
