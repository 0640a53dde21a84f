package syntax

import (
	"errors"
	"math/rand"
	"testing"
)

func TestUnwrap(t *testing.T) {
	g := MustLoad(t, `
		T -> a B | c
		B -> x | y
		S -> a b
		D -> | r
		E -> go D
	`)

	cases := []struct {
		rule     string
		expected string
	}{
		{"T", "(a (x|y)|c)"},
		{"S", "a b"},
		{"D", "(|r)"},
		{"E", "go (|r)"},
	}

	for _, c := range cases {
		got, err := g.Unwrap(c.rule)
		if err != nil {
			t.Errorf("Unwrap(%s): unexpected error %s", c.rule, err)
			continue
		}

		if got != c.expected {
			t.Errorf("Unwrap(%s) = %q, expected %q", c.rule, got, c.expected)
		}
	}
}

func TestUnwrapFunctions(t *testing.T) {
	b := NewBuilder()
	b.SetFunction("object", NewWordListFunction([]string{"coke"}))
	if err := b.LoadString("T -> bring $object"); err != nil {
		t.Fatal(err)
	}

	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := g.Unwrap("T"); got != "bring $object" {
		t.Errorf("Unwrap(T) = %q, expected \"bring $object\"", got)
	}
}

func TestVerify(t *testing.T) {
	g := MustLoad(t, `
		T -> a B
		B -> b
	`)

	if err := g.VerifyAll(); err != nil {
		t.Errorf("unexpected error: %s", err)
	}

	if err := g.Verify("MISSING"); !errors.Is(err, ErrUndefinedRule) {
		t.Errorf("expected undefined rule error, got %v", err)
	}
}

func TestUnwrapRecursion(t *testing.T) {
	b := NewBuilder()
	b.SetMaxDepth(100)
	if err := b.LoadString("A -> x A | y"); err != nil {
		t.Fatal(err)
	}

	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := g.RandomSentence("A", nil); !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("expected recursion error, got %v", err)
	}

	if err := g.VerifyAll(); !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("expected recursion error, got %v", err)
	}
}

func TestRandomSentenceRoundTrip(t *testing.T) {
	grammars := []string{"testdata/directions.fcfg"}

	for _, path := range grammars {
		g, err := LoadGrammarFile(path)
		if err != nil {
			t.Fatal(err)
		}

		rng := rand.New(rand.NewSource(1))
		for i := 0; i < 100; i++ {
			sentence, err := g.RandomSentence("T", rng)
			if err != nil {
				t.Fatal(err)
			}

			if _, err := g.ParseRaw("T", Tokenize(sentence)); err != nil {
				t.Errorf("generated sentence %q does not parse: %s", sentence, err)
			}
		}
	}
}

func TestRandomSentenceCoverage(t *testing.T) {
	g := MustLoad(t, "T -> a | b")

	seen := make(map[string]bool)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		sentence, err := g.RandomSentence("T", rng)
		if err != nil {
			t.Fatal(err)
		}

		seen[sentence] = true
	}

	if len(seen) != 2 || !seen["a"] || !seen["b"] {
		t.Errorf("expected both sentences to be generated, got %v", seen)
	}
}
