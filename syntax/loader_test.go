package syntax

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func MustLoad(t *testing.T, text string) *Grammar {
	t.Helper()
	g, err := LoadGrammar(text)
	if err != nil {
		t.Fatalf("unexpected error loading grammar: %s", err)
	}
	return g
}

func TestParseNextAtom(t *testing.T) {
	cases := []struct {
		in                    string
		name, semantics, rest string
	}{
		{`SIDE["left"]`, "SIDE", `"left"`, ""},
		{`VP["action": A]`, "VP", `"action": A`, ""},
		{`VP["action": "arm-goal", "symbolic": "reset", "side": S]`, "VP", `"action": "arm-goal", "symbolic": "reset", "side": S`, ""},
		{"VP[X, Y] foo bar", "VP", "X, Y", "foo bar"},
		{"  foo   bar ", "foo", "", "bar"},
		{"foo", "foo", "", ""},
		{"", "", "", ""},
	}

	for _, c := range cases {
		name, semantics, rest, err := parseNextAtom(c.in)
		if err != nil {
			t.Errorf("parseNextAtom(%q): unexpected error %s", c.in, err)
			continue
		}

		if name != c.name || semantics != c.semantics || rest != c.rest {
			t.Errorf("parseNextAtom(%q) = (%q, %q, %q), expected (%q, %q, %q)",
				c.in, name, semantics, rest, c.name, c.semantics, c.rest)
		}
	}
}

func TestParseNextAtomUnclosed(t *testing.T) {
	_, _, _, err := parseNextAtom("VP[X foo")
	if !errors.Is(err, ErrMalformedGrammar) {
		t.Errorf("expected malformed grammar error, got %v", err)
	}
}

func TestNewConjunct(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
	}{
		{"left", KindTerminal},
		{"SIDE", KindRule},
		{"V_GRASP", KindRule},
		{"$object", KindFunction},
		{"3", KindTerminal},
	}

	for _, c := range cases {
		if got := NewConjunct(c.name, "").Kind; got != c.kind {
			t.Errorf("NewConjunct(%q).Kind = %s, expected %s", c.name, got, c.kind)
		}
	}

	if name := NewConjunct("$object", "O").FunctionName(); name != "object" {
		t.Errorf("FunctionName() = %q, expected \"object\"", name)
	}
}

func TestOptionEquality(t *testing.T) {
	a := &Option{Semantics: `"left"`, Conjuncts: []Conjunct{NewConjunct("left", "")}}
	b := &Option{Semantics: `"left"`, Conjuncts: []Conjunct{NewConjunct("left", "")}}
	c := &Option{Semantics: `"right"`, Conjuncts: []Conjunct{NewConjunct("right", "")}}

	if !a.Equal(b) {
		t.Error("identical options are not equal")
	}

	if a.Equal(c) {
		t.Error("different options are equal")
	}

	ra := &Rule{Name: "SIDE", Options: []*Option{a}}
	rb := &Rule{Name: "SIDE", Options: []*Option{b}}
	if !ra.Equal(rb) {
		t.Error("identical rules are not equal")
	}
}

func TestAddRule(t *testing.T) {
	b := NewBuilder()
	if err := b.AddRule(`V_GRASP["pick-up"] -> grab | grasp | pick`); err != nil {
		t.Fatal(err)
	}

	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	rule, ok := g.Rule("V_GRASP")
	if !ok {
		t.Fatal("rule V_GRASP is missing")
	}

	expected := &Rule{
		Name: "V_GRASP",
		Options: []*Option{
			{Semantics: `"pick-up"`, Conjuncts: []Conjunct{NewConjunct("grab", "")}},
			{Semantics: `"pick-up"`, Conjuncts: []Conjunct{NewConjunct("grasp", "")}},
			{Semantics: `"pick-up"`, Conjuncts: []Conjunct{NewConjunct("pick", "")}},
		},
	}

	if !rule.Equal(expected) {
		t.Errorf("got rule %v, expected %v", rule.Options, expected.Options)
	}
}

func TestMergeRules(t *testing.T) {
	g := MustLoad(t, `
		# sides, declared over several lines
		SIDE["left"] -> left
		ARM[S] -> SIDE[S] arm
		SIDE["right"] -> right; SIDE["left"] -> port
	`)

	if diff := cmp.Diff([]string{"SIDE", "ARM"}, g.RuleNames()); diff != "" {
		t.Errorf("rule order mismatch (-want +got):\n%s", diff)
	}

	rule, _ := g.Rule("SIDE")
	var got []string
	for _, opt := range rule.Options {
		got = append(got, opt.Semantics+" "+opt.Conjuncts[0].Name)
	}

	expected := []string{`"left" left`, `"right" right`, `"left" port`}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyOptions(t *testing.T) {
	g := MustLoad(t, "D -> | r")

	rule, _ := g.Rule("D")
	if len(rule.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(rule.Options))
	}

	if len(rule.Options[0].Conjuncts) != 0 {
		t.Errorf("expected the first option to be empty, got %v", rule.Options[0])
	}
}

func TestMalformedGrammar(t *testing.T) {
	cases := []struct {
		text string
		line int
	}{
		{"A - > b", 1},
		{"A -> b -> c", 1},
		{"A ->", 1},
		{"\n\nA -> b[c", 3},
		{"A[x -> b", 1},
		{"[x] -> b", 1},
	}

	for _, c := range cases {
		_, err := LoadGrammar(c.text)
		if !errors.Is(err, ErrMalformedGrammar) {
			t.Errorf("LoadGrammar(%q): expected malformed grammar error, got %v", c.text, err)
			continue
		}

		var le *LoadError
		if !errors.As(err, &le) {
			t.Errorf("LoadGrammar(%q): expected a *LoadError, got %T", c.text, err)
		} else if le.Line != c.line {
			t.Errorf("LoadGrammar(%q): error on line %d, expected line %d", c.text, le.Line, c.line)
		}
	}
}

func TestMissingReferences(t *testing.T) {
	_, err := LoadGrammar("A -> go B")

	var ue *UndefinedError
	if !errors.As(err, &ue) || ue.Name != "B" || ue.Referrer != "A" || ue.Function {
		t.Errorf("expected missing rule B in A, got %v", err)
	}

	if !errors.Is(err, ErrUndefinedRule) || !errors.Is(err, ErrGrammarDefinition) {
		t.Errorf("error %v is not an undefined rule error", err)
	}

	_, err = LoadGrammar("A -> bring $object")
	if !errors.Is(err, ErrUndefinedFunction) || !errors.Is(err, ErrGrammarDefinition) {
		t.Errorf("expected undefined function error, got %v", err)
	}

	b := NewBuilder()
	b.SetFunction("object", NewWordListFunction([]string{"coke"}))
	if err := b.LoadString("A -> bring $object"); err != nil {
		t.Fatal(err)
	}

	if _, err := b.Build(); err != nil {
		t.Errorf("unexpected error with registered function: %s", err)
	}
}

func TestLoadGrammarFile(t *testing.T) {
	g, err := LoadGrammarFile("testdata/directions.fcfg")
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"T", "V", "SIDE", "FILLER"}, g.RuleNames()); diff != "" {
		t.Errorf("rule names mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadGrammarFile("testdata/missing.fcfg"); err == nil {
		t.Error("expected an error loading a missing file")
	}
}

func TestLongLines(t *testing.T) {
	objects := make([]string, 10000)
	for i := range objects {
		objects[i] = fmt.Sprintf("object%d", i)
	}

	line := `T["x"] -> ` + strings.Join(objects, " | ")
	if len(line) <= 64*1024 {
		t.Fatalf("test line is only %d bytes", len(line))
	}

	g := MustLoad(t, "# objects\n"+line+"\nS -> T")

	rule, _ := g.Rule("T")
	if len(rule.Options) != len(objects) {
		t.Errorf("expected %d options, got %d", len(objects), len(rule.Options))
	}

	MustParse(t, g, "S", "object9999", "x")

	_, err := LoadGrammar(line + "\nU -> a[b")
	var le *LoadError
	if !errors.As(err, &le) || le.Line != 2 {
		t.Errorf("expected a load error on line 2, got %v", err)
	}
}

func TestRuleIsCopied(t *testing.T) {
	g := MustLoad(t, `SIDE["left"] -> left`)

	rule, _ := g.Rule("SIDE")
	rule.Options[0].Conjuncts[0].Name = "right"
	rule.Options = append(rule.Options, &Option{Semantics: `"up"`, Conjuncts: []Conjunct{NewConjunct("up", "")}})

	MustParse(t, g, "SIDE", "left", "left")
	MustFailAt(t, g, "SIDE", "up", 0)

	again, _ := g.Rule("SIDE")
	if len(again.Options) != 1 || again.Options[0].Conjuncts[0].Name != "left" {
		t.Errorf("grammar was changed through a returned rule: %v", again.Options)
	}
}
