package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tue-robotics/grammar-parser/common"
)

// Kind designates what a conjunct refers to.  It is decided once when the
// conjunct is created and never re-evaluated.
type Kind int

// Enumeration of conjunct kinds
const (
	KindTerminal Kind = iota // literal word matched verbatim
	KindRule                 // reference to another rule by its left name
	KindFunction             // reference to a registered expansion function
)

func (k Kind) String() string {
	switch k {
	case KindRule:
		return "rule"
	case KindFunction:
		return "function"
	default:
		return "terminal"
	}
}

// Conjunct is a single grammar symbol inside an option.  Semantics is the local
// semantics key: the substring of the enclosing option's semantics template
// that is replaced by whatever matched this conjunct.
type Conjunct struct {
	Name      string
	Semantics string
	Kind      Kind
}

// NewConjunct creates a conjunct and classifies it based on the first
// character of its name: an uppercase letter makes it a rule reference and the
// function marker makes it a function reference.
func NewConjunct(name, semantics string) Conjunct {
	c := Conjunct{Name: name, Semantics: semantics}

	first, _ := utf8.DecodeRuneInString(name)
	switch {
	case unicode.IsUpper(first):
		c.Kind = KindRule
	case first == common.FunctionMarker:
		c.Kind = KindFunction
	default:
		c.Kind = KindTerminal
	}

	return c
}

// FunctionName returns the name of the referenced function without the marker
func (c Conjunct) FunctionName() string {
	return strings.TrimPrefix(c.Name, string(common.FunctionMarker))
}

func (c Conjunct) String() string {
	if c.Kind == KindTerminal {
		return c.Name
	}

	return c.Semantics + "=" + c.Name
}

// Option is one `|` separated alternative of a rule.  The semantics template is
// inherited from the rule declaration it was written in.
type Option struct {
	Semantics string
	Conjuncts []Conjunct
}

// Equal reports whether two options have the same template and conjuncts
func (o *Option) Equal(other *Option) bool {
	if o == nil || other == nil {
		return o == other
	}

	if o.Semantics != other.Semantics || len(o.Conjuncts) != len(other.Conjuncts) {
		return false
	}

	for i, conj := range o.Conjuncts {
		if conj != other.Conjuncts[i] {
			return false
		}
	}

	return true
}

func (o *Option) String() string {
	sb := strings.Builder{}
	sb.WriteString("[" + o.Semantics + "]")

	for _, conj := range o.Conjuncts {
		sb.WriteRune(' ')
		sb.WriteString(conj.String())
	}

	return sb.String()
}

// Rule is the set of all options declared for a left name.  The order of the
// options is the order in which they are tried.
type Rule struct {
	Name    string
	Options []*Option
}

// Equal reports whether two rules have the same name and options
func (r *Rule) Equal(other *Rule) bool {
	if r.Name != other.Name || len(r.Options) != len(other.Options) {
		return false
	}

	for i, opt := range r.Options {
		if !opt.Equal(other.Options[i]) {
			return false
		}
	}

	return true
}

// Function is an expansion callback referenced from the grammar as `$name`.  It
// receives the words that remain to be matched and returns the options to try
// in place of a rule lookup.  Functions may be called concurrently when the
// grammar is shared between goroutines.
type Function func(words []string) []*Option

// Grammar is a loaded, validated grammar.  It is never modified after Build and
// can be used from multiple goroutines at once.
type Grammar struct {
	rules     map[string]*Rule
	order     []string
	functions map[string]Function

	// maxDepth bounds the recursion of every traversal
	maxDepth int

	// strict makes semantics extraction fail when a semantics key does not
	// occur exactly once in its template
	strict bool
}

// Rule returns a copy of the rule with the given left name.  Changing the copy
// does not affect the grammar.
func (g *Grammar) Rule(name string) (*Rule, bool) {
	r, ok := g.rules[name]
	if !ok {
		return nil, false
	}

	return r.clone(), true
}

func (r *Rule) clone() *Rule {
	c := &Rule{Name: r.Name, Options: make([]*Option, len(r.Options))}
	for i, opt := range r.Options {
		c.Options[i] = &Option{
			Semantics: opt.Semantics,
			Conjuncts: append([]Conjunct(nil), opt.Conjuncts...),
		}
	}

	return c
}

// RuleNames returns the left names of all rules in declaration order
func (g *Grammar) RuleNames() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// HasFunction reports whether a function was registered under name (without
// the marker)
func (g *Grammar) HasFunction(name string) bool {
	_, ok := g.functions[name]
	return ok
}

// MaxDepth returns the recursion limit used by the grammar's traversals
func (g *Grammar) MaxDepth() int {
	return g.maxDepth
}

// Tokenize splits a sentence into words on whitespace
func Tokenize(sentence string) []string {
	return strings.Fields(sentence)
}
