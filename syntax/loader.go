package syntax

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/tue-robotics/grammar-parser/common"
)

// Builder accumulates rules while a grammar is being loaded.  Once Build is
// called the rules are validated and handed over to an immutable Grammar; the
// builder must not be used afterwards.
type Builder struct {
	rules     map[string]*Rule
	order     []string
	functions map[string]Function

	maxDepth int
	strict   bool
}

// NewBuilder creates an empty builder with the default recursion limit
func NewBuilder() *Builder {
	return &Builder{
		rules:     make(map[string]*Rule),
		functions: make(map[string]Function),
		maxDepth:  common.DefaultMaxDepth,
	}
}

// SetFunction registers an expansion function.  Functions must be registered
// before Build since the grammar is checked against them.
func (b *Builder) SetFunction(name string, fn Function) {
	b.functions[name] = fn
}

// SetMaxDepth sets the recursion limit of the built grammar: the number of
// nested rule and function expansions a traversal may make.  Right-recursive
// rules expand once per repetition, so the limit also bounds how long the
// sentences matched by them can be.  Values below one restore the default.
func (b *Builder) SetMaxDepth(depth int) {
	if depth < 1 {
		depth = common.DefaultMaxDepth
	}

	b.maxDepth = depth
}

// SetStrictSemantics enables the strict template mode in which every semantics
// key must occur exactly once in the template it belongs to
func (b *Builder) SetStrictSemantics(strict bool) {
	b.strict = strict
}

// AddRule parses a single grammar line and merges its options into the rule
// with the same left name
func (b *Builder) AddRule(line string) error {
	return b.addRule(line, 0)
}

func (b *Builder) addRule(line string, lineNumber int) error {
	rule, err := ruleFromDefinition(line)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Line = lineNumber
		}

		return err
	}

	if original, ok := b.rules[rule.Name]; ok {
		original.Options = append(original.Options, rule.Options...)
	} else {
		b.rules[rule.Name] = rule
		b.order = append(b.order, rule.Name)
	}

	return nil
}

// LoadString adds every rule declared in the given grammar text
func (b *Builder) LoadString(text string) error {
	gl := &gramLoader{reader: bufio.NewReader(strings.NewReader(text)), builder: b}
	return gl.load()
}

// LoadFile adds every rule declared in the grammar file at path
func (b *Builder) LoadFile(path string) error {
	buff, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return b.LoadString(string(buff))
}

// Build validates the loaded rules and returns the finished grammar
func (b *Builder) Build() (*Grammar, error) {
	if err := b.checkRules(); err != nil {
		return nil, err
	}

	if b.strict {
		for _, name := range b.order {
			for _, opt := range b.rules[name].Options {
				if err := checkTemplate(opt); err != nil {
					return nil, err
				}
			}
		}
	}

	return &Grammar{
		rules:     b.rules,
		order:     b.order,
		functions: b.functions,
		maxDepth:  b.maxDepth,
		strict:    b.strict,
	}, nil
}

// checkRules verifies that no option refers to a missing rule or function.
// Options produced by functions at parse time are not covered and are checked
// when they are traversed.
func (b *Builder) checkRules() error {
	for _, name := range b.order {
		for _, opt := range b.rules[name].Options {
			for _, conj := range opt.Conjuncts {
				switch conj.Kind {
				case KindRule:
					if _, ok := b.rules[conj.Name]; !ok {
						return &UndefinedError{Name: conj.Name, Referrer: name}
					}
				case KindFunction:
					if _, ok := b.functions[conj.FunctionName()]; !ok {
						return &UndefinedError{Name: conj.FunctionName(), Referrer: name, Function: true}
					}
				}
			}
		}
	}

	return nil
}

// LoadGrammar loads and validates a grammar without any functions
func LoadGrammar(text string) (*Grammar, error) {
	b := NewBuilder()
	if err := b.LoadString(text); err != nil {
		return nil, err
	}

	return b.Build()
}

// LoadGrammarFile loads and validates a grammar file without any functions
func LoadGrammarFile(path string) (*Grammar, error) {
	b := NewBuilder()
	if err := b.LoadFile(path); err != nil {
		return nil, err
	}

	return b.Build()
}

// -----------------------------------------------------------------------------

// gramLoader splits grammar text into rule lines.  Both newlines and `;` end a
// line; blank lines and comment lines are skipped.
type gramLoader struct {
	reader  *bufio.Reader
	builder *Builder
	line    int
}

func (gl *gramLoader) load() error {
	for {
		text, err := gl.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}

		if text != "" {
			gl.line++

			if lerr := gl.loadLine(text); lerr != nil {
				return lerr
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

// loadLine adds the rules of a single line of grammar text.  Lines may be of
// any length.
func (gl *gramLoader) loadLine(text string) error {
	for _, stmt := range strings.Split(text, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || stmt[0] == common.CommentMarker {
			continue
		}

		if err := gl.builder.addRule(stmt, gl.line); err != nil {
			return err
		}
	}

	return nil
}

// ruleFromDefinition parses a line of the form `NAME[sem] -> a b | c`
func ruleFromDefinition(line string) (*Rule, error) {
	sides := strings.Split(line, common.Arrow)
	if len(sides) != 2 {
		return nil, &LoadError{Text: line, Reason: "expected exactly one ` -> ` arrow"}
	}

	// any text following the left name and its semantics is ignored
	lname, lsem, _, err := parseNextAtom(sides[0])
	if err != nil {
		return nil, withLine(err, line)
	}

	if lname == "" {
		return nil, &LoadError{Text: line, Reason: "missing rule name"}
	}

	opts, err := ParseOptions(sides[1], lsem)
	if err != nil {
		return nil, withLine(err, line)
	}

	return &Rule{Name: lname, Options: opts}, nil
}

// withLine makes a load error report the whole grammar line it occurred in
func withLine(err error, line string) error {
	if le, ok := err.(*LoadError); ok {
		le.Text = line
	}

	return err
}

// ParseOptions parses the right-hand side of a rule definition into its
// options, all of which carry the given semantics template.  Functions can use
// it to build the options they return.
func ParseOptions(definition, semantics string) ([]*Option, error) {
	var opts []*Option

	for _, optText := range strings.Split(definition, "|") {
		optText = strings.TrimSpace(optText)
		opt := &Option{Semantics: semantics}

		for optText != "" {
			name, sem, rest, err := parseNextAtom(optText)
			if err != nil {
				return nil, err
			}

			if name == "" {
				return nil, &LoadError{Text: definition, Reason: "missing atom name"}
			}

			opt.Conjuncts = append(opt.Conjuncts, NewConjunct(name, sem))
			optText = rest
		}

		opts = append(opts, opt)
	}

	return opts, nil
}

// parseNextAtom reads the atom at the front of s.  For "VP[X, Y] foo bar" it
// returns ("VP", "X, Y", "foo bar").
func parseNextAtom(s string) (name, semantics, rest string, err error) {
	s = strings.TrimSpace(s)

	for i, c := range s {
		switch c {
		case ' ':
			return s[:i], "", strings.TrimSpace(s[i:]), nil
		case '[':
			j := strings.IndexRune(s[i:], ']')
			if j < 0 {
				return "", "", "", &LoadError{Text: s, Reason: "unclosed `[`"}
			}

			j += i
			return s[:i], s[i+1 : j], strings.TrimSpace(s[j+1:]), nil
		}
	}

	return s, "", "", nil
}
