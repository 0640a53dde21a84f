package syntax

import (
	"errors"
	"fmt"
)

// Error kinds.  Every error returned by this package wraps exactly one of them
// so callers can test with errors.Is.
var (
	ErrMalformedGrammar  = errors.New("malformed grammar")
	ErrGrammarDefinition = errors.New("grammar definition error")
	ErrUndefinedRule     = fmt.Errorf("%w: undefined rule", ErrGrammarDefinition)
	ErrUndefinedFunction = fmt.Errorf("%w: undefined function", ErrGrammarDefinition)
	ErrNoMatch           = errors.New("sentence does not match the grammar")
	ErrSemanticsDecode   = errors.New("unable to decode semantics")
	ErrAmbiguousTemplate = fmt.Errorf("%w: ambiguous semantics key", ErrSemanticsDecode)
	ErrRecursionLimit    = errors.New("recursion limit exceeded")
)

// LoadError is a syntax error in a line of grammar text
type LoadError struct {
	Line   int
	Text   string
	Reason string
}

func (le *LoadError) Error() string {
	if le.Line > 0 {
		return fmt.Sprintf("%s on line %d: `%s`", le.Reason, le.Line, le.Text)
	}

	return fmt.Sprintf("%s: `%s`", le.Reason, le.Text)
}

func (le *LoadError) Unwrap() error {
	return ErrMalformedGrammar
}

// UndefinedError reports a reference to a rule or function that does not
// exist.  Referrer is the left name of the rule containing the reference when
// it is known.
type UndefinedError struct {
	Name     string
	Referrer string
	Function bool
}

func (ue *UndefinedError) Error() string {
	kind := "rule"
	if ue.Function {
		kind = "function"
	}

	if ue.Referrer != "" {
		return fmt.Sprintf("%s '%s' referenced by '%s' does not exist", kind, ue.Name, ue.Referrer)
	}

	return fmt.Sprintf("%s '%s' does not exist", kind, ue.Name)
}

func (ue *UndefinedError) Unwrap() error {
	if ue.Function {
		return ErrUndefinedFunction
	}

	return ErrUndefinedRule
}

// ParseError indicates that a sentence does not match the grammar.  Index is
// the furthest word position reached by any alternative; an index equal to the
// number of words means that words are missing.
type ParseError struct {
	Words []string
	Index int
}

func (pe *ParseError) Error() string {
	if pe.MissingInput() {
		return fmt.Sprintf("word index %d is missing (sentence has %d words)", pe.Index, len(pe.Words))
	}

	return fmt.Sprintf("word '%s' at index %d failed to match", pe.Words[pe.Index], pe.Index)
}

func (pe *ParseError) Unwrap() error {
	return ErrNoMatch
}

// MissingInput reports whether the sentence ended before the grammar did
func (pe *ParseError) MissingInput() bool {
	return pe.Index < 0 || pe.Index >= len(pe.Words)
}

// SemanticsError is raised when the substituted semantics text cannot be
// decoded
type SemanticsError struct {
	Text string
	Err  error
}

func (se *SemanticsError) Error() string {
	return fmt.Sprintf("%s `%s`: %s", ErrSemanticsDecode, se.Text, se.Err)
}

func (se *SemanticsError) Unwrap() error {
	return se.Err
}

// Is makes every SemanticsError match ErrSemanticsDecode
func (se *SemanticsError) Is(target error) bool {
	return target == ErrSemanticsDecode
}

// RecursionError is raised when a traversal nests deeper than the grammar's
// maximum depth, which usually points at a left-recursive rule
type RecursionError struct {
	Rule  string
	Depth int
}

func (re *RecursionError) Error() string {
	return fmt.Sprintf("%s: depth %d reached while expanding '%s'", ErrRecursionLimit, re.Depth, re.Rule)
}

func (re *RecursionError) Unwrap() error {
	return ErrRecursionLimit
}
