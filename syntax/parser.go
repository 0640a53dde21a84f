package syntax

import (
	"errors"

	"github.com/tue-robotics/grammar-parser/logging"
)

// parser holds the state of matching one sentence against one top-level
// option of the target rule
type parser struct {
	g     *Grammar
	tree  *Tree
	words []string

	// depth is the current recursion depth of parse
	depth int
}

// ParseTree matches words against the target rule and returns the tree of the
// first option that matches the complete sentence.  Options are tried in
// declaration order.  If none matches, a *ParseError reports the furthest word
// index reached by any of them.
func (g *Grammar) ParseTree(target string, words []string) (*Tree, error) {
	rule, ok := g.rules[target]
	if !ok {
		return nil, &UndefinedError{Name: target}
	}

	bestFail := -1
	for _, opt := range rule.Options {
		p := &parser{g: g, tree: newTree(opt), words: words}

		fail, ok, err := p.parse(0, 0, 0)
		if err != nil {
			return nil, err
		}

		if ok {
			return p.tree, nil
		}

		// the first option failing at the furthest index wins
		if fail > bestFail {
			bestFail = fail
		}
	}

	if bestFail < 0 {
		bestFail = 0
	}

	return nil, &ParseError{Words: words, Index: bestFail}
}

// ParseRaw matches words against the target rule and returns the decoded
// semantics of the first matching option.  All failures are returned as
// errors: a *ParseError for sentences that do not match, and grammar or
// semantics errors otherwise.
func (g *Grammar) ParseRaw(target string, words []string) (interface{}, error) {
	tree, err := g.ParseTree(target, words)
	if err != nil {
		return nil, err
	}

	return g.Semantics(tree)
}

// Parse is the non-raising form of ParseRaw: failures are logged and reported
// through the returned flag
func (g *Grammar) Parse(target string, words []string) (interface{}, bool) {
	sem, err := g.ParseRaw(target, words)
	if err != nil {
		LogError(err)
		return nil, false
	}

	return sem, true
}

// LogError logs an error returned by this package with the logging package.
// Sentences that fail to match are displayed with the failing word marked.
func LogError(err error) {
	var pe *ParseError
	if errors.As(err, &pe) {
		logging.LogSentenceError(pe.Words, pe.Index, pe.Error())
		return
	}

	switch {
	case errors.Is(err, ErrSemanticsDecode):
		logging.LogGrammarError("Semantics", err.Error())
	case errors.Is(err, ErrRecursionLimit):
		logging.LogGrammarError("Recursion", err.Error())
	default:
		logging.LogGrammarError("Grammar", err.Error())
	}
}

// parse tries to match the words from wordIndex onward starting at conjunct
// idx of node.  On failure it returns the furthest word index that any
// alternative got to; that index may equal the number of words, indicating
// that words are missing.
func (p *parser) parse(node, idx, wordIndex int) (int, bool, error) {
	if node == noTree {
		// ran out of grammar: only a success if we ran out of words too
		if wordIndex == len(p.words) {
			return 0, true, nil
		}

		return wordIndex, false, nil
	}

	opt := p.tree.nodes[node].option
	if idx == len(opt.Conjuncts) {
		nextNode, nextIdx := p.tree.next(node, idx)
		return p.parse(nextNode, nextIdx, wordIndex)
	}

	conj := opt.Conjuncts[idx]
	if conj.Kind == KindTerminal {
		if wordIndex >= len(p.words) || conj.Name != p.words[wordIndex] {
			return wordIndex, false, nil
		}

		nextNode, nextIdx := p.tree.next(node, idx)
		return p.parse(nextNode, nextIdx, wordIndex+1)
	}

	// only rule and function expansions count towards the limit
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.g.maxDepth {
		return 0, false, &RecursionError{Rule: conj.Name, Depth: p.depth}
	}

	options, err := p.g.expand(conj, p.words[wordIndex:])
	if err != nil {
		return 0, false, err
	}

	bestFail := wordIndex
	mark := len(p.tree.nodes)
	for _, candidate := range options {
		child := p.tree.addSubtree(node, idx, candidate)

		fail, ok, err := p.parse(child, 0, wordIndex)
		if err != nil || ok {
			return fail, ok, err
		}

		if fail > bestFail {
			bestFail = fail
		}

		p.tree.truncate(mark)
	}

	return bestFail, false, nil
}

// expand returns the candidate options for a rule or function conjunct.  words
// are the words that remain to be matched at the conjunct.
func (g *Grammar) expand(conj Conjunct, words []string) ([]*Option, error) {
	if conj.Kind == KindFunction {
		fn, ok := g.functions[conj.FunctionName()]
		if !ok {
			return nil, &UndefinedError{Name: conj.FunctionName(), Function: true}
		}

		return fn(words), nil
	}

	rule, ok := g.rules[conj.Name]
	if !ok {
		return nil, &UndefinedError{Name: conj.Name}
	}

	return rule.Options, nil
}
