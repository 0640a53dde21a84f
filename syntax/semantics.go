package syntax

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// bracketReplacer translates the angle bracket lists used in semantics
// templates into flow sequences
var bracketReplacer = strings.NewReplacer("<", "[", ">", "]")

// Semantics extracts the semantics text of a matched tree and decodes it into
// maps, slices and scalars
func (g *Grammar) Semantics(t *Tree) (interface{}, error) {
	text, err := g.SemanticsText(t)
	if err != nil {
		return nil, err
	}

	return DecodeSemantics(text)
}

// SemanticsText returns the semantics template of the root of the tree with
// every semantics key replaced by the semantics of the subtree matched for its
// conjunct.  Replacement is a plain substring replacement, so a key that also
// occurs elsewhere in the template is replaced there as well.
func (g *Grammar) SemanticsText(t *Tree) (string, error) {
	return g.semanticsOf(t, 0)
}

func (g *Grammar) semanticsOf(t *Tree, node int) (string, error) {
	n := &t.nodes[node]
	semantics := n.option.Semantics

	for i, child := range n.subtrees {
		if child == noTree {
			continue
		}

		childSemantics, err := g.semanticsOf(t, child)
		if err != nil {
			return "", err
		}

		key := n.option.Conjuncts[i].Semantics
		if g.strict {
			if err := checkKey(semantics, key, childSemantics); err != nil {
				return "", err
			}
		}

		semantics = strings.ReplaceAll(semantics, key, childSemantics)
	}

	return semantics, nil
}

// DecodeSemantics converts substituted semantics text into a value.  Empty
// text decodes to nil.
func DecodeSemantics(text string) (interface{}, error) {
	text = bracketReplacer.Replace(text)

	var value interface{}
	if err := yaml.Unmarshal([]byte(text), &value); err != nil {
		return nil, &SemanticsError{Text: text, Err: err}
	}

	return value, nil
}

// checkTemplate verifies that every semantics key of the rule and function
// conjuncts of opt occurs exactly once in its template
func checkTemplate(opt *Option) error {
	for _, conj := range opt.Conjuncts {
		if conj.Kind == KindTerminal || conj.Semantics == "" {
			continue
		}

		if n := strings.Count(opt.Semantics, conj.Semantics); n != 1 {
			return fmt.Errorf("%w: key '%s' occurs %d times in `%s`", ErrAmbiguousTemplate, conj.Semantics, n, opt.Semantics)
		}
	}

	return nil
}

// checkKey is the extraction-time counterpart of checkTemplate.  It also
// catches keys that reappear inside previously substituted text.
func checkKey(semantics, key, replacement string) error {
	if key == "" {
		if replacement != "" {
			return fmt.Errorf("%w: empty key would spread `%s` over `%s`", ErrAmbiguousTemplate, replacement, semantics)
		}

		return nil
	}

	if n := strings.Count(semantics, key); n != 1 {
		return fmt.Errorf("%w: key '%s' occurs %d times in `%s`", ErrAmbiguousTemplate, key, n, semantics)
	}

	return nil
}
