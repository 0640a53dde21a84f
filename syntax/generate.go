package syntax

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// innermostGroup matches a parenthesized alternation without nested groups
var innermostGroup = regexp.MustCompile(`\([^()]*\)`)

// Unwrap renders a rule as an alternation string in which every rule
// reference is replaced by its own unwrapped text.  Rules with more than one
// option are parenthesized and their options separated by `|`.  Terminals and
// function references are rendered by name.
func (g *Grammar) Unwrap(name string) (string, error) {
	return g.unwrap(name, 0)
}

func (g *Grammar) unwrap(name string, depth int) (string, error) {
	rule, ok := g.rules[name]
	if !ok {
		return "", &UndefinedError{Name: name}
	}

	if depth >= g.maxDepth {
		return "", &RecursionError{Rule: name, Depth: depth}
	}

	optStrings := make([]string, 0, len(rule.Options))
	for _, opt := range rule.Options {
		var conjStrings []string

		for _, conj := range opt.Conjuncts {
			if conj.Kind != KindRule {
				conjStrings = append(conjStrings, conj.Name)
				continue
			}

			unwrapped, err := g.unwrap(conj.Name, depth+1)
			if err != nil {
				return "", err
			}

			if unwrapped != "" {
				conjStrings = append(conjStrings, unwrapped)
			}
		}

		optStrings = append(optStrings, strings.Join(conjStrings, " "))
	}

	s := strings.Join(optStrings, "|")
	if len(optStrings) > 1 {
		s = "(" + s + ")"
	}

	return s, nil
}

// Verify unwraps the target rule, forcing every rule reachable from it to
// resolve
func (g *Grammar) Verify(target string) error {
	_, err := g.Unwrap(target)
	return err
}

// VerifyAll verifies every rule of the grammar
func (g *Grammar) VerifyAll() error {
	for _, name := range g.order {
		if err := g.Verify(name); err != nil {
			return err
		}
	}

	return nil
}

// RandomSentence generates a sentence for the named rule by repeatedly
// replacing the innermost group of its unwrapped text with one of its branches.
// If rng is nil, a time-seeded source is used.  Recursive rules are reported
// as recursion errors by Unwrap.
func (g *Grammar) RandomSentence(name string, rng *rand.Rand) (string, error) {
	unwrapped, err := g.Unwrap(name)
	if err != nil {
		return "", err
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	text := "(" + unwrapped + ")"
	for {
		loc := innermostGroup.FindStringIndex(text)
		if loc == nil {
			break
		}

		branches := strings.Split(text[loc[0]+1:loc[1]-1], "|")
		text = text[:loc[0]] + " " + branches[rng.Intn(len(branches))] + " " + text[loc[1]:]
	}

	return strings.Join(strings.Fields(text), " "), nil
}
