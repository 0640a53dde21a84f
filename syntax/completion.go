package syntax

// completer collects the words that may follow a prefix
type completer struct {
	g     *Grammar
	tree  *Tree
	depth int

	next []string
	seen map[string]struct{}
}

// NextWords returns the words that can follow the given prefix of a sentence
// for the target rule, without duplicates.  Completion is best effort: missing
// rules and functions and overly deep grammars simply yield fewer suggestions.
func (g *Grammar) NextWords(target string, words []string) []string {
	rule, ok := g.rules[target]
	if !ok {
		return nil
	}

	c := &completer{g: g, seen: make(map[string]struct{})}
	for _, opt := range rule.Options {
		c.tree = newTree(opt)
		c.complete(0, 0, words)
	}

	return c.next
}

func (c *completer) add(word string) {
	if _, ok := c.seen[word]; !ok {
		c.seen[word] = struct{}{}
		c.next = append(c.next, word)
	}
}

func (c *completer) complete(node, idx int, words []string) {
	if node == noTree {
		return
	}

	opt := c.tree.nodes[node].option
	if idx == len(opt.Conjuncts) {
		nextNode, nextIdx := c.tree.next(node, idx)
		c.complete(nextNode, nextIdx, words)
		return
	}

	conj := opt.Conjuncts[idx]
	if conj.Kind == KindTerminal {
		if len(words) == 0 {
			c.add(conj.Name)
		} else if conj.Name == words[0] {
			nextNode, nextIdx := c.tree.next(node, idx)
			c.complete(nextNode, nextIdx, words[1:])
		}

		return
	}

	if c.depth >= c.g.maxDepth {
		return
	}

	c.depth++
	defer func() { c.depth-- }()

	options, err := c.g.expand(conj, words)
	if err != nil {
		return
	}

	mark := len(c.tree.nodes)
	for _, candidate := range options {
		child := c.tree.addSubtree(node, idx, candidate)
		c.complete(child, 0, words)
		c.tree.truncate(mark)
	}
}
