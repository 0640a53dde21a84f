package syntax

import (
	"strings"
)

// noTree marks an empty subtree slot and the absence of a parent
const noTree = -1

// treeNode is one instantiation of an option during a parse.  It holds one
// subtree slot per conjunct; only slots of rule and function conjuncts are
// ever filled.
type treeNode struct {
	option   *Option
	subtrees []int

	// parent is the node whose slot parentIdx holds this node
	parent    int
	parentIdx int
}

// Tree is an arena of parse nodes addressed by index.  The root is always node
// zero.  Retrying a slot overwrites its index so the nodes of failed attempts
// become unreachable.
type Tree struct {
	nodes []treeNode
}

func newTree(opt *Option) *Tree {
	t := &Tree{}
	t.newNode(opt, noTree, 0)
	return t
}

func (t *Tree) newNode(opt *Option, parent, parentIdx int) int {
	subtrees := make([]int, len(opt.Conjuncts))
	for i := range subtrees {
		subtrees[i] = noTree
	}

	t.nodes = append(t.nodes, treeNode{
		option:    opt,
		subtrees:  subtrees,
		parent:    parent,
		parentIdx: parentIdx,
	})

	return len(t.nodes) - 1
}

// addSubtree installs a fresh node for opt in slot idx of node, replacing any
// earlier attempt in that slot
func (t *Tree) addSubtree(node, idx int, opt *Option) int {
	child := t.newNode(opt, node, idx)
	t.nodes[node].subtrees[idx] = child
	return child
}

// truncate drops every node allocated after the arena had size n.  It is only
// valid once those nodes are unreachable, ie. after a failed attempt whose
// slots will all be overwritten before they are read again.
func (t *Tree) truncate(n int) {
	t.nodes = t.nodes[:n]
}

// next returns the position following conjunct idx of node, climbing to the
// parent when node is exhausted.  It returns noTree once the root is done.
func (t *Tree) next(node, idx int) (int, int) {
	for node != noTree {
		n := &t.nodes[node]
		if idx+1 < len(n.option.Conjuncts) {
			return node, idx + 1
		}

		node, idx = n.parent, n.parentIdx
	}

	return noTree, 0
}

// Root returns the option matched by the root of the tree
func (t *Tree) Root() *Option {
	return t.nodes[0].option
}

// String renders the tree with one conjunct per line, indenting the subtree of
// every rule or function conjunct below it
func (t *Tree) String() string {
	sb := &strings.Builder{}
	t.format(sb, 0, 0)
	return sb.String()
}

func (t *Tree) format(sb *strings.Builder, node, level int) {
	n := &t.nodes[node]
	for i, conj := range n.option.Conjuncts {
		sb.WriteString(strings.Repeat("    ", level))
		sb.WriteString("└───")
		sb.WriteString(conj.String())
		sb.WriteRune('\n')

		if n.subtrees[i] != noTree {
			t.format(sb, n.subtrees[i], level+1)
		}
	}
}
