// Package toc parses navigation descriptors into a tree of navigation nodes,
// dropping entries that point outside the documentation corpus.
package toc

import (
	"strconv"
	"strings"
)

// Kind classifies a navigation node.
type Kind int

const (
	KindUnknown Kind = iota
	KindGroup
	KindLeaf
	KindDivider
)

// Descriptor type values.
const (
	TypeGroup   = "group"
	TypeItem    = "item"
	TypeDivider = "divider"
)

// String returns the descriptor spelling of k.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return TypeGroup
	case KindLeaf:
		return TypeItem
	case KindDivider:
		return TypeDivider
	default:
		return "unknown"
	}
}

// kindOf maps a descriptor type value to a Kind.
func kindOf(typ string) Kind {
	switch typ {
	case TypeGroup:
		return KindGroup
	case TypeItem:
		return KindLeaf
	case TypeDivider:
		return KindDivider
	default:
		return KindUnknown
	}
}

// Path identifies a node by its child indexes from the root, e.g. "0.2.1".
// Paths are stable for a given descriptor and are used to attach data to
// nodes without modifying the tree.
type Path string

// childPath returns the path of the i-th child under p.
func (p Path) childPath(i int) Path {
	if p == "" {
		return Path(strconv.Itoa(i))
	}
	return p + "." + Path(strconv.Itoa(i))
}

// Indexes returns the numeric components of p.
func (p Path) Indexes() []int {
	if p == "" {
		return nil
	}
	parts := strings.Split(string(p), ".")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		out = append(out, n)
	}
	return out
}

// Node is one entry of the navigation tree. Nodes are built once by Parse and
// must be treated as read-only afterwards.
type Node struct {
	Kind     Kind
	Title    string
	URI      string
	Slug     string
	Depth    int // 1 at the root level
	Path     Path
	Children []*Node // groups only
}

// Tree is a parsed, filtered navigation tree.
type Tree struct {
	Roots []*Node
}

// Walk visits every node in pre-order: parents before children, children in
// descriptor order. Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(*Node) bool) {
	walkNodes(t.Roots, fn)
}

func walkNodes(nodes []*Node, fn func(*Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		walkNodes(n.Children, fn)
	}
}

// Count returns the number of nodes of every kind.
func (t *Tree) Count() int {
	count := 0
	t.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Leaves returns all leaf nodes in pre-order.
func (t *Tree) Leaves() []*Node {
	var leaves []*Node
	t.Walk(func(n *Node) bool {
		if n.Kind == KindLeaf {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// Find returns the node at path p.
func (t *Tree) Find(p Path) (*Node, bool) {
	idxs := p.Indexes()
	if len(idxs) == 0 {
		return nil, false
	}
	nodes := t.Roots
	var cur *Node
	for _, i := range idxs {
		if i < 0 || i >= len(nodes) {
			return nil, false
		}
		cur = nodes[i]
		nodes = cur.Children
	}
	return cur, true
}
