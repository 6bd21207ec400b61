package refs

import (
	"github.com/specialistvlad/irlink/internal/symbol"
)

// Node is one resolved row of the hierarchy.
type Node struct {
	Key      symbol.Key
	Symbol   *symbol.Symbol
	Children []*Node
}

// Forest is the resolved hierarchy.
type Forest struct {
	Roots []*Node

	index map[symbol.Key]*Node
}

// Find returns the node of key, or nil when the row takes part in no group.
func (f *Forest) Find(key symbol.Key) *Node {
	if f == nil {
		return nil
	}
	return f.index[key]
}

// Len is the number of distinct nodes.
func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.index)
}

// Walk visits every root and its descendants depth first, children in order.
// A shared node is visited once per path that reaches it. Returning false
// from fn skips the node's children.
func (f *Forest) Walk(fn func(n *Node, depth int) bool) {
	if f == nil {
		return
	}
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, r := range f.Roots {
		visit(r, 0)
	}
}
