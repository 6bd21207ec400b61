package dag

import "sync"

// Graph is a directed graph keyed by string ids. All operations on the graph
// are concurrency-safe.
type Graph struct {
	// mutex protects nodes and order.
	mutex sync.RWMutex
	nodes map[string]*node
	order []*node
}

// node is one vertex. Edge sets are mirrored as maps for membership and as
// slices for insertion-ordered iteration.
type node struct {
	id  string
	seq int

	deps       map[string]*node
	dependents map[string]*node
	depList    []*node
	succList   []*node
}
