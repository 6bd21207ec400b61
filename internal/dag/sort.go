package dag

import "container/heap"

// Less orders two ready nodes. It must be a strict weak ordering.
type Less func(a, b string) bool

// Sort returns the nodes in topological order. Among nodes whose dependencies
// are all emitted, the one that sorts first under less comes next; a nil less
// falls back to insertion order. Nodes that cannot be emitted because they
// sit on or behind a cycle are returned as blocked, in insertion order.
func (g *Graph) Sort(less Less) (sorted, blocked []string) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	indegree := make(map[*node]int, len(g.order))
	ready := &readySet{less: less}
	for _, n := range g.order {
		indegree[n] = len(n.deps)
		if indegree[n] == 0 {
			ready.nodes = append(ready.nodes, n)
		}
	}
	heap.Init(ready)

	sorted = make([]string, 0, len(g.order))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(*node)
		sorted = append(sorted, n.id)
		for _, succ := range n.succList {
			indegree[succ]--
			if indegree[succ] == 0 {
				heap.Push(ready, succ)
			}
		}
	}

	for _, n := range g.order {
		if indegree[n] > 0 {
			blocked = append(blocked, n.id)
		}
	}
	return sorted, blocked
}

// readySet is a heap of nodes ordered by less, then insertion order.
type readySet struct {
	nodes []*node
	less  Less
}

func (r *readySet) Len() int { return len(r.nodes) }

func (r *readySet) Less(i, j int) bool {
	a, b := r.nodes[i], r.nodes[j]
	if r.less != nil {
		if r.less(a.id, b.id) {
			return true
		}
		if r.less(b.id, a.id) {
			return false
		}
	}
	return a.seq < b.seq
}

func (r *readySet) Swap(i, j int) { r.nodes[i], r.nodes[j] = r.nodes[j], r.nodes[i] }

func (r *readySet) Push(x any) { r.nodes = append(r.nodes, x.(*node)) }

func (r *readySet) Pop() any {
	old := r.nodes
	n := old[len(old)-1]
	r.nodes = old[:len(old)-1]
	return n
}
