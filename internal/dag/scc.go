package dag

import "sort"

// Cycles returns every strongly connected component that contains a cycle:
// components of two or more nodes, and single nodes with a self edge. Member
// ids are sorted and components are ordered by their first member, so the
// result does not depend on insertion order.
func (g *Graph) Cycles() [][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	t := tarjan{
		index:   make(map[*node]int, len(g.order)),
		lowlink: make(map[*node]int, len(g.order)),
		onStack: make(map[*node]bool, len(g.order)),
	}
	for _, n := range g.order {
		if _, seen := t.index[n]; !seen {
			t.connect(n)
		}
	}

	var cycles [][]string
	for _, comp := range t.components {
		if len(comp) == 1 {
			if _, self := comp[0].deps[comp[0].id]; !self {
				continue
			}
		}
		members := ids(comp)
		sort.Strings(members)
		cycles = append(cycles, members)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// tarjan holds the state of Tarjan's strongly connected components
// algorithm.
type tarjan struct {
	counter    int
	index      map[*node]int
	lowlink    map[*node]int
	onStack    map[*node]bool
	stack      []*node
	components [][]*node
}

func (t *tarjan) connect(v *node) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range v.succList {
		if _, seen := t.index[w]; !seen {
			t.connect(w)
			t.lowlink[v] = min(t.lowlink[v], t.lowlink[w])
		} else if t.onStack[w] {
			t.lowlink[v] = min(t.lowlink[v], t.index[w])
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}
	var comp []*node
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		comp = append(comp, w)
		if w == v {
			break
		}
	}
	t.components = append(t.components, comp)
}
