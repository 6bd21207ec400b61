package dag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, nodes []string, edges [][2]string) *Graph {
	t.Helper()
	g := New()
	for _, n := range nodes {
		g.AddNode(n)
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Zero(t, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.deps)
	assert.NotNil(t, nodeA.dependents)

	g.AddNode("a") // Test idempotency
	assert.Len(t, g.nodes, 1)

	g.AddNode("b")
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
	assert.True(t, g.Has("b"))
	assert.False(t, g.Has("c"))
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := build(t, []string{"a", "b"}, nil)

		err := g.AddEdge("a", "b") // b depends on a
		require.NoError(t, err)
		require.NoError(t, g.AddEdge("a", "b")) // duplicate edge is a no-op

		nodeA := g.nodes["a"]
		nodeB := g.nodes["b"]

		assert.Contains(t, nodeA.dependents, "b")
		assert.Equal(t, nodeB, nodeA.dependents["b"])
		assert.Contains(t, nodeB.deps, "a")
		assert.Len(t, nodeB.depList, 1)
	})

	t.Run("error cases", func(t *testing.T) {
		g := build(t, []string{"a", "b"}, nil)

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")
	})
}

func TestDependenciesAndDependents(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{{"c", "b"}, {"a", "b"}, {"b", "c"}})

	deps, err := g.Dependencies("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, deps, "edge insertion order")

	dependents, err := g.Dependents("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, dependents)

	_, err = g.Dependencies("dne")
	assert.Error(t, err)
	_, err = g.Dependents("dne")
	assert.Error(t, err)
}

func TestRoots(t *testing.T) {
	g := build(t, []string{"x", "a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	assert.Equal(t, []string{"x", "a"}, g.Roots())
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := build(t, []string{"a", "b", "c"}, nil)
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := build(t, []string{"a", "b", "c", "d"}, [][2]string{
			{"a", "b"}, {"b", "c"}, {"a", "c"}, {"c", "d"},
		})
		assert.NoError(t, g.DetectCycles())
		assert.Empty(t, g.Cycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
		err := g.DetectCycles()
		assert.ErrorContains(t, err, "cycle detected")
		assert.Equal(t, [][]string{{"a", "b"}}, g.Cycles())
	})

	t.Run("self edge is a cycle", func(t *testing.T) {
		g := build(t, []string{"a"}, [][2]string{{"a", "a"}})
		assert.Equal(t, [][]string{{"a"}}, g.Cycles())
	})
}

func TestCycles_OncePerComponent(t *testing.T) {
	// Two disjoint cycles, one with a chord, plus a tail hanging off a cycle.
	g := build(t, []string{"c", "b", "a", "tail", "y", "x"}, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"}, {"a", "c"},
		{"c", "tail"},
		{"x", "y"}, {"y", "x"},
	})

	want := [][]string{{"a", "b", "c"}, {"x", "y"}}
	if diff := cmp.Diff(want, g.Cycles()); diff != "" {
		t.Errorf("Cycles() mismatch (-want +got):\n%s", diff)
	}
}

func TestSort(t *testing.T) {
	t.Run("insertion order breaks ties", func(t *testing.T) {
		g := build(t, []string{"c", "a", "b"}, nil)
		sorted, blocked := g.Sort(nil)
		assert.Equal(t, []string{"c", "a", "b"}, sorted)
		assert.Empty(t, blocked)
	})

	t.Run("comparison breaks ties", func(t *testing.T) {
		g := build(t, []string{"c", "a", "b", "d"}, [][2]string{{"c", "d"}})
		sorted, _ := g.Sort(func(a, b string) bool { return a < b })
		assert.Equal(t, []string{"a", "b", "c", "d"}, sorted)
	})

	t.Run("edges win over comparison", func(t *testing.T) {
		g := build(t, []string{"a", "b", "c"}, [][2]string{{"c", "a"}, {"b", "c"}})
		sorted, _ := g.Sort(func(a, b string) bool { return a < b })
		assert.Equal(t, []string{"b", "c", "a"}, sorted)
	})

	t.Run("cycle blocks its members and successors", func(t *testing.T) {
		g := build(t, []string{"free", "a", "b", "after"}, [][2]string{
			{"a", "b"}, {"b", "a"}, {"b", "after"},
		})
		sorted, blocked := g.Sort(nil)
		assert.Equal(t, []string{"free"}, sorted)
		assert.Equal(t, []string{"a", "b", "after"}, blocked)
	})
}
