package sequencer

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/irlink/internal/diag"
	"github.com/specialistvlad/irlink/internal/field"
	"github.com/specialistvlad/irlink/internal/symbol"
	"github.com/specialistvlad/irlink/internal/symdef"
	"github.com/specialistvlad/irlink/internal/testutil"
	"github.com/specialistvlad/irlink/internal/universe"
)

var reg = testutil.Registry()

const T = "T"

func run(t *testing.T, sections ...*symbol.Section) ([]Table, diag.Diagnostics) {
	t.Helper()
	tables, diags, err := Sequence(context.Background(), universe.Merge(sections...), Options{Workers: 3})
	require.NoError(t, err)
	return tables, diags
}

func action(t *testing.T, name string, opts ...testutil.ActionOption) *symbol.Symbol {
	return testutil.Action(t, reg, T, name, opts...)
}

func stamped(t *testing.T, sym *symbol.Symbol) int {
	t.Helper()
	n, err := sym.Field(symdef.WixActionSequence).AsNumber()
	require.NoError(t, err)
	require.True(t, n.Valid, "%s not stamped", sym)
	return int(n.Int64)
}

func TestSequence_BeforeAndAfterAnchor(t *testing.T) {
	x := action(t, "X", testutil.Seq(100))
	y := action(t, "Y", testutil.After("X"))
	z := action(t, "Z", testutil.Before("X"))

	tables, diags := run(t, testutil.Split(x, y, z)...)
	require.Empty(t, diags)
	require.Len(t, tables, 1)
	assert.Equal(t, T, tables[0].Name)
	assert.Equal(t, []string{"Z", "X", "Y"}, tables[0].Names())

	assert.Equal(t, 1, stamped(t, z))
	assert.Equal(t, 100, stamped(t, x))
	assert.Equal(t, 101, stamped(t, y))
}

func TestSequence_MutualAfterIsCycle(t *testing.T) {
	a := action(t, "A", testutil.After("B"))
	b := action(t, "B", testutil.After("A"))

	tables, diags := run(t, testutil.Split(a, b)...)
	assert.Nil(t, tables)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CyclicActionOrder, diags[0].Kind)
	assert.Equal(t, []string{"T/A", "T/B"}, diags[0].Identifiers)
	assert.Contains(t, diags[0].Summary, "in T")

	n, err := a.Field(symdef.WixActionSequence).AsNumber()
	require.NoError(t, err)
	assert.False(t, n.Valid, "failed tables are not stamped")
}

func TestSequence_SelfAfterIsCycle(t *testing.T) {
	_, diags := run(t, testutil.Split(action(t, "Loop", testutil.After("Loop")))...)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CyclicActionOrder, diags[0].Kind)
}

func TestSequence_ExplicitContradictsBefore(t *testing.T) {
	a := action(t, "A", testutil.Seq(100), testutil.Before("B"))
	b := action(t, "B", testutil.Seq(50))

	_, diags := run(t, testutil.Split(a, b)...)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CyclicActionOrder, diags[0].Kind)
	assert.Equal(t, []string{"T/A", "T/B"}, diags[0].Identifiers)
}

func TestSequence_UnknownAnchor(t *testing.T) {
	a := action(t, "A", testutil.After("Missing"))
	b := action(t, "B", testutil.Before("Gone"))

	_, diags := run(t, testutil.Split(a, b)...)
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, diag.UnresolvedReference, d.Kind)
	}
	assert.ElementsMatch(t, []string{"T/Missing", "T/Gone"}, []string{diags[0].Identifiers[0], diags[1].Identifiers[0]})
}

func TestSequence_ExplicitOrderRespected(t *testing.T) {
	a := action(t, "A", testutil.Seq(300))
	b := action(t, "B", testutil.Seq(50))
	c := action(t, "C", testutil.After("B"))
	d := action(t, "D", testutil.Seq(300))

	tables, diags := run(t, testutil.Split(a, b, c, d)...)
	require.Empty(t, diags)
	assert.Equal(t, []string{"B", "C", "A", "D"}, tables[0].Names())
	assert.Equal(t, []int{50, 51, 300, 301}, sequences(tables[0]))
}

func TestSequence_RenumbersWhenCrowded(t *testing.T) {
	a := action(t, "A", testutil.Seq(10))
	b := action(t, "B", testutil.After("A"))
	c := action(t, "C", testutil.After("B"))
	d := action(t, "D", testutil.Seq(11))

	tables, diags := run(t, testutil.Split(a, b, c, d)...)
	require.Empty(t, diags)
	assert.Equal(t, []string{"A", "B", "C", "D"}, tables[0].Names())
	assert.Equal(t, []int{10, 11, 12, 13}, sequences(tables[0]))
}

func TestSequence_BeforeChain(t *testing.T) {
	x := action(t, "X", testutil.Seq(100))
	z1 := action(t, "Z1", testutil.Before("X"))
	z2 := action(t, "Z2", testutil.Before("Z1"))
	w := action(t, "W", testutil.Seq(10))

	tables, diags := run(t, testutil.Split(x, z1, z2, w)...)
	require.Empty(t, diags)
	assert.Equal(t, []string{"W", "Z2", "Z1", "X"}, tables[0].Names())
}

func TestSequence_UnanchoredSortLast(t *testing.T) {
	free := action(t, "AAA")
	x := action(t, "X", testutil.Seq(5))

	tables, diags := run(t, testutil.Split(free, x)...)
	require.Empty(t, diags)
	assert.Equal(t, []string{"X", "AAA"}, tables[0].Names())
	assert.Equal(t, []int{5, 6}, sequences(tables[0]))
}

func TestSequence_DeterministicUnderShuffle(t *testing.T) {
	// Sequence stamps its input, so each seed gets fresh rows.
	build := func() []*symbol.Section {
		var sections []*symbol.Section
		for _, name := range []string{"Gamma", "Alpha", "Delta", "Beta", "Epsilon"} {
			sections = append(sections, testutil.Split(action(t, name))...)
		}
		return append(sections, testutil.Split(
			action(t, "Start", testutil.Seq(1)),
			action(t, "Two", testutil.After("Start")),
			action(t, "One", testutil.After("Start")),
		)...)
	}

	want := []string{"Start", "One", "Two", "Alpha", "Beta", "Delta", "Epsilon", "Gamma"}
	for seed := int64(0); seed < 25; seed++ {
		sections := build()
		for _, sec := range sections {
			for _, sym := range sec.Symbols() {
				if sym.ID() != T+"/Start" {
					require.True(t, sym.Field(symdef.WixActionSequence).IsNull(), "seed %d: %s already stamped", seed, sym)
				}
			}
		}

		tables, diags := run(t, testutil.Shuffled(seed, sections)...)
		require.Empty(t, diags)
		if diff := cmp.Diff(want, tables[0].Names()); diff != "" {
			t.Fatalf("seed %d: order mismatch (-want +got):\n%s", seed, diff)
		}
		if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7, 8}, sequences(tables[0])); diff != "" {
			t.Fatalf("seed %d: sequence mismatch (-want +got):\n%s", seed, diff)
		}
	}
}

func TestSequence_Overflow(t *testing.T) {
	x := action(t, "X", testutil.Seq(math.MaxInt32))
	y := action(t, "Y", testutil.After("X"))

	tables, diags := run(t, testutil.Split(x, y)...)
	assert.Nil(t, tables)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.TypeMismatch, diags[0].Kind)
	assert.Equal(t, []string{T + "/Y"}, diags[0].Identifiers)
	assert.ErrorIs(t, diags[0], field.ErrOutOfRange)

	assert.Equal(t, math.MaxInt32, stamped(t, x))
	assert.True(t, y.Field(symdef.WixActionSequence).IsNull())
}

func TestSequence_LargestSequenceFits(t *testing.T) {
	x := action(t, "X", testutil.Seq(math.MaxInt32-1))
	y := action(t, "Y", testutil.After("X"))

	tables, diags := run(t, testutil.Split(x, y)...)
	require.Empty(t, diags)
	assert.Equal(t, []int{math.MaxInt32 - 1, math.MaxInt32}, sequences(tables[0]))
	assert.Equal(t, math.MaxInt32, stamped(t, y))
}

func TestSequence_TablesAreIndependent(t *testing.T) {
	ui := testutil.Action(t, reg, InstallUISequence, "CostFinalize", testutil.Seq(1000), testutil.Condition("NOT Installed"))
	exec := testutil.Action(t, reg, InstallExecuteSequence, "CostFinalize", testutil.Seq(1000))
	execAfter := testutil.Action(t, reg, InstallExecuteSequence, "InstallFiles", testutil.After("CostFinalize"))
	// A name only present in another table does not resolve.
	stray := testutil.Action(t, reg, AdminExecuteSequence, "Stray", testutil.After("InstallFiles"))

	_, diags := run(t, testutil.Split(ui, exec, execAfter, stray)...)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.UnresolvedReference, diags[0].Kind)

	tables, diags := run(t, testutil.Split(ui, exec, execAfter)...)
	require.Empty(t, diags)
	require.Len(t, tables, 2)
	assert.Equal(t, InstallExecuteSequence, tables[0].Name)
	assert.Equal(t, []string{"CostFinalize", "InstallFiles"}, tables[0].Names())
	assert.Equal(t, InstallUISequence, tables[1].Name)
	assert.Equal(t, "NOT Installed", tables[1].Actions[0].Condition)
	assert.Same(t, ui, tables[1].Actions[0].Symbol)
}

func TestSequence_NoActions(t *testing.T) {
	tables, diags := run(t, symbol.NewSection("empty"))
	assert.Empty(t, tables)
	assert.Empty(t, diags)
}

func TestCompareBias(t *testing.T) {
	testCases := []struct {
		a, b []int
		want int
	}{
		{nil, nil, 0},
		{[]int{-1}, nil, -1},
		{[]int{1}, nil, 1},
		{[]int{1}, []int{1, 1}, -1},
		{[]int{-1, -1}, []int{-1}, -1},
		{[]int{1, -1}, []int{1}, -1},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, compareBias(tc.a, tc.b), "%v vs %v", tc.a, tc.b)
	}
}

func sequences(t Table) []int {
	out := make([]int, len(t.Actions))
	for i, a := range t.Actions {
		out[i] = a.Sequence
	}
	return out
}
