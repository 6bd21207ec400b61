package refs

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/irlink/internal/diag"
	"github.com/specialistvlad/irlink/internal/symbol"
	"github.com/specialistvlad/irlink/internal/testutil"
	"github.com/specialistvlad/irlink/internal/universe"
)

var reg = testutil.Registry()

func ref(table string, keys ...string) symbol.SimpleReference {
	return symbol.SimpleReference{Table: table, Keys: keys, Location: diag.Location{File: "ref.wxs", Line: 7}}
}

func group(parentType, parent, childType, child string) symbol.GroupRecord {
	return symbol.GroupRecord{ParentType: parentType, ParentID: parent, ChildType: childType, ChildID: child}
}

func resolve(t *testing.T, sections ...*symbol.Section) (*Forest, diag.Diagnostics) {
	t.Helper()
	f, diags, err := Resolve(context.Background(), universe.Merge(sections...), Options{Workers: 2})
	require.NoError(t, err)
	return f, diags
}

func TestSimpleReference_RoundTrip(t *testing.T) {
	referencing := func() *symbol.Section {
		return symbol.NewSection("user").AddReference(ref("Directory", "INSTALLDIR"))
	}

	_, diags := resolve(t, referencing())
	require.Len(t, diags, 1)
	assert.Equal(t, diag.UnresolvedReference, diags[0].Kind)
	assert.Equal(t, []string{"Directory:INSTALLDIR"}, diags[0].Identifiers)
	assert.Equal(t, "ref.wxs:7", diags[0].Location.String())

	dir := testutil.Row(t, reg, "Directory", "INSTALLDIR", testutil.Fields{"Name": "Acme"})
	f, diags := resolve(t, referencing(), symbol.NewSection("dirs").Add(dir))
	assert.Empty(t, diags)
	assert.NotNil(t, f)
}

func TestSimpleReference_KeyTuple(t *testing.T) {
	action := testutil.Action(t, reg, "InstallExecuteSequence", "CostFinalize")
	sec := symbol.NewSection("s").Add(action).
		AddReference(ref("WixAction", "InstallExecuteSequence", "CostFinalize"))

	_, diags := resolve(t, sec)
	assert.Empty(t, diags)
}

func TestSimpleReference_UnknownTable(t *testing.T) {
	_, diags := resolve(t, symbol.NewSection("s").AddReference(ref("NoSuchTable", "x")))
	require.Len(t, diags, 1)
	assert.Equal(t, diag.UnresolvedReference, diags[0].Kind)
}

func TestSimpleReference_NamesActualType(t *testing.T) {
	file := testutil.Row(t, reg, "File", "Readme", testutil.Fields{"ComponentRef": "C", "Name": "README.txt"})
	_, diags := resolve(t, symbol.NewSection("s").Add(file).AddReference(ref("Component", "Readme")))
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Detail, "declared as File")
}

func TestSimpleReference_Access(t *testing.T) {
	def, _ := reg.ByName("Property")
	private := symbol.New(def, &symbol.Identifier{ID: "Secret", Access: symbol.AccessSection}, diag.Location{File: "own.wxs"})
	libOnly := symbol.New(def, &symbol.Identifier{ID: "Shared", Access: symbol.AccessLibrary}, diag.Location{File: "own.wxs"})

	owner := symbol.NewSection("owner").Add(private, libOnly).AddReference(ref("Property", "Secret"))
	owner.Library = "core"
	sibling := symbol.NewSection("sibling").AddReference(ref("Property", "Shared"))
	sibling.Library = "core"
	outsider := symbol.NewSection("outsider").AddReference(ref("Property", "Secret"), ref("Property", "Shared"))
	outsider.Library = "ext"

	_, diags := resolve(t, owner, sibling, outsider)
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, diag.UnresolvedReference, d.Kind)
		assert.Contains(t, d.Detail, "not visible from section \"outsider\"")
	}
}

func TestGroups_Forest(t *testing.T) {
	feature := testutil.Row(t, reg, "Feature", "Main", testutil.Fields{"Level": 1})
	cg := testutil.Row(t, reg, "WixComponentGroup", "Core", nil)
	c1 := testutil.Row(t, reg, "Component", "C1", testutil.Fields{"DirectoryRef": "D"})
	c2 := testutil.Row(t, reg, "Component", "C2", testutil.Fields{"DirectoryRef": "D"})

	sec := symbol.NewSection("s").Add(cg, c2, c1, feature).AddGroup(
		group("WixComponentGroup", "Core", "Component", "C2"),
		group("Feature", "Main", "Component", "C2"),
		group("Feature", "Main", "Component", "C1"),
		group("Feature", "Main", "Component", "C1"),
	)

	f, diags := resolve(t, sec)
	require.Empty(t, diags)
	require.Len(t, f.Roots, 2)

	assert.Equal(t, symbol.Key{Table: "Feature", ID: "Main"}, f.Roots[0].Key, "hierarchy roots come first")
	assert.Equal(t, symbol.Key{Table: "WixComponentGroup", ID: "Core"}, f.Roots[1].Key)
	assert.Same(t, feature, f.Roots[0].Symbol)

	main := f.Roots[0]
	require.Len(t, main.Children, 2)
	assert.Equal(t, "C1", main.Children[0].Key.ID)
	assert.Equal(t, "C2", main.Children[1].Key.ID)
	assert.Same(t, main.Children[1], f.Roots[1].Children[0], "shared child is one node")
	assert.Equal(t, 4, f.Len())
	assert.Same(t, main.Children[0], f.Find(c1.Key()))

	var walked []string
	f.Walk(func(n *Node, depth int) bool {
		walked = append(walked, fmt.Sprintf("%d:%s", depth, n.Key))
		return true
	})
	assert.Equal(t, []string{"0:Feature:Main", "1:Component:C1", "1:Component:C2", "0:WixComponentGroup:Core", "1:Component:C2"}, walked)
}

func TestGroups_TypeMismatch(t *testing.T) {
	feature := testutil.Row(t, reg, "Feature", "Main", testutil.Fields{"Level": 1})
	file := testutil.Row(t, reg, "File", "F1", testutil.Fields{"ComponentRef": "C", "Name": "a"})

	sec := symbol.NewSection("s").Add(feature, file).AddGroup(group("Feature", "Main", "Component", "F1"))
	f, diags := resolve(t, sec)
	assert.Nil(t, f)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.UnresolvedReference, diags[0].Kind)
	assert.Contains(t, diags[0].Summary, "unresolved child Component:F1")
	assert.Contains(t, diags[0].Detail, "declared as File")
}

func TestGroups_MissingEndpoints(t *testing.T) {
	sec := symbol.NewSection("s").AddGroup(group("Feature", "Ghost", "Component", "Phantom"))
	_, diags := resolve(t, sec)
	require.Len(t, diags, 2)
	assert.Len(t, diags.Of(diag.UnresolvedReference), 2)
}

func TestGroups_CycleReportedOnce(t *testing.T) {
	var syms []*symbol.Symbol
	for _, id := range []string{"A", "B", "C"} {
		syms = append(syms, testutil.Row(t, reg, "WixComponentGroup", id, nil))
	}
	sec := symbol.NewSection("s").Add(syms...).AddGroup(
		group("WixComponentGroup", "A", "WixComponentGroup", "B"),
		group("WixComponentGroup", "B", "WixComponentGroup", "C"),
		group("WixComponentGroup", "C", "WixComponentGroup", "A"),
	)

	f, diags := resolve(t, sec)
	assert.Nil(t, f)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CyclicReference, diags[0].Kind)
	assert.Equal(t, []string{"WixComponentGroup:A", "WixComponentGroup:B", "WixComponentGroup:C"}, diags[0].Identifiers)
}

func TestGroups_SelfCycle(t *testing.T) {
	g := testutil.Row(t, reg, "WixFeatureGroup", "Loop", nil)
	sec := symbol.NewSection("s").Add(g).AddGroup(group("WixFeatureGroup", "Loop", "WixFeatureGroup", "Loop"))
	_, diags := resolve(t, sec)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CyclicReference, diags[0].Kind)
}

// shapeNode is the merge-order independent outline of a Node.
type shapeNode struct {
	Key      symbol.Key
	Children []shapeNode
}

func shape(f *Forest) []shapeNode {
	var conv func(n *Node) shapeNode
	conv = func(n *Node) shapeNode {
		s := shapeNode{Key: n.Key}
		for _, c := range n.Children {
			s.Children = append(s.Children, conv(c))
		}
		return s
	}
	var out []shapeNode
	for _, r := range f.Roots {
		out = append(out, conv(r))
	}
	return out
}

func TestGroups_OrderIndependent(t *testing.T) {
	build := func() []*symbol.Section {
		var sections []*symbol.Section
		add := func(table, id string, fields testutil.Fields, groups ...symbol.GroupRecord) {
			sym := testutil.Row(t, reg, table, id, fields)
			sections = append(sections, symbol.NewSection(id).Add(sym).AddGroup(groups...))
		}
		add("Feature", "Main", testutil.Fields{"Level": 1},
			group("Feature", "Main", "WixComponentGroup", "Core"),
			group("Feature", "Main", "Component", "Extra"))
		add("Feature", "Docs", testutil.Fields{"Level": 2},
			group("Feature", "Docs", "Component", "Manual"))
		add("WixComponentGroup", "Core", nil,
			group("WixComponentGroup", "Core", "Component", "Bin"),
			group("WixComponentGroup", "Core", "Component", "Lib"))
		for _, id := range []string{"Extra", "Manual", "Bin", "Lib"} {
			add("Component", id, testutil.Fields{"DirectoryRef": "D"})
		}
		add("WixModule", "Merge", testutil.Fields{"ModuleId": "M"},
			group("WixModule", "Merge", "Component", "Lib"))
		return sections
	}

	want, diags := resolve(t, build()...)
	require.Empty(t, diags)

	for seed := int64(1); seed <= 20; seed++ {
		got, diags := resolve(t, testutil.Shuffled(seed, build())...)
		require.Empty(t, diags)
		if diff := cmp.Diff(shape(want), shape(got)); diff != "" {
			t.Fatalf("seed %d: forest mismatch (-want +got):\n%s", seed, diff)
		}
	}
}

func TestNodeID_Unambiguous(t *testing.T) {
	keys := []symbol.Key{
		{Table: "A:B", ID: "C"},
		{Table: "A", ID: "B:C"},
		{Table: "A|1", ID: "C"},
		{Table: "A", ID: "1|C"},
		{Table: "", ID: "A:B:C"},
	}
	seen := make(map[string]symbol.Key, len(keys))
	for _, k := range keys {
		id := nodeID(k)
		if prev, dup := seen[id]; dup {
			t.Fatalf("keys %v and %v share node id %q", prev, k, id)
		}
		seen[id] = k
	}
}

func TestGroups_IDsWithSeparators(t *testing.T) {
	outer := testutil.Row(t, reg, "WixComponentGroup", "x:y", nil)
	inner := testutil.Row(t, reg, "WixComponentGroup", "y", nil)
	comp := testutil.Row(t, reg, "Component", "WixComponentGroup:y", testutil.Fields{"DirectoryRef": "D"})
	sec := symbol.NewSection("s").Add(outer, inner, comp).AddGroup(
		group("WixComponentGroup", "x:y", "WixComponentGroup", "y"),
		group("WixComponentGroup", "y", "Component", "WixComponentGroup:y"),
		group("WixComponentGroup", "y", "WixComponentGroup", "x:y"),
	)

	f, diags := resolve(t, sec)
	assert.Nil(t, f)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CyclicReference, diags[0].Kind)
	assert.Equal(t, []string{"WixComponentGroup:x:y", "WixComponentGroup:y"}, diags[0].Identifiers)
	assert.Contains(t, diags[0].Summary, "WixComponentGroup:x:y, WixComponentGroup:y")
}

func TestResolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Resolve(ctx, universe.Merge(symbol.NewSection("s")), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
