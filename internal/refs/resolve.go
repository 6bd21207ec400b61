package refs

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/specialistvlad/irlink/internal/ctxlog"
	"github.com/specialistvlad/irlink/internal/dag"
	"github.com/specialistvlad/irlink/internal/diag"
	"github.com/specialistvlad/irlink/internal/symbol"
	"github.com/specialistvlad/irlink/internal/universe"
	"github.com/specialistvlad/irlink/internal/workpool"
)

// Options tune Resolve.
type Options struct {
	// Workers bounds the goroutines checking simple references. Zero means
	// one per CPU.
	Workers int
}

// Resolve checks every simple reference and group record of u and builds the
// hierarchy forest. It returns a nil forest together with the diagnostics
// when anything fails to resolve or the groups form a cycle. The error is
// non-nil only when ctx ends while references are being checked.
func Resolve(ctx context.Context, u *universe.Universe, opts Options) (*Forest, diag.Diagnostics, error) {
	logger := ctxlog.FromContext(ctx)

	perSection, err := workpool.Map(ctx, opts.Workers, u.Sections(), func(_ context.Context, sec *symbol.Section) diag.Diagnostics {
		return checkSimple(u, sec)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("checking references: %w", err)
	}
	var diags diag.Diagnostics
	for _, d := range perSection {
		diags = diags.Extend(d)
	}
	logger.Debug("Simple references checked.", "references", len(u.References()), "unresolved", len(diags))

	h := &hierarchy{
		graph:   dag.New(),
		symbols: make(map[string]*symbol.Symbol),
	}
	diags = diags.Extend(h.addGroups(u))
	diags = diags.Extend(h.cycles())

	if diags.HasErrors() {
		diags.Sort()
		return nil, diags, nil
	}
	forest := h.forest()
	logger.Debug("Hierarchy resolved.", "nodes", forest.Len(), "roots", len(forest.Roots))
	return forest, nil, nil
}

// checkSimple resolves the simple references declared by one section.
func checkSimple(u *universe.Universe, sec *symbol.Section) diag.Diagnostics {
	var diags diag.Diagnostics
	for _, ref := range sec.References() {
		if _, d := lookup(u, ref.Key(), sec, ref.Location); d != nil {
			diags = diags.Append(d)
		}
	}
	return diags
}

// lookup finds the first row of key visible from the section from.
func lookup(u *universe.Universe, key symbol.Key, from *symbol.Section, loc diag.Location) (*symbol.Symbol, *diag.Diagnostic) {
	rows := u.LookupAll(key)
	for _, sym := range rows {
		if sym.Identifier().Access.Visible(sym.Section(), from) {
			return sym, nil
		}
	}

	d := diag.Newf(diag.UnresolvedReference, loc, []string{key.String()}, "unresolved reference to %s", key)
	switch {
	case len(rows) > 0:
		sym := rows[0]
		d.Detail = fmt.Sprintf("%s is declared with %s access in section %q and is not visible from section %q.",
			key, sym.Identifier().Access, sectionName(sym.Section()), sectionName(from))
		d.Related = []diag.Location{sym.Location()}
	case len(u.FindByID(key.ID)) > 0:
		d.Detail = fmt.Sprintf("No %s row has the id %q; that id is declared as %s.", key.Table, key.ID, tableNames(u.FindByID(key.ID)))
	default:
		d.Detail = fmt.Sprintf("No %s row has the id %q.", key.Table, key.ID)
	}
	return nil, d
}

func sectionName(s *symbol.Section) string {
	if s == nil {
		return ""
	}
	return s.String()
}

func tableNames(syms []*symbol.Symbol) string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range syms {
		name := s.Definition().Name
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// hierarchy accumulates resolved group edges.
type hierarchy struct {
	graph   *dag.Graph
	symbols map[string]*symbol.Symbol
	// edges remembers the first record declaring each resolved edge, in
	// merge order, for cycle locations.
	edges []symbol.GroupRecord
}

func (h *hierarchy) addGroups(u *universe.Universe) diag.Diagnostics {
	var diags diag.Diagnostics
	for _, g := range u.Groups() {
		parent, pd := lookup(u, g.Parent(), g.Section(), g.Location)
		child, cd := lookup(u, g.Child(), g.Section(), g.Location)
		if pd != nil {
			pd.Summary = fmt.Sprintf("group %s: unresolved parent %s", g, g.Parent())
			diags = diags.Append(pd)
		}
		if cd != nil {
			cd.Summary = fmt.Sprintf("group %s: unresolved child %s", g, g.Child())
			diags = diags.Append(cd)
		}
		if parent == nil || child == nil {
			continue
		}

		from, to := nodeID(parent.Key()), nodeID(child.Key())
		h.graph.AddNode(from)
		h.graph.AddNode(to)
		h.symbols[from] = parent
		h.symbols[to] = child
		// Both nodes were just added.
		_ = h.graph.AddEdge(from, to)
		h.edges = append(h.edges, g)
	}
	return diags
}

func (h *hierarchy) cycles() diag.Diagnostics {
	var diags diag.Diagnostics
	for _, members := range h.graph.Cycles() {
		inCycle := make(map[string]bool, len(members))
		names := make([]string, len(members))
		for i, m := range members {
			inCycle[m] = true
			names[i] = h.symbols[m].Key().String()
		}
		sort.Strings(names)
		var loc diag.Location
		for _, g := range h.edges {
			if inCycle[nodeID(g.Parent())] && inCycle[nodeID(g.Child())] {
				loc = g.Location
				break
			}
		}
		diags = diags.Append(diag.Newf(diag.CyclicReference, loc, names,
			"group records form a cycle: %s", strings.Join(names, ", ")))
	}
	return diags
}

// nodeID encodes a key as a graph node name. The table is length-prefixed
// so keys whose parts contain the separator stay distinct.
func nodeID(k symbol.Key) string {
	return strconv.Itoa(len(k.Table)) + "|" + k.Table + "|" + k.ID
}

func (h *hierarchy) forest() *Forest {
	f := &Forest{index: make(map[symbol.Key]*Node, len(h.symbols))}

	var build func(id string) *Node
	build = func(id string) *Node {
		sym := h.symbols[id]
		if n, ok := f.index[sym.Key()]; ok {
			return n
		}
		n := &Node{Key: sym.Key(), Symbol: sym}
		f.index[n.Key] = n
		children, _ := h.graph.Dependents(id)
		for _, c := range children {
			n.Children = append(n.Children, build(c))
		}
		sortNodes(n.Children, false)
		return n
	}

	for _, id := range h.graph.Roots() {
		f.Roots = append(f.Roots, build(id))
	}
	sortNodes(f.Roots, true)
	return f
}

// sortNodes orders nodes by definition name and id. With rootsFirst, rows of
// hierarchy-root definitions come before all others.
func sortNodes(nodes []*Node, rootsFirst bool) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		ra, rb := a.Symbol.Definition().HierarchyRoot, b.Symbol.Definition().HierarchyRoot
		if rootsFirst && ra != rb {
			return ra
		}
		if a.Key.Table != b.Key.Table {
			return a.Key.Table < b.Key.Table
		}
		return a.Key.ID < b.Key.ID
	})
}
