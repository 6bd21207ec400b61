package sequencer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/specialistvlad/irlink/internal/dag"
	"github.com/specialistvlad/irlink/internal/diag"
	"github.com/specialistvlad/irlink/internal/field"
)

// plan holds the actions of one sequence table in merge order.
type plan struct {
	name    string
	actions []*constraint
	byName  map[string]*constraint
}

// effective is the sort key an action inherits from its anchor chain.
type effective struct {
	anchored bool
	value    int
	bias     []int
}

func (p *plan) order() (Table, diag.Diagnostics) {
	var diags diag.Diagnostics
	g := dag.New()
	for _, a := range p.actions {
		g.AddNode(a.name)
	}

	for _, a := range p.actions {
		if a.after != "" {
			if _, ok := p.byName[a.after]; ok {
				_ = g.AddEdge(a.after, a.name)
			} else {
				diags = diags.Append(p.unresolved(a, "After", a.after))
			}
		}
		if a.before != "" {
			if _, ok := p.byName[a.before]; ok {
				_ = g.AddEdge(a.name, a.before)
			} else {
				diags = diags.Append(p.unresolved(a, "Before", a.before))
			}
		}
	}
	p.explicitEdges(g)

	keys := p.effectiveKeys()
	sorted, blocked := g.Sort(func(x, y string) bool {
		return p.less(keys, p.byName[x], p.byName[y])
	})
	if len(blocked) > 0 {
		for _, members := range g.Cycles() {
			diags = diags.Append(p.cycle(members))
		}
	}
	if diags.HasErrors() {
		return Table{Name: p.name}, diags
	}

	t := Table{Name: p.name, Actions: make([]Action, len(sorted))}
	last := 0
	for i, name := range sorted {
		a := p.byName[name]
		seq := last + 1
		if a.explicit && a.sequence > last {
			seq = a.sequence
		}
		if seq > math.MaxInt32 {
			return Table{Name: p.name}, diags.Append(p.overflow(a, last))
		}
		t.Actions[i] = Action{Name: a.name, Sequence: seq, Condition: a.condition, Symbol: a.symbol}
		last = seq
	}
	return t, nil
}

// explicitEdges chains the groups of equal explicit values in ascending order.
func (p *plan) explicitEdges(g *dag.Graph) {
	groups := make(map[int][]string)
	var values []int
	for _, a := range p.actions {
		if !a.explicit {
			continue
		}
		if _, ok := groups[a.sequence]; !ok {
			values = append(values, a.sequence)
		}
		groups[a.sequence] = append(groups[a.sequence], a.name)
	}
	sort.Ints(values)
	for i := 1; i < len(values); i++ {
		for _, from := range groups[values[i-1]] {
			for _, to := range groups[values[i]] {
				_ = g.AddEdge(from, to)
			}
		}
	}
}

// effectiveKeys resolves the anchor chain of every action. A chain that
// loops or ends at an unknown action leaves the action unanchored.
func (p *plan) effectiveKeys() map[string]effective {
	keys := make(map[string]effective, len(p.actions))
	resolving := make(map[string]bool)

	var resolve func(a *constraint) effective
	resolve = func(a *constraint) effective {
		if k, ok := keys[a.name]; ok {
			return k
		}
		var k effective
		switch {
		case a.explicit:
			k = effective{anchored: true, value: a.sequence}
		case resolving[a.name]:
			return effective{}
		default:
			resolving[a.name] = true
			if name, bias := a.anchor(); name != "" {
				if next, ok := p.byName[name]; ok {
					base := resolve(next)
					if base.anchored {
						k = effective{anchored: true, value: base.value, bias: append(append([]int(nil), base.bias...), bias)}
					}
				}
			}
			delete(resolving, a.name)
		}
		keys[a.name] = k
		return k
	}
	for _, a := range p.actions {
		resolve(a)
	}
	return keys
}

// less ranks by name before ordinal so the order is independent of section
// merge order.
func (p *plan) less(keys map[string]effective, a, b *constraint) bool {
	ka, kb := keys[a.name], keys[b.name]
	if ka.anchored != kb.anchored {
		return ka.anchored
	}
	if ka.anchored {
		if ka.value != kb.value {
			return ka.value < kb.value
		}
		if c := compareBias(ka.bias, kb.bias); c != 0 {
			return c < 0
		}
	}
	if a.name != b.name {
		return a.name < b.name
	}
	return a.ordinal < b.ordinal
}

// compareBias compares lexicographically, a missing entry counting as zero.
func compareBias(a, b []int) int {
	for i := 0; i < max(len(a), len(b)); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (p *plan) unresolved(a *constraint, attr, target string) *diag.Diagnostic {
	d := diag.Newf(diag.UnresolvedReference, a.symbol.Location(), []string{p.name + "/" + target},
		"action %s is scheduled %s unknown action %s in %s", a.name, strings.ToLower(attr), target, p.name)
	d.Detail = "No action named " + target + " is registered in " + p.name + "."
	return d
}

func (p *plan) cycle(members []string) *diag.Diagnostic {
	ids := make([]string, len(members))
	var related []diag.Location
	for i, m := range members {
		ids[i] = p.name + "/" + m
		related = append(related, p.byName[m].symbol.Location())
	}
	first := p.byName[members[0]]
	d := diag.Newf(diag.CyclicActionOrder, first.symbol.Location(), ids,
		"actions in %s cannot be ordered: %s", p.name, strings.Join(members, ", "))
	d.Detail = "The Sequence, Before and After constraints of these actions contradict each other."
	d.Related = related[1:]
	return d
}

func (p *plan) overflow(a *constraint, after int) *diag.Diagnostic {
	d := diag.Newf(diag.TypeMismatch, a.symbol.Location(), []string{p.name + "/" + a.name},
		"action %s in %s has no sequence number left after %d", a.name, p.name, after)
	d.Detail = "Sequence numbers are 32-bit. An action scheduled after the largest one cannot be numbered."
	d.Cause = fmt.Errorf("%w: %d", field.ErrOutOfRange, int64(after)+1)
	return d
}
