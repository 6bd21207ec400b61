package sequencer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/irlink/internal/ctxlog"
	"github.com/specialistvlad/irlink/internal/diag"
	"github.com/specialistvlad/irlink/internal/field"
	"github.com/specialistvlad/irlink/internal/symbol"
	"github.com/specialistvlad/irlink/internal/symdef"
	"github.com/specialistvlad/irlink/internal/universe"
	"github.com/specialistvlad/irlink/internal/workpool"
)

// Options tune Sequence.
type Options struct {
	// Workers bounds the goroutines sequencing tables. Zero means one per CPU.
	Workers int
}

// Action is one sequenced action.
type Action struct {
	Name      string
	Sequence  int
	Condition string
	Symbol    *symbol.Symbol
}

// Table is the resolved order of one sequence table.
type Table struct {
	Name    string
	Actions []Action
}

// Names returns the action names in order.
func (t Table) Names() []string {
	names := make([]string, len(t.Actions))
	for i, a := range t.Actions {
		names[i] = a.Name
	}
	return names
}

// Sequence orders the WixAction rows of u per sequence table. Tables are
// returned sorted by name. On success the Sequence field of every action row
// holds its resolved number. On failure no row is modified and the
// diagnostics of all tables are returned. The error is non-nil only when ctx
// ends while tables are being sequenced.
func Sequence(ctx context.Context, u *universe.Universe, opts Options) ([]Table, diag.Diagnostics, error) {
	logger := ctxlog.FromContext(ctx)

	plans, diags := collect(u)
	if len(plans) == 0 {
		return nil, diags, nil
	}

	type outcome struct {
		table Table
		diags diag.Diagnostics
	}
	outcomes, err := workpool.Map(ctx, opts.Workers, plans, func(ctx context.Context, p *plan) outcome {
		t, d := p.order()
		ctxlog.FromContext(ctx).Debug("Table sequenced.", "table", p.name, "actions", len(p.actions), "problems", len(d))
		return outcome{table: t, diags: d}
	})
	if err != nil {
		return nil, nil, fmt.Errorf("sequencing tables: %w", err)
	}

	tables := make([]Table, len(outcomes))
	for i, o := range outcomes {
		tables[i] = o.table
		diags = diags.Extend(o.diags)
	}
	if diags.HasErrors() {
		diags.Sort()
		return nil, diags, nil
	}

	stamped, err := workpool.Map(ctx, opts.Workers, tables, func(_ context.Context, t Table) error {
		return stamp(t)
	})
	if err == nil {
		err = errors.Join(stamped...)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("stamping sequences: %w", err)
	}
	logger.Debug("Sequencing complete.", "tables", len(tables))
	return tables, nil, nil
}

// stamp writes the resolved numbers of one table. Only that table's rows are
// touched.
func stamp(t Table) error {
	for _, a := range t.Actions {
		if err := a.Symbol.Set(symdef.WixActionSequence, field.Number(int32(a.Sequence))); err != nil {
			return err
		}
	}
	return nil
}

// collect groups action rows by sequence table in merge order.
func collect(u *universe.Universe) ([]*plan, diag.Diagnostics) {
	var diags diag.Diagnostics
	byTable := make(map[string]*plan)
	for _, sym := range u.Table(symdef.TypeWixAction.String()) {
		a, err := read(sym)
		if err != nil {
			diags = diags.Append(diag.FromError(err, diag.TypeMismatch, sym.Location()))
			continue
		}
		p, ok := byTable[a.table]
		if !ok {
			p = &plan{name: a.table, byName: make(map[string]*constraint)}
			byTable[a.table] = p
		}
		if prev, dup := p.byName[a.name]; dup {
			d := diag.Newf(diag.DuplicateSymbol, sym.Location(), []string{a.table + "/" + a.name},
				"action %s is declared twice in %s", a.name, a.table)
			d.Related = []diag.Location{prev.symbol.Location()}
			diags = diags.Append(d)
			continue
		}
		a.ordinal = u.Ordinal(sym)
		p.byName[a.name] = a
		p.actions = append(p.actions, a)
	}

	plans := make([]*plan, 0, len(byTable))
	for _, p := range byTable {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].name < plans[j].name })
	return plans, diags
}
