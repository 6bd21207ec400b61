package linker

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/irlink/internal/ctxlog"
	"github.com/specialistvlad/irlink/internal/dedupe"
	"github.com/specialistvlad/irlink/internal/diag"
	"github.com/specialistvlad/irlink/internal/refs"
	"github.com/specialistvlad/irlink/internal/sequencer"
	"github.com/specialistvlad/irlink/internal/symbol"
	"github.com/specialistvlad/irlink/internal/symdef"
	"github.com/specialistvlad/irlink/internal/universe"
)

// ErrForeignDefinition is returned for a symbol whose definition does not
// belong to the linker's registry.
var ErrForeignDefinition = errors.New("symbol definition is not registered")

// Options tune the pipeline.
type Options struct {
	// Workers bounds stage-internal parallelism. Zero means one per CPU.
	Workers int
}

// Linker links sections against one registry.
type Linker struct {
	registry *symdef.Registry
	opts     Options
}

// New returns a linker for reg. The registry is frozen; no definitions can
// be added once linking may start.
func New(reg *symdef.Registry, opts Options) *Linker {
	reg.Freeze()
	return &Linker{registry: reg, opts: opts}
}

// Registry returns the frozen registry the linker resolves against.
func (l *Linker) Registry() *symdef.Registry {
	return l.registry
}

// Link runs every stage. On a data problem the returned error is a
// diag.Diagnostics holding everything the failing stage found.
func (l *Linker) Link(ctx context.Context, sections ...*symbol.Section) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Linking sections.", "sections", len(sections))

	if diags := l.checkDefinitions(sections); diags.HasErrors() {
		return nil, diags
	}

	merged := universe.Merge(sections...)
	logger.Debug("Sections merged.", "symbols", merged.Len(), "references", len(merged.References()), "groups", len(merged.Groups()))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deduped, stats, diags := dedupe.Resolve(ctxlog.Stage(ctx, "dedupe"), merged)
	if diags.HasErrors() {
		return nil, diags
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	forest, diags, err := refs.Resolve(ctxlog.Stage(ctx, "references"), deduped, refs.Options{Workers: l.opts.Workers})
	if err != nil {
		return nil, err
	}
	if diags.HasErrors() {
		return nil, diags
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tables, diags, err := sequencer.Sequence(ctxlog.Stage(ctx, "sequence"), deduped, sequencer.Options{Workers: l.opts.Workers})
	if err != nil {
		return nil, err
	}
	if diags.HasErrors() {
		return nil, diags
	}

	logger.Debug("Link complete.", "symbols", deduped.Len(), "tables", len(tables))
	return &Result{Universe: deduped, Forest: forest, Sequences: tables, Dedupe: stats}, nil
}

// checkDefinitions rejects symbols built from a definition this registry
// does not hold, such as one from another registry instance.
func (l *Linker) checkDefinitions(sections []*symbol.Section) diag.Diagnostics {
	var diags diag.Diagnostics
	for _, sec := range sections {
		for _, sym := range sec.Symbols() {
			def, ok := l.registry.ByName(sym.Definition().Name)
			if ok && def == sym.Definition() {
				continue
			}
			err := fmt.Errorf("%w: %s in section %s", ErrForeignDefinition, sym.Definition().Name, sec)
			diags = diags.Append(diag.FromError(err, diag.TypeMismatch, sym.Location()))
		}
	}
	return diags
}

// Result is the output of a successful link.
type Result struct {
	Universe  *universe.Universe
	Forest    *refs.Forest
	Sequences []sequencer.Table
	Dedupe    dedupe.Stats
}

// Table returns the resolved order of one sequence table.
func (r *Result) Table(name string) (sequencer.Table, bool) {
	for _, t := range r.Sequences {
		if t.Name == name {
			return t, true
		}
	}
	return sequencer.Table{}, false
}

// Order returns the action names of one sequence table, or nil when the
// table has no actions.
func (r *Result) Order(name string) []string {
	t, ok := r.Table(name)
	if !ok {
		return nil
	}
	return t.Names()
}
