package dedupe

import (
	"context"

	"github.com/specialistvlad/irlink/internal/ctxlog"
	"github.com/specialistvlad/irlink/internal/diag"
	"github.com/specialistvlad/irlink/internal/symbol"
	"github.com/specialistvlad/irlink/internal/universe"
)

// Stats counts what Resolve removed.
type Stats struct {
	// Collapsed rows were identical to an earlier row of the same key and
	// visible from the same sections.
	Collapsed int
	// Overridden rows were overridable and lost to another row.
	Overridden int
}

// Resolve returns the deduplicated universe. If any key has conflicting
// non-overridable rows it returns nil and one diagnostic per conflicting row.
func Resolve(ctx context.Context, u *universe.Universe) (*universe.Universe, Stats, diag.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	var (
		stats Stats
		diags diag.Diagnostics
		drop  = make(map[*symbol.Symbol]bool)
	)
	for _, key := range u.Keys() {
		rows := u.LookupAll(key)
		if len(rows) < 2 {
			continue
		}
		losers, d := adjudicate(rows, &stats)
		diags = diags.Extend(d)
		for _, sym := range losers {
			drop[sym] = true
		}
	}

	if diags.HasErrors() {
		diags.Sort()
		logger.Debug("Duplicate symbols found.", "count", len(diags))
		return nil, stats, diags
	}

	kept := make([]*symbol.Symbol, 0, u.Len()-len(drop))
	for _, sym := range u.Symbols() {
		if !drop[sym] {
			kept = append(kept, sym)
		}
	}
	logger.Debug("Deduplication complete.", "kept", len(kept), "collapsed", stats.Collapsed, "overridden", stats.Overridden)
	return u.Retain(kept), stats, nil
}

// adjudicate decides one key. rows are in merge order and number at least two.
func adjudicate(rows []*symbol.Symbol, stats *Stats) ([]*symbol.Symbol, diag.Diagnostics) {
	var fixed, overridable []*symbol.Symbol
	for _, sym := range rows {
		if sym.Overridable() {
			overridable = append(overridable, sym)
		} else {
			fixed = append(fixed, sym)
		}
	}

	if len(fixed) == 0 {
		last := len(overridable) - 1
		var losers []*symbol.Symbol
		for _, sym := range overridable[:last] {
			if sym != overridable[last] {
				losers = append(losers, sym)
			}
		}
		stats.Overridden += len(losers)
		return losers, nil
	}

	var diags diag.Diagnostics
	winner := fixed[0]
	losers := overridable
	stats.Overridden += len(overridable)
	kept := map[scope]bool{scopeOf(winner): true}
	for _, sym := range fixed[1:] {
		if sym == winner {
			continue
		}
		if !sym.Equal(winner) {
			diags = diags.Append(conflict(winner, sym))
			continue
		}
		// Identical private rows in different scopes are distinct symbols.
		if sc := scopeOf(sym); !kept[sc] {
			kept[sc] = true
			continue
		}
		stats.Collapsed++
		losers = append(losers, sym)
	}
	return losers, diags
}

// scope is the set of sections a row is visible from.
type scope struct {
	access symbol.AccessModifier
	sec    *symbol.Section
	name   string
}

func scopeOf(sym *symbol.Symbol) scope {
	access := sym.Identifier().Access
	sec := sym.Section()
	switch {
	case access == symbol.AccessGlobal:
		return scope{}
	case sec == nil:
		return scope{access: access}
	case access == symbol.AccessSection:
		return scope{access: access, sec: sec}
	case access == symbol.AccessFile:
		return scope{access: access, name: sec.SourceFile}
	default:
		return scope{access: access, name: sec.Library}
	}
}

func conflict(first, second *symbol.Symbol) *diag.Diagnostic {
	d := diag.Newf(diag.DuplicateSymbol, second.Location(), []string{first.Key().String()},
		"duplicate symbol %s", first)
	d.Detail = "The same identifier is declared with different field values and neither declaration is overridable."
	if !first.Location().IsZero() {
		d.Detail += " The first declaration is at " + first.Location().String() + "."
	}
	d.Related = []diag.Location{first.Location()}
	return d
}
