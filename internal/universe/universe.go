package universe

import (
	"github.com/specialistvlad/irlink/internal/symbol"
)

// Universe is the merged symbol table.
type Universe struct {
	sections   []*symbol.Section
	symbols    []*symbol.Symbol
	references []symbol.SimpleReference
	groups     []symbol.GroupRecord

	ordinal map[*symbol.Symbol]int
	byKey   map[symbol.Key][]*symbol.Symbol
	byID    map[string][]*symbol.Symbol
	byTable map[string][]*symbol.Symbol
}

// Merge concatenates sections in the given order. A section or symbol
// pointer seen earlier in the merge is skipped.
func Merge(sections ...*symbol.Section) *Universe {
	u := &Universe{
		ordinal: make(map[*symbol.Symbol]int),
	}
	seen := make(map[*symbol.Section]bool, len(sections))
	for _, sec := range sections {
		if sec == nil || seen[sec] {
			continue
		}
		seen[sec] = true
		u.sections = append(u.sections, sec)
		for _, sym := range sec.Symbols() {
			if _, dup := u.ordinal[sym]; dup {
				continue
			}
			u.ordinal[sym] = len(u.symbols)
			u.symbols = append(u.symbols, sym)
		}
		u.references = append(u.references, sec.References()...)
		u.groups = append(u.groups, sec.Groups()...)
	}
	u.reindex()
	return u
}

// Retain returns a universe holding only the kept symbols. Records and
// sections carry over unchanged and kept symbols keep their merge ordinals.
// The result lists symbols in ordinal order whatever the order of kept.
func (u *Universe) Retain(kept []*symbol.Symbol) *Universe {
	keep := make(map[*symbol.Symbol]bool, len(kept))
	for _, sym := range kept {
		keep[sym] = true
	}
	out := &Universe{
		sections:   u.sections,
		references: u.references,
		groups:     u.groups,
		ordinal:    make(map[*symbol.Symbol]int, len(kept)),
	}
	for _, sym := range u.symbols {
		if keep[sym] {
			out.ordinal[sym] = u.ordinal[sym]
			out.symbols = append(out.symbols, sym)
		}
	}
	out.reindex()
	return out
}

func (u *Universe) reindex() {
	u.byKey = make(map[symbol.Key][]*symbol.Symbol)
	u.byID = make(map[string][]*symbol.Symbol)
	u.byTable = make(map[string][]*symbol.Symbol)
	for _, sym := range u.symbols {
		name := sym.Definition().Name
		u.byTable[name] = append(u.byTable[name], sym)
		if !sym.HasID() {
			continue
		}
		u.byKey[sym.Key()] = append(u.byKey[sym.Key()], sym)
		u.byID[sym.ID()] = append(u.byID[sym.ID()], sym)
	}
}

// Sections returns the merged sections in merge order.
func (u *Universe) Sections() []*symbol.Section { return u.sections }

// Symbols returns every symbol in merge order. The slice must not be modified.
func (u *Universe) Symbols() []*symbol.Symbol { return u.symbols }

// References returns every simple reference in merge order.
func (u *Universe) References() []symbol.SimpleReference { return u.references }

// Groups returns every group record in merge order.
func (u *Universe) Groups() []symbol.GroupRecord { return u.groups }

// Len is the number of symbols.
func (u *Universe) Len() int { return len(u.symbols) }

// Ordinal returns the merge position of sym, or -1 if sym is not part of
// the universe.
func (u *Universe) Ordinal(sym *symbol.Symbol) int {
	if i, ok := u.ordinal[sym]; ok {
		return i
	}
	return -1
}

// Lookup returns the first-merged symbol with the given definition name and id.
func (u *Universe) Lookup(table, id string) (*symbol.Symbol, bool) {
	rows := u.byKey[symbol.Key{Table: table, ID: id}]
	if len(rows) == 0 {
		return nil, false
	}
	return rows[0], true
}

// LookupAll returns every symbol sharing key, in merge order.
func (u *Universe) LookupAll(key symbol.Key) []*symbol.Symbol {
	return u.byKey[key]
}

// FindByID returns the symbols of any definition whose id is id.
func (u *Universe) FindByID(id string) []*symbol.Symbol {
	return u.byID[id]
}

// Table returns the symbols of one definition in merge order.
func (u *Universe) Table(name string) []*symbol.Symbol {
	return u.byTable[name]
}

// Keys returns every distinct (definition, id) pair in first-merge order.
func (u *Universe) Keys() []symbol.Key {
	seen := make(map[symbol.Key]bool, len(u.byKey))
	keys := make([]symbol.Key, 0, len(u.byKey))
	for _, sym := range u.symbols {
		if !sym.HasID() || seen[sym.Key()] {
			continue
		}
		seen[sym.Key()] = true
		keys = append(keys, sym.Key())
	}
	return keys
}
