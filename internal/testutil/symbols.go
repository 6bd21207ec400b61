package testutil

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/irlink/internal/diag"
	"github.com/specialistvlad/irlink/internal/field"
	"github.com/specialistvlad/irlink/internal/symbol"
	"github.com/specialistvlad/irlink/internal/symdef"
)

// Registry returns a frozen registry holding the built-in catalog.
func Registry() *symdef.Registry {
	r := symdef.New()
	r.Freeze()
	return r
}

// Fields maps field names to raw Go values for Row.
type Fields map[string]any

// Row builds a symbol of the named definition. An empty id makes an
// anonymous row. Raw values go through field.New with the column's kind.
func Row(t testing.TB, reg *symdef.Registry, table, id string, fields Fields) *symbol.Symbol {
	t.Helper()
	return RowAt(t, reg, diag.Location{File: table + ".wxs", Line: 1}, table, id, fields)
}

// RowAt is Row with an explicit source location.
func RowAt(t testing.TB, reg *symdef.Registry, loc diag.Location, table, id string, fields Fields) *symbol.Symbol {
	t.Helper()
	def, ok := reg.ByName(table)
	require.True(t, ok, "unknown table %q", table)

	var ident *symbol.Identifier
	if id != "" {
		ident = symbol.Global(id)
	}
	sym := symbol.New(def, ident, loc)
	for name, raw := range fields {
		i, ok := def.FieldIndex(name)
		require.True(t, ok, "%s has no field %q", table, name)
		v, err := field.New(def.Field(i).Kind, raw)
		require.NoError(t, err)
		require.NoError(t, sym.Set(i, v))
	}
	return sym
}

// ActionOption sets one ordering attribute of an action row.
type ActionOption func(Fields)

func Seq(n int) ActionOption          { return func(f Fields) { f["Sequence"] = n } }
func Before(name string) ActionOption { return func(f Fields) { f["Before"] = name } }
func After(name string) ActionOption  { return func(f Fields) { f["After"] = name } }
func Condition(c string) ActionOption { return func(f Fields) { f["Condition"] = c } }
func Overridable() ActionOption       { return func(f Fields) { f["Overridable"] = true } }

// Action builds a WixAction row with the identifier "<table>/<name>".
func Action(t testing.TB, reg *symdef.Registry, table, name string, opts ...ActionOption) *symbol.Symbol {
	t.Helper()
	f := Fields{"SequenceTable": table, "Action": name}
	for _, opt := range opts {
		opt(f)
	}
	return Row(t, reg, "WixAction", table+"/"+name, f)
}

// Shuffled returns a permutation of sections using a seeded source.
func Shuffled(seed int64, sections []*symbol.Section) []*symbol.Section {
	out := append([]*symbol.Section(nil), sections...)
	rand.New(rand.NewSource(seed)).Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Split puts each symbol into its own section, in order.
func Split(syms ...*symbol.Symbol) []*symbol.Section {
	out := make([]*symbol.Section, len(syms))
	for i, sym := range syms {
		out[i] = symbol.NewSection(sym.String()).Add(sym)
	}
	return out
}
