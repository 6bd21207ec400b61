package symdef

import (
	"fmt"

	"github.com/specialistvlad/irlink/internal/field"
)

// Category marks the subsystem a definition belongs to. It exists purely for
// downstream filtering and never influences resolution.
type Category int

const (
	// CategoryCore is an installer-database table.
	CategoryCore Category = iota
	// CategoryBundle is a bootstrapper bundle table.
	CategoryBundle
	// CategoryBundleSearch is a bundle table that describes a search.
	CategoryBundleSearch
	// CategoryPatch is a patch authoring table.
	CategoryPatch
)

var categoryNames = [...]string{
	CategoryCore:         "core",
	CategoryBundle:       "bundle",
	CategoryBundleSearch: "bundle_search",
	CategoryPatch:        "patch",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory converts a catalog keyword into a Category. An empty string
// means CategoryCore.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryCore, nil
	}
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return CategoryCore, fmt.Errorf("unknown category %q", s)
}

// Definition is the schema of one symbol table.
type Definition struct {
	// Name is unique within a registry.
	Name string
	// Type is the built-in tag, or TypeUnknown for extension definitions.
	Type Type
	// Fields are the ordered columns; their count is the definition's arity.
	Fields []field.Definition
	// Extension names the extension that contributed the definition. Empty for
	// built-ins.
	Extension string
	Category  Category
	// HierarchyRoot marks container types the hierarchy forest is walked from.
	HierarchyRoot bool
	// OverrideField names a Bool field whose true value makes a row
	// overridable. Empty when rows of this table can never be overridden.
	OverrideField string

	index         map[string]int
	overrideIndex int
}

// Arity is the number of fields every symbol of this definition has.
func (d *Definition) Arity() int {
	return len(d.Fields)
}

// Field returns the i-th field definition.
func (d *Definition) Field(i int) field.Definition {
	return d.Fields[i]
}

// FieldIndex returns the position of the named field.
func (d *Definition) FieldIndex(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// OverrideIndex returns the position of the override field, or -1.
func (d *Definition) OverrideIndex() int {
	return d.overrideIndex
}

// SameShape reports whether two definitions describe the same table. The
// owning extension and the built-in tag do not take part in the comparison.
func (d *Definition) SameShape(o *Definition) bool {
	if d.Name != o.Name || len(d.Fields) != len(o.Fields) {
		return false
	}
	if d.Category != o.Category || d.HierarchyRoot != o.HierarchyRoot || d.OverrideField != o.OverrideField {
		return false
	}
	for i := range d.Fields {
		if d.Fields[i] != o.Fields[i] {
			return false
		}
	}
	return true
}

// String renders the definition as a one-line schema, e.g.
// "Property(Value string?, Secure bool?)".
func (d *Definition) String() string {
	s := d.Name + "("
	for i, f := range d.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name + " " + f.Kind.String()
		if f.Nullable {
			s += "?"
		}
	}
	return s + ")"
}

// prepare validates the definition and computes its name index. It returns a
// private copy so later changes by the caller cannot alter a registered
// definition.
func prepare(def Definition) (*Definition, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("symbol definition has no name")
	}
	out := def
	out.Fields = append([]field.Definition(nil), def.Fields...)
	out.index = make(map[string]int, len(out.Fields))
	out.overrideIndex = -1

	for i, f := range out.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("definition %q: field %d has no name", def.Name, i)
		}
		if !f.Kind.Valid() {
			return nil, fmt.Errorf("definition %q: field %q has invalid kind %d", def.Name, f.Name, int(f.Kind))
		}
		if _, dup := out.index[f.Name]; dup {
			return nil, fmt.Errorf("definition %q: field %q declared twice", def.Name, f.Name)
		}
		out.index[f.Name] = i
	}

	if out.OverrideField != "" {
		i, ok := out.index[out.OverrideField]
		if !ok {
			return nil, fmt.Errorf("definition %q: override field %q does not exist", def.Name, out.OverrideField)
		}
		if out.Fields[i].Kind != field.KindBool {
			return nil, fmt.Errorf("definition %q: override field %q must be bool, is %s", def.Name, out.OverrideField, out.Fields[i].Kind)
		}
		out.overrideIndex = i
	}
	return &out, nil
}
