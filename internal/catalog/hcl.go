package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/irlink/internal/field"
	"github.com/specialistvlad/irlink/internal/symdef"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot decodes the top-level blocks of a catalog file. Unknown blocks and
// attributes are rejected so misspelt keys surface as diagnostics.
type fileRoot struct {
	Extensions []*extensionBlock `hcl:"extension,block"`
}

type extensionBlock struct {
	Name        string             `hcl:"name,label"`
	Definitions []*definitionBlock `hcl:"definition,block"`
}

type definitionBlock struct {
	Name          string        `hcl:"name,label"`
	Category      *string       `hcl:"category,optional"`
	HierarchyRoot *bool         `hcl:"hierarchy_root,optional"`
	OverrideField *string       `hcl:"override_field,optional"`
	Fields        []*fieldBlock `hcl:"field,block"`
}

type fieldBlock struct {
	Name     string         `hcl:"name,label"`
	Type     hcl.Expression `hcl:"type,attr"`
	Nullable *bool          `hcl:"nullable,optional"`
}

// ParseHCL decodes an HCL catalog. The filename is used for diagnostics only.
func ParseHCL(src []byte, filename string) ([]Extension, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", filename, diags)
	}

	exts := make([]Extension, 0, len(root.Extensions))
	for _, eb := range root.Extensions {
		ext := Extension{Name: eb.Name, Source: filename}
		for _, db := range eb.Definitions {
			def, moreDiags := translateDefinition(db)
			diags = append(diags, moreDiags...)
			ext.Definitions = append(ext.Definitions, def)
		}
		exts = append(exts, ext)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", filename, diags)
	}
	return exts, nil
}

func translateDefinition(db *definitionBlock) (symdef.Definition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	def := symdef.Definition{Name: db.Name}

	if db.Category != nil {
		cat, err := symdef.ParseCategory(*db.Category)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid category",
				Detail:   fmt.Sprintf("Definition %q: %s.", db.Name, err),
			})
		}
		def.Category = cat
	}
	if db.HierarchyRoot != nil {
		def.HierarchyRoot = *db.HierarchyRoot
	}
	if db.OverrideField != nil {
		def.OverrideField = *db.OverrideField
	}

	for _, fb := range db.Fields {
		kind, moreDiags := kindFromExpr(fb.Type)
		diags = append(diags, moreDiags...)
		fd := field.Def(fb.Name, kind)
		if fb.Nullable != nil {
			fd.Nullable = *fb.Nullable
		}
		def.Fields = append(def.Fields, fd)
	}
	return def, diags
}

// kindFromExpr reads a field type written either as a bare keyword
// (type = large_number) or as a quoted string (type = "path").
func kindFromExpr(expr hcl.Expression) (field.Kind, hcl.Diagnostics) {
	var keyword string
	switch e := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) == 1 {
			keyword = e.Traversal.RootName()
		}
	case *hclsyntax.TemplateExpr:
		v, diags := e.Value(nil)
		if !diags.HasErrors() && v.Type() == cty.String && v.IsKnown() && !v.IsNull() {
			keyword = v.AsString()
		}
	}

	kind, err := field.ParseKind(keyword)
	if err != nil {
		rng := expr.Range()
		return field.KindString, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid field type",
			Detail:   "A field type must be one of string, number, large_number, bool or path.",
			Subject:  &rng,
		}}
	}
	return kind, nil
}
