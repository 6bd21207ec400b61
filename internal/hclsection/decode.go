package hclsection

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/irlink/internal/ctxlog"
	"github.com/specialistvlad/irlink/internal/diag"
	"github.com/specialistvlad/irlink/internal/field"
	"github.com/specialistvlad/irlink/internal/fsutil"
	"github.com/specialistvlad/irlink/internal/symbol"
	"github.com/specialistvlad/irlink/internal/symdef"
)

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "section", LabelNames: []string{"id"}},
	},
}

var sectionSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "namespace"},
		{Name: "library"},
		{Name: "source_file"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "symbol", LabelNames: []string{"table", "id"}},
		{Type: "row", LabelNames: []string{"table"}},
		{Type: "reference", LabelNames: []string{"table"}},
		{Type: "group"},
	},
}

type referenceBlock struct {
	Keys []string `hcl:"keys"`
}

type groupBlock struct {
	ParentType string `hcl:"parent_type"`
	Parent     string `hcl:"parent"`
	ChildType  string `hcl:"child_type"`
	Child      string `hcl:"child"`
}

// accessAttr is the reserved attribute naming a symbol's access modifier.
const accessAttr = "access"

// Loader decodes section files against a registry. It keeps every parsed
// file so diagnostics can be rendered with source snippets.
type Loader struct {
	reg    *symdef.Registry
	parser *hclparse.Parser
}

// NewLoader returns a loader resolving table names through reg.
func NewLoader(reg *symdef.Registry) *Loader {
	return &Loader{reg: reg, parser: hclparse.NewParser()}
}

// Files returns the parsed files keyed by filename.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}

// Load decodes every .hcl file under the given paths. Decoding problems are
// returned as hcl.Diagnostics inside the error.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*symbol.Section, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Section loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered section files.", "count", len(files))

	var (
		sections []*symbol.Section
		diags    hcl.Diagnostics
	)
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading sections %s: %w", file, err)
		}
		secs, moreDiags := l.Parse(src, file)
		diags = append(diags, moreDiags...)
		sections = append(sections, secs...)
	}
	if diags.HasErrors() {
		return nil, diags
	}

	logger.Debug("Section loading complete.", "sections", len(sections))
	return sections, nil
}

// Parse decodes the sections of one HCL source. The filename is used for
// locations and diagnostics.
func (l *Loader) Parse(src []byte, filename string) ([]*symbol.Section, hcl.Diagnostics) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	content, moreDiags := file.Body.Content(rootSchema)
	diags = append(diags, moreDiags...)

	var sections []*symbol.Section
	for _, block := range content.Blocks {
		sec, moreDiags := l.decodeSection(block)
		diags = append(diags, moreDiags...)
		sections = append(sections, sec)
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return sections, diags
}

func (l *Loader) decodeSection(block *hcl.Block) (*symbol.Section, hcl.Diagnostics) {
	sec := symbol.NewSection(block.Labels[0])
	content, diags := block.Body.Content(sectionSchema)

	for name, target := range map[string]*string{
		"namespace":   &sec.Namespace,
		"library":     &sec.Library,
		"source_file": &sec.SourceFile,
	} {
		if attr, ok := content.Attributes[name]; ok {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, target)...)
		}
	}

	for _, b := range content.Blocks {
		switch b.Type {
		case "symbol", "row":
			sym, moreDiags := l.decodeSymbol(b)
			diags = append(diags, moreDiags...)
			if sym != nil {
				sec.Add(sym)
			}

		case "reference":
			var rb referenceBlock
			moreDiags := gohcl.DecodeBody(b.Body, nil, &rb)
			diags = append(diags, moreDiags...)
			if !moreDiags.HasErrors() {
				sec.AddReference(symbol.SimpleReference{
					Table:    b.Labels[0],
					Keys:     rb.Keys,
					Location: diag.FromRange(b.DefRange),
				})
			}

		case "group":
			var gb groupBlock
			moreDiags := gohcl.DecodeBody(b.Body, nil, &gb)
			diags = append(diags, moreDiags...)
			if !moreDiags.HasErrors() {
				sec.AddGroup(symbol.GroupRecord{
					ParentType: gb.ParentType,
					ParentID:   gb.Parent,
					ChildType:  gb.ChildType,
					ChildID:    gb.Child,
					Location:   diag.FromRange(b.DefRange),
				})
			}
		}
	}
	return sec, diags
}

func (l *Loader) decodeSymbol(b *hcl.Block) (*symbol.Symbol, hcl.Diagnostics) {
	table := b.Labels[0]
	def, ok := l.reg.ByName(table)
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown table",
			Detail:   fmt.Sprintf("No symbol definition is registered under the name %q.", table),
			Subject:  b.LabelRanges[0].Ptr(),
		}}
	}

	attrs, diags := b.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	var ident *symbol.Identifier
	if b.Type == "symbol" {
		ident = symbol.Global(b.Labels[1])
	}
	if attr, ok := attrs[accessAttr]; ok {
		delete(attrs, accessAttr)
		ident, diags = decodeAccess(attr, ident, diags)
	}

	sym := symbol.New(def, ident, diag.FromRange(b.DefRange))
	for _, attr := range sortedAttributes(attrs) {
		i, ok := def.FieldIndex(attr.Name)
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown field",
				Detail:   fmt.Sprintf("%s has no field named %q.", def.Name, attr.Name),
				Subject:  attr.NameRange.Ptr(),
			})
			continue
		}
		v, moreDiags := attr.Expr.Value(nil)
		diags = append(diags, moreDiags...)
		if moreDiags.HasErrors() {
			continue
		}
		fv, err := field.FromCty(def.Field(i).Kind, v)
		if err == nil {
			err = sym.Set(i, fv)
		}
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid field value",
				Detail:   fmt.Sprintf("%s.%s: %s.", def.Name, attr.Name, err),
				Subject:  attr.Expr.Range().Ptr(),
			})
		}
	}

	if err := sym.Validate(); err != nil {
		for _, e := range unjoin(err) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing required field",
				Detail:   e.Error() + ".",
				Subject:  b.DefRange.Ptr(),
			})
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return sym, diags
}

func decodeAccess(attr *hcl.Attribute, ident *symbol.Identifier, diags hcl.Diagnostics) (*symbol.Identifier, hcl.Diagnostics) {
	if ident == nil {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Access on anonymous row",
			Detail:   "Only symbol blocks with an identifier can declare access.",
			Subject:  attr.NameRange.Ptr(),
		})
	}
	var s string
	moreDiags := gohcl.DecodeExpression(attr.Expr, nil, &s)
	diags = append(diags, moreDiags...)
	if moreDiags.HasErrors() {
		return ident, diags
	}
	access, err := symbol.ParseAccess(s)
	if err != nil {
		return ident, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid access modifier",
			Detail:   err.Error() + ".",
			Subject:  attr.Expr.Range().Ptr(),
		})
	}
	ident.Access = access
	return ident, diags
}

// sortedAttributes orders attributes by source position so diagnostics
// come out in reading order.
func sortedAttributes(attrs hcl.Attributes) []*hcl.Attribute {
	out := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.Start.Byte < out[j].Range.Start.Byte
	})
	return out
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
