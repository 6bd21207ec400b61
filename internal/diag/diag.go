package diag

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/irlink/internal/field"
	"github.com/specialistvlad/irlink/internal/symdef"
)

// Kind classifies a diagnostic. All kinds are fatal to the link.
type Kind int

const (
	// TypeMismatch is a field read or written as the wrong kind.
	TypeMismatch Kind = iota + 1
	// DuplicateDefinition is a registry conflict between symbol definitions.
	DuplicateDefinition
	// DuplicateSymbol is a non-overridable identifier collision.
	DuplicateSymbol
	// UnresolvedReference is a reference whose target is missing.
	UnresolvedReference
	// CyclicReference is a cycle across group edges.
	CyclicReference
	// CyclicActionOrder is a cycle in an action sequence table.
	CyclicActionOrder
)

var kindNames = map[Kind]string{
	TypeMismatch:        "TypeMismatch",
	DuplicateDefinition: "DuplicateDefinition",
	DuplicateSymbol:     "DuplicateSymbol",
	UnresolvedReference: "UnresolvedReference",
	CyclicReference:     "CyclicReference",
	CyclicActionOrder:   "CyclicActionOrder",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is one structured problem.
type Diagnostic struct {
	Kind    Kind
	Summary string
	Detail  string
	// Location is where the problem was written down.
	Location Location
	// Related holds other locations involved, such as the first declaration of
	// a duplicate symbol.
	Related []Location
	// Identifiers are the affected names: symbol ids, action names, table keys.
	Identifiers []string
	// Cause is the Go error the diagnostic was built from, if any.
	Cause error
}

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	sb.WriteString(d.Location.String())
	sb.WriteString(": ")
	sb.WriteString(d.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(d.Summary)
	if d.Detail != "" {
		sb.WriteString("; ")
		sb.WriteString(d.Detail)
	}
	for _, r := range d.Related {
		sb.WriteString(" (see ")
		sb.WriteString(r.String())
		sb.WriteString(")")
	}
	return sb.String()
}

// Unwrap returns the underlying error so errors.Is sees through diagnostics.
func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

// Diagnostics is an ordered list of problems. A nil or empty list means
// success.
type Diagnostics []*Diagnostic

// Append adds diagnostics and returns the extended list.
func (ds Diagnostics) Append(more ...*Diagnostic) Diagnostics {
	return append(ds, more...)
}

// Extend adds all diagnostics of another list.
func (ds Diagnostics) Extend(other Diagnostics) Diagnostics {
	return append(ds, other...)
}

// HasErrors reports whether the list is non-empty. Every kind is fatal.
func (ds Diagnostics) HasErrors() bool {
	return len(ds) > 0
}

// Of returns the diagnostics of one kind.
func (ds Diagnostics) Of(kind Kind) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Sort orders diagnostics by kind, location and identifiers so output is
// stable across runs.
func (ds Diagnostics) Sort() {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Location != b.Location {
			return a.Location.Less(b.Location)
		}
		return strings.Join(a.Identifiers, "\x00") < strings.Join(b.Identifiers, "\x00")
	})
}

// Error joins all diagnostics, one per line.
func (ds Diagnostics) Error() string {
	switch len(ds) {
	case 0:
		return "no diagnostics"
	case 1:
		return ds[0].Error()
	}
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return fmt.Sprintf("%d problems:\n- %s", len(ds), strings.Join(lines, "\n- "))
}

// Unwrap exposes the individual diagnostics to errors.As.
func (ds Diagnostics) Unwrap() []error {
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}
	return errs
}

// Err returns the list as an error, or nil when it is empty.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	return ds
}

// HCL converts the list for rendering with hcl.NewDiagnosticTextWriter.
func (ds Diagnostics) HCL() hcl.Diagnostics {
	out := make(hcl.Diagnostics, 0, len(ds))
	for _, d := range ds {
		detail := d.Detail
		for _, r := range d.Related {
			if detail != "" {
				detail += " "
			}
			detail += "Also declared at " + r.String() + "."
		}
		out = append(out, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  d.Kind.String() + ": " + d.Summary,
			Detail:   detail,
			Subject:  d.Location.Range(),
		})
	}
	return out
}

// New builds a diagnostic.
func New(kind Kind, loc Location, summary string, ids ...string) *Diagnostic {
	return &Diagnostic{Kind: kind, Location: loc, Summary: summary, Identifiers: ids}
}

// Newf builds a diagnostic with a formatted summary.
func Newf(kind Kind, loc Location, ids []string, format string, args ...any) *Diagnostic {
	return New(kind, loc, fmt.Sprintf(format, args...), ids...)
}

// FromError classifies a plain Go error produced by a leaf package. Errors
// matching field.ErrTypeMismatch become TypeMismatch and errors matching
// symdef.ErrDuplicateDefinition become DuplicateDefinition; any other error
// is reported under the fallback kind.
func FromError(err error, fallback Kind, loc Location) *Diagnostic {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d
	}
	kind := fallback
	switch {
	case errors.Is(err, field.ErrTypeMismatch):
		kind = TypeMismatch
	case errors.Is(err, symdef.ErrDuplicateDefinition):
		kind = DuplicateDefinition
	}
	return &Diagnostic{Kind: kind, Location: loc, Summary: err.Error(), Cause: err}
}
