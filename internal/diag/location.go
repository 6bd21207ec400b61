package diag

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Location is the authoring position of a symbol or record.
type Location struct {
	File   string
	Line   int
	Column int
}

// IsZero reports whether no position is known.
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

func (l Location) String() string {
	switch {
	case l.IsZero():
		return "<unknown>"
	case l.Line == 0:
		return l.File
	case l.Column == 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	default:
		return fmt.Sprintf("%s:%d,%d", l.File, l.Line, l.Column)
	}
}

// Less orders locations by file, line and column.
func (l Location) Less(o Location) bool {
	if l.File != o.File {
		return l.File < o.File
	}
	if l.Line != o.Line {
		return l.Line < o.Line
	}
	return l.Column < o.Column
}

// FromRange converts an HCL source range into a Location.
func FromRange(r hcl.Range) Location {
	return Location{File: r.Filename, Line: r.Start.Line, Column: r.Start.Column}
}

// Range converts the location into a single-character HCL range, or nil when
// the location is unknown.
func (l Location) Range() *hcl.Range {
	if l.IsZero() {
		return nil
	}
	line, col := l.Line, l.Column
	if line == 0 {
		line = 1
	}
	if col == 0 {
		col = 1
	}
	return &hcl.Range{
		Filename: l.File,
		Start:    hcl.Pos{Line: line, Column: col},
		End:      hcl.Pos{Line: line, Column: col + 1},
	}
}
