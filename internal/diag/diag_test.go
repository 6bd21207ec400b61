package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/irlink/internal/field"
	"github.com/specialistvlad/irlink/internal/symdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_String(t *testing.T) {
	testCases := []struct {
		loc      Location
		expected string
	}{
		{Location{}, "<unknown>"},
		{Location{File: "a.wxs"}, "a.wxs"},
		{Location{File: "a.wxs", Line: 3}, "a.wxs:3"},
		{Location{File: "a.wxs", Line: 3, Column: 7}, "a.wxs:3,7"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.loc.String())
		})
	}
}

func TestDiagnostics_SortAndFilter(t *testing.T) {
	ds := Diagnostics{
		New(CyclicActionOrder, Location{File: "b", Line: 1}, "cycle", "A", "B"),
		New(DuplicateSymbol, Location{File: "b", Line: 9}, "dup", "X"),
		New(DuplicateSymbol, Location{File: "a", Line: 2}, "dup", "Y"),
	}
	ds.Sort()

	require.Len(t, ds, 3)
	assert.Equal(t, []string{"Y"}, ds[0].Identifiers)
	assert.Equal(t, []string{"X"}, ds[1].Identifiers)
	assert.Equal(t, CyclicActionOrder, ds[2].Kind)

	assert.Len(t, ds.Of(DuplicateSymbol), 2)
	assert.Empty(t, ds.Of(TypeMismatch))
	assert.True(t, ds.HasErrors())
	assert.False(t, Diagnostics(nil).HasErrors())
	assert.NoError(t, Diagnostics(nil).Err())
}

func TestDiagnostics_ErrorAndUnwrap(t *testing.T) {
	d := New(UnresolvedReference, Location{File: "main.wxs", Line: 4}, "Directory 'INSTALLDIR' not found", "Directory/INSTALLDIR")
	d.Related = []Location{{File: "other.wxs", Line: 1}}
	ds := Diagnostics{d}

	err := ds.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UnresolvedReference")
	assert.Contains(t, err.Error(), "main.wxs:4")
	assert.Contains(t, err.Error(), "see other.wxs:1")

	var got *Diagnostic
	require.True(t, errors.As(fmt.Errorf("link: %w", err), &got))
	assert.Same(t, d, got)
}

func TestDiagnostics_HCL(t *testing.T) {
	ds := Diagnostics{
		New(DuplicateSymbol, Location{File: "a.hcl", Line: 2, Column: 3}, "duplicate Property 'P'"),
		New(CyclicReference, Location{}, "cycle"),
	}
	hd := ds.HCL()
	require.Len(t, hd, 2)
	assert.True(t, hd.HasErrors())
	assert.Equal(t, hcl.DiagError, hd[0].Severity)
	require.NotNil(t, hd[0].Subject)
	assert.Equal(t, "a.hcl", hd[0].Subject.Filename)
	assert.Equal(t, 2, hd[0].Subject.Start.Line)
	assert.Nil(t, hd[1].Subject)
}

func TestFromError(t *testing.T) {
	_, err := field.String("x").AsBool()
	d := FromError(fmt.Errorf("reading Overridable: %w", err), UnresolvedReference, Location{File: "f"})
	assert.Equal(t, TypeMismatch, d.Kind)
	assert.Equal(t, "f", d.Location.File)

	d = FromError(errors.New("boom"), UnresolvedReference, Location{})
	assert.Equal(t, UnresolvedReference, d.Kind)

	dup := &symdef.DuplicateError{Name: "T", Existing: "a", Incoming: "b"}
	d = FromError(dup, TypeMismatch, Location{})
	assert.Equal(t, DuplicateDefinition, d.Kind)
	assert.ErrorIs(t, Diagnostics{d}, symdef.ErrDuplicateDefinition)

	orig := New(CyclicReference, Location{}, "cycle")
	assert.Same(t, orig, FromError(orig, TypeMismatch, Location{}))
}
