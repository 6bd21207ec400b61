// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Symbol, one typed row of a symbol definition.
package symbol

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/irlink/internal/diag"
	"github.com/specialistvlad/irlink/internal/field"
	"github.com/specialistvlad/irlink/internal/symdef"
)

// Symbol is one row of a symbol definition.
type Symbol struct {
	def     *symdef.Definition
	id      *Identifier
	loc     diag.Location
	fields  []field.Value
	section *Section
}

// New allocates a symbol whose fields are all null.
func New(def *symdef.Definition, id *Identifier, loc diag.Location) *Symbol {
	fields := make([]field.Value, def.Arity())
	for i, f := range def.Fields {
		fields[i] = field.Null(f.Kind)
	}
	return &Symbol{def: def, id: id, loc: loc, fields: fields}
}

func (s *Symbol) Definition() *symdef.Definition { return s.def }
func (s *Symbol) Identifier() *Identifier        { return s.id }
func (s *Symbol) Location() diag.Location        { return s.loc }

// Section returns the section the symbol was added to, or nil.
func (s *Symbol) Section() *Section { return s.section }

// ID returns the identifier's id, or "" for anonymous rows.
func (s *Symbol) ID() string {
	if s.id == nil {
		return ""
	}
	return s.id.ID
}

// HasID reports whether the symbol has an identifier.
func (s *Symbol) HasID() bool {
	return s.id != nil
}

// Key returns the (definition, id) pair of the symbol.
func (s *Symbol) Key() Key {
	return Key{Table: s.def.Name, ID: s.ID()}
}

// Field returns the i-th field value.
func (s *Symbol) Field(i int) field.Value {
	return s.fields[i]
}

// Fields returns a copy of the field values in definition order.
func (s *Symbol) Fields() []field.Value {
	return append([]field.Value(nil), s.fields...)
}

// FieldByName returns the value of the named field.
func (s *Symbol) FieldByName(name string) (field.Value, error) {
	i, ok := s.def.FieldIndex(name)
	if !ok {
		return field.Value{}, fmt.Errorf("%s has no field %q", s.def.Name, name)
	}
	return s.fields[i], nil
}

// Set stores v in the i-th field. The value's kind must match the column.
func (s *Symbol) Set(i int, v field.Value) error {
	if i < 0 || i >= len(s.fields) {
		return fmt.Errorf("%s: field index %d out of range [0,%d)", s.def.Name, i, len(s.fields))
	}
	col := s.def.Fields[i]
	if v.Kind() != col.Kind {
		return fmt.Errorf("%s.%s: %w", s.def.Name, col.Name, &field.MismatchError{Want: col.Kind, Got: v.Kind()})
	}
	s.fields[i] = v
	return nil
}

// SetByName stores v in the named field.
func (s *Symbol) SetByName(name string, v field.Value) error {
	i, ok := s.def.FieldIndex(name)
	if !ok {
		return fmt.Errorf("%s has no field %q", s.def.Name, name)
	}
	return s.Set(i, v)
}

// Overridable reports whether the definition's override field is set to
// true on this row.
func (s *Symbol) Overridable() bool {
	i := s.def.OverrideIndex()
	if i < 0 {
		return false
	}
	b, err := s.fields[i].AsBool()
	return err == nil && b.Valid && b.Bool
}

// Validate reports every non-nullable field that is still null.
func (s *Symbol) Validate() error {
	var errs []error
	for i, col := range s.def.Fields {
		if !col.Nullable && s.fields[i].IsNull() {
			errs = append(errs, fmt.Errorf("%s: field %s is required", s, col.Name))
		}
	}
	return errors.Join(errs...)
}

// Equal reports whether two symbols are the same row: same definition,
// same identifier and field-for-field equal values. Locations are ignored.
func (s *Symbol) Equal(o *Symbol) bool {
	if s.def != o.def || len(s.fields) != len(o.fields) {
		return false
	}
	switch {
	case s.id == nil && o.id == nil:
	case s.id == nil || o.id == nil:
		return false
	case *s.id != *o.id:
		return false
	}
	for i := range s.fields {
		if !s.fields[i].Equal(o.fields[i]) {
			return false
		}
	}
	return true
}

func (s *Symbol) String() string {
	if s.id == nil {
		return s.def.Name
	}
	return s.def.Name + ":" + s.id.ID
}
