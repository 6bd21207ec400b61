// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Section, the output of compiling one source fragment.
package symbol

import "slices"

// Section holds the symbols and records of one compiled fragment in
// declaration order. Records enter a section only through its Add methods,
// which tie each record to the section for visibility checks.
type Section struct {
	ID string
	// Namespace is the owning extension, or "" for core content.
	Namespace  string
	Library    string
	SourceFile string

	symbols    []*Symbol
	references []SimpleReference
	groups     []GroupRecord
}

// NewSection returns an empty section.
func NewSection(id string) *Section {
	return &Section{ID: id}
}

// Add appends symbols in order. A symbol belongs to at most one section;
// adding one the section already lists leaves the order unchanged.
func (s *Section) Add(syms ...*Symbol) *Section {
	for _, sym := range syms {
		if sym.section == s || (sym.section != nil && slices.Contains(s.symbols, sym)) {
			sym.section = s
			continue
		}
		sym.section = s
		s.symbols = append(s.symbols, sym)
	}
	return s
}

// AddReference appends simple references in order.
func (s *Section) AddReference(refs ...SimpleReference) *Section {
	for _, r := range refs {
		r.Keys = append([]string(nil), r.Keys...)
		r.section = s
		s.references = append(s.references, r)
	}
	return s
}

// AddGroup appends group records in order.
func (s *Section) AddGroup(groups ...GroupRecord) *Section {
	for _, g := range groups {
		g.section = s
		s.groups = append(s.groups, g)
	}
	return s
}

// Symbols returns the symbols in declaration order.
func (s *Section) Symbols() []*Symbol {
	return append([]*Symbol(nil), s.symbols...)
}

// References returns the simple references in declaration order.
func (s *Section) References() []SimpleReference {
	return append([]SimpleReference(nil), s.references...)
}

// Groups returns the group records in declaration order.
func (s *Section) Groups() []GroupRecord {
	return append([]GroupRecord(nil), s.groups...)
}

func (s *Section) String() string {
	if s.Namespace != "" {
		return s.Namespace + "/" + s.ID
	}
	return s.ID
}
