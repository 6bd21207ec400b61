// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the two cross-reference records a section can carry.
package symbol

import (
	"strings"

	"github.com/specialistvlad/irlink/internal/diag"
)

// SimpleReference requires a row of Table whose id is Keys joined with "/".
type SimpleReference struct {
	Table    string
	Keys     []string
	Location diag.Location

	section *Section
}

// ID returns the primary key tuple in identifier form.
func (r SimpleReference) ID() string {
	return strings.Join(r.Keys, "/")
}

// Key returns the target key.
func (r SimpleReference) Key() Key {
	return Key{Table: r.Table, ID: r.ID()}
}

// Section returns the section that declared the reference.
func (r SimpleReference) Section() *Section { return r.section }

func (r SimpleReference) String() string {
	return r.Table + ":" + r.ID()
}

// GroupRecord is a typed parent to child edge of the hierarchy.
type GroupRecord struct {
	ParentType string
	ParentID   string
	ChildType  string
	ChildID    string
	Location   diag.Location

	section *Section
}

func (g GroupRecord) Parent() Key { return Key{Table: g.ParentType, ID: g.ParentID} }
func (g GroupRecord) Child() Key  { return Key{Table: g.ChildType, ID: g.ChildID} }

// Section returns the section that declared the group record.
func (g GroupRecord) Section() *Section { return g.section }

func (g GroupRecord) String() string {
	return g.Parent().String() + " -> " + g.Child().String()
}
