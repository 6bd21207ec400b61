// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines symbol identifiers and the access modifiers that limit
// which sections may reference them.
package symbol

import "fmt"

// AccessModifier limits the sections that may reference a symbol.
type AccessModifier int

const (
	// AccessGlobal symbols are visible to every section.
	AccessGlobal AccessModifier = iota
	// AccessLibrary symbols are visible to sections of the same library.
	AccessLibrary
	// AccessFile symbols are visible to sections compiled from the same
	// source file.
	AccessFile
	// AccessSection symbols are visible only inside their own section.
	AccessSection
)

var accessNames = [...]string{
	AccessGlobal:  "global",
	AccessLibrary: "library",
	AccessFile:    "file",
	AccessSection: "section",
}

func (a AccessModifier) String() string {
	if a < 0 || int(a) >= len(accessNames) {
		return fmt.Sprintf("AccessModifier(%d)", int(a))
	}
	return accessNames[a]
}

// ParseAccess converts a keyword into an AccessModifier. An empty string is
// AccessGlobal.
func ParseAccess(s string) (AccessModifier, error) {
	if s == "" {
		return AccessGlobal, nil
	}
	for i, name := range accessNames {
		if name == s {
			return AccessModifier(i), nil
		}
	}
	return AccessGlobal, fmt.Errorf("unknown access modifier %q", s)
}

// Identifier names a symbol within its definition.
type Identifier struct {
	ID     string
	Access AccessModifier
}

// Global returns a globally visible identifier.
func Global(id string) *Identifier {
	return &Identifier{ID: id}
}

func (i *Identifier) String() string {
	if i.Access == AccessGlobal {
		return i.ID
	}
	return i.Access.String() + ":" + i.ID
}

// Visible reports whether a symbol declared in owner with access a can be
// referenced from section from.
func (a AccessModifier) Visible(owner, from *Section) bool {
	switch a {
	case AccessGlobal:
		return true
	case AccessLibrary:
		return owner != nil && from != nil && owner.Library == from.Library
	case AccessFile:
		return owner != nil && from != nil && owner.SourceFile == from.SourceFile
	case AccessSection:
		return owner != nil && owner == from
	default:
		return false
	}
}

// Key addresses a symbol in a merged universe by definition name and id.
type Key struct {
	Table string
	ID    string
}

func (k Key) String() string {
	return k.Table + ":" + k.ID
}
