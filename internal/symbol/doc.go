// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package symbol models the rows and records produced by compiling one source
// fragment: typed Symbols, simple references that require a row to exist,
// group records that form parent/child edges, and the Section that owns them.
//
// A Symbol always has exactly as many fields as its definition's arity, and
// every field holds a value of its column's kind. Both properties hold by
// construction: New allocates one null value per column and Set rejects a
// value of the wrong kind.
package symbol
