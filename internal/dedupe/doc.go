// Package dedupe adjudicates symbols that share a definition and an id.
//
// Rows of one key are considered in merge order. Field-for-field equal rows
// collapse into the first of them. A row whose definition marks it
// overridable loses to any non-overridable row of the same key; when every
// row is overridable the last-merged one wins. Two non-overridable rows that
// differ are a DuplicateSymbol diagnostic carrying both locations. Rows
// without an identifier are never compared.
package dedupe
