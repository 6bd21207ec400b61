// Package refs resolves the cross-references of a deduplicated universe.
//
// # Simple references
//
// A simple reference names a table and a primary-key tuple. The tuple is
// joined with "/" into an identifier and must match a row of that table that
// is visible from the referencing section. Sections are checked in parallel
// on a worker pool; each worker only reads the universe.
//
// # Group records
//
// A group record is a typed parent to child edge. Both endpoints must resolve
// to rows of the declared definitions. An id that only exists under another
// definition is reported as unresolved and the diagnostic names the actual
// definition. The resolved edges form a graph whose strongly connected
// components are reported as CyclicReference, one diagnostic per component.
//
// An acyclic graph is returned as a Forest. Roots are the parents without an
// incoming edge, rows of hierarchy-root definitions first, then ordered by
// definition name and id. Children are ordered the same way, so the forest
// shape does not depend on merge order. A child reachable through several
// parents is one shared Node.
package refs
