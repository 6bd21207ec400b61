// Package symdef holds symbol definitions and the Registry that maps a
// definition name to its schema.
//
// The Registry is an explicit value rather than process-wide state. New
// returns a registry with the built-in catalog loaded; extension catalogs are
// merged into the same namespace through LoadExtension during the loading
// phase, and Freeze ends that phase. A frozen registry is read-only and is
// safe to share between goroutines without locking.
//
// Built-in definitions come with field index constants (ComponentDirectoryRef,
// WixActionSequence, ...). The catalog verifies at registration that each
// constant matches the position of its field, so symbol fields can be
// addressed by a stable integer instead of a name lookup.
package symdef
