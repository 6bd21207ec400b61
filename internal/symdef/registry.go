package symdef

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

var (
	// ErrDuplicateDefinition is returned when a name is registered twice with
	// a different shape.
	ErrDuplicateDefinition = errors.New("duplicate symbol definition")
	// ErrFrozen is returned by registration calls made after Freeze.
	ErrFrozen = errors.New("registry is frozen")
)

// DuplicateError reports a definition name claimed by two extensions with
// different shapes. It matches ErrDuplicateDefinition under errors.Is.
type DuplicateError struct {
	Name     string
	Existing string // extension that registered first; empty for built-ins
	Incoming string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q: registered by %s, redefined by %s",
		ErrDuplicateDefinition, e.Name, origin(e.Existing), origin(e.Incoming))
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateDefinition
}

func origin(ext string) string {
	if ext == "" {
		return "built-in catalog"
	}
	return fmt.Sprintf("extension %q", ext)
}

// Registry maps definition names to definitions.
type Registry struct {
	mu         sync.RWMutex
	frozen     atomic.Bool
	byName     map[string]*Definition
	byType     map[Type]*Definition
	order      []*Definition
	extensions map[string][]*Definition
}

// New returns a registry holding the built-in catalog. It is still open for
// LoadExtension.
func New() *Registry {
	r := newEmpty()
	for _, def := range builtins() {
		if _, err := r.register(def); err != nil {
			// The built-in catalog is static; a failure here is a programming
			// error in this package.
			panic(fmt.Sprintf("symdef: built-in catalog: %v", err))
		}
	}
	return r
}

func newEmpty() *Registry {
	return &Registry{
		byName:     make(map[string]*Definition),
		byType:     make(map[Type]*Definition),
		extensions: make(map[string][]*Definition),
	}
}

// Register adds a single definition. Registering a name again with an
// identical shape is a no-op that returns the existing definition.
func (r *Registry) Register(def Definition) (*Definition, error) {
	return r.register(def)
}

func (r *Registry) register(def Definition) (*Definition, error) {
	prepared, err := prepare(def)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Checked under the write lock so no write lands after Freeze.
	if r.frozen.Load() {
		return nil, ErrFrozen
	}
	if existing, ok := r.byName[prepared.Name]; ok {
		if existing.SameShape(prepared) {
			return existing, nil
		}
		return nil, &DuplicateError{Name: prepared.Name, Existing: existing.Extension, Incoming: prepared.Extension}
	}

	if prepared.Type != TypeUnknown {
		if _, taken := r.byType[prepared.Type]; taken {
			return nil, fmt.Errorf("type tag %s registered twice", prepared.Type)
		}
		r.byType[prepared.Type] = prepared
	}
	r.byName[prepared.Name] = prepared
	r.order = append(r.order, prepared)
	if prepared.Extension != "" {
		r.extensions[prepared.Extension] = append(r.extensions[prepared.Extension], prepared)
	}
	return prepared, nil
}

// LoadExtension registers every definition of the named extension. Each
// definition is tagged with the extension name and registered independently,
// so one conflict does not prevent the others from loading. All failures are
// returned joined.
func (r *Registry) LoadExtension(name string, defs ...Definition) error {
	if name == "" {
		return fmt.Errorf("extension has no name")
	}
	if r.frozen.Load() {
		return ErrFrozen
	}
	var errs []error
	for _, def := range defs {
		def.Extension = name
		def.Type = TypeUnknown
		if _, err := r.register(def); err != nil {
			if errors.Is(err, ErrFrozen) {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Freeze ends the loading phase. Afterwards the registry rejects registration
// and reads no longer lock.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen.Store(true)
	r.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

func (r *Registry) rlock() func() {
	if r.frozen.Load() {
		return func() {}
	}
	r.mu.RLock()
	return r.mu.RUnlock
}

// ByName looks up a definition by its table name.
func (r *Registry) ByName(name string) (*Definition, bool) {
	defer r.rlock()()
	def, ok := r.byName[name]
	return def, ok
}

// ByType returns the built-in definition for t. Every Type constant is part
// of the built-in catalog, so a miss is a programming error and panics.
func (r *Registry) ByType(t Type) *Definition {
	defer r.rlock()()
	def, ok := r.byType[t]
	if !ok {
		panic(fmt.Sprintf("symdef: no built-in definition for %s", t))
	}
	return def
}

// Definitions returns every definition in registration order.
func (r *Registry) Definitions() []*Definition {
	defer r.rlock()()
	return append([]*Definition(nil), r.order...)
}

// ByCategory returns the definitions of one category in registration order.
func (r *Registry) ByCategory(c Category) []*Definition {
	defer r.rlock()()
	var out []*Definition
	for _, def := range r.order {
		if def.Category == c {
			out = append(out, def)
		}
	}
	return out
}

// Extension returns the definitions contributed by the named extension.
func (r *Registry) Extension(name string) []*Definition {
	defer r.rlock()()
	return append([]*Definition(nil), r.extensions[name]...)
}

// Extensions returns the sorted names of all loaded extensions.
func (r *Registry) Extensions() []string {
	defer r.rlock()()
	names := make([]string, 0, len(r.extensions))
	for name := range r.extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
