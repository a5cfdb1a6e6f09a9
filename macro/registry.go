package macro

import (
	"fmt"
	"sync"

	"github.com/flowruntime/fbp/node"
)

// Constructor builds one instance of a macro given its instance id,
// display name, and macroData (the instance's configuration block from the
// flow declaration, already decoded into plain Go values).
type Constructor func(id, displayName string, macroData map[string]any) (node.Node, error)

// Registry resolves a macro name to a [Constructor]. It is safe for
// concurrent use, though in practice registration happens once at startup
// before any Loader call.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds or replaces the constructor for name.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[name] = ctor
}

// Lookup returns the constructor registered for name, if any.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.constructors[name]
	return ctor, ok
}

// New instantiates the macro named name with the given instance id,
// display name, and macroData.
func (r *Registry) New(name, id, displayName string, macroData map[string]any) (node.Node, error) {
	ctor, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("macro: unknown macro %q", name)
	}
	return ctor(id, displayName, macroData)
}

// Builtins returns a Registry pre-populated with InlineValue, GetAttribute,
// and Conditional — the closed set of macros spec.md's built-in library
// defines.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register("InlineValue", NewInlineValue)
	r.Register("GetAttribute", NewGetAttribute)
	r.Register("Conditional", NewConditional)
	return r
}
