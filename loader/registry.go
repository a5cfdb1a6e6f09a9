package loader

import "github.com/flowruntime/fbp/node"

// Constructor builds one instance of a registered node class, given its
// instance id, display name, and inputConfig (the instance's static
// configuration block from the flow declaration).
type Constructor func(id, displayName string, inputConfig map[string]any) (node.Node, error)

// SourceRegistry is the Go-native stand-in for spec.md's dynamic module
// imports: an embedding application registers every node class a flow file
// is allowed to import, grouped under the source name the flow file's
// `imports` table names. Go has no runtime equivalent of loading an
// arbitrary module by string name, so this module resolves "import X from
// source Y" against a registry supplied at Loader-construction time instead
// of loading code dynamically — see DESIGN.md for this Open-Question
// resolution.
type SourceRegistry struct {
	sources map[string]map[string]Constructor
}

// NewSourceRegistry returns an empty SourceRegistry.
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{sources: make(map[string]map[string]Constructor)}
}

// AddSource registers the constructors exported under source. Calling it
// again for the same source merges in the new names.
func (r *SourceRegistry) AddSource(source string, ctors map[string]Constructor) {
	existing, ok := r.sources[source]
	if !ok {
		existing = make(map[string]Constructor, len(ctors))
		r.sources[source] = existing
	}
	for name, ctor := range ctors {
		existing[name] = ctor
	}
}

// Resolve looks up the constructor exported as name under source.
func (r *SourceRegistry) Resolve(source, name string) (Constructor, bool) {
	names, ok := r.sources[source]
	if !ok {
		return nil, false
	}
	ctor, ok := names[name]
	return ctor, ok
}
