package loader

import (
	"github.com/flowruntime/fbp/graph"
	"github.com/flowruntime/fbp/macro"
)

// Option configures a Loader at construction time.
type Option func(*config)

type config struct {
	sources      *SourceRegistry
	macros       *macro.Registry
	graphOptions []graph.Option
}

func defaultConfig() config {
	return config{
		sources: NewSourceRegistry(),
		macros:  macro.Builtins(),
	}
}

// WithSource registers the node constructors exported under source, so that
// a flow declaration's `imports: {source: [names...]}` table can resolve
// them. Calling WithSource more than once for the same source merges the
// constructor sets.
func WithSource(source string, ctors map[string]Constructor) Option {
	return func(c *config) { c.sources.AddSource(source, ctors) }
}

// WithMacros overrides the registry used to resolve MACRO__ instances.
// Defaults to [macro.Builtins].
func WithMacros(r *macro.Registry) Option {
	return func(c *config) { c.macros = r }
}

// WithPortCapacity forwards a bounded-queue capacity to every graph.NewGraph
// call the Loader makes, overriding graph's own default.
func WithPortCapacity(n int) Option {
	return func(c *config) { c.graphOptions = append(c.graphOptions, graph.WithPortCapacity(n)) }
}
