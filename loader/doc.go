// Package loader parses a flow declaration file (YAML, per spec.md §6's
// "any well-defined structured format is acceptable"), resolves every
// instance's nodeId to a concrete constructor — a user-registered node
// class, a built-in macro, or a recursively-loaded nested flow — and hands
// the result to graph.NewGraph for wiring and validation.
//
// A [Loader] is configured with [Option]s before use: [WithSource]
// registers the constructors available under one import source name,
// mirroring spec.md's "each source ... to a list of exported names". Go has
// no dynamic-import equivalent of the original system's module loading, so
// this module's adaptation is a caller-supplied registry rather than a
// runtime code loader; see DESIGN.md for the resolved Open Question.
package loader
