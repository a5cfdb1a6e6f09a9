// Package node defines the single capability set every runnable unit of a
// flow implements — identity, ports, run, stop, stopped, shutdown — plus
// the concrete variants built on it in this module: [Component], a leaf
// node driven by a user-supplied [Processor], and graph.Graph (a composite
// node) with its graph.GraphPort splice, both defined in the sibling graph
// package to avoid an import cycle.
//
// This mirrors spec.md's design note that the runtime has no inheritance
// hierarchy of node classes, only a capability set implemented by a small,
// closed number of concrete shapes.
package node
