package graph

import (
	"context"
	"errors"
	"sync"

	"github.com/flowruntime/fbp/node"
	"github.com/flowruntime/fbp/port"
)

// Graph is a composite Node: a fixed set of child nodes (leaf Components or
// nested Graphs) wired together by Connections and run and supervised as a
// unit. Build one with [NewGraph].
type Graph struct {
	id           string
	children     map[string]node.Node
	connections  []Connection
	graphInputs  map[string]*GraphPort
	graphOutputs map[string]*GraphPort

	stopLatch    *node.Latch
	stoppedLatch *node.Latch
}

func (g *Graph) ID() string      { return g.id }
func (g *Graph) Kind() node.Kind { return node.KindGraph }

// Inputs exposes this graph's declared input pins as ordinary port.Input
// values, so a parent graph can wire connections to a nested Graph exactly
// as it would to a Component.
func (g *Graph) Inputs() map[string]*port.Input {
	out := make(map[string]*port.Input, len(g.graphInputs))
	for id, gp := range g.graphInputs {
		out[id] = gp.External().(*port.Input)
	}
	return out
}

// Outputs exposes this graph's declared output pins as ordinary
// port.Output values.
func (g *Graph) Outputs() map[string]*port.Output {
	out := make(map[string]*port.Output, len(g.graphOutputs))
	for id, gp := range g.graphOutputs {
		out[id] = gp.External().(*port.Output)
	}
	return out
}

// Children returns the graph's direct child nodes keyed by instance id.
// Exposed for introspection and diagnostics; the runtime itself
// only needs this package's own internal bookkeeping.
func (g *Graph) Children() map[string]node.Node {
	return g.children
}

// allRunnable returns every node this graph must start, stop, and join on:
// its children plus its own graph-port splices.
func (g *Graph) allRunnable() []node.Node {
	out := make([]node.Node, 0, len(g.children)+len(g.graphInputs)+len(g.graphOutputs))
	for _, c := range g.children {
		out = append(out, c)
	}
	for _, gp := range g.graphInputs {
		out = append(out, gp)
	}
	for _, gp := range g.graphOutputs {
		out = append(out, gp)
	}
	return out
}

// Run starts every child and graph-port splice in its own goroutine and
// blocks until all of them have stopped, mirroring the teacher's
// WaitGroup-based fan-out/join — adapted here to a graph that runs
// continuously rather than one topological wave at a time.
func (g *Graph) Run(ctx context.Context) {
	defer g.stoppedLatch.Trigger()

	runnable := g.allRunnable()
	var wg sync.WaitGroup
	wg.Add(len(runnable))
	for _, n := range runnable {
		go func(n node.Node) {
			defer wg.Done()
			n.Run(ctx)
		}(n)
	}
	wg.Wait()
}

// Stop requests cooperative shutdown of every child and graph-port splice.
// It does not block; observe completion via Stopped.
func (g *Graph) Stop() {
	g.stopLatch.Trigger()
	for _, n := range g.allRunnable() {
		n.Stop()
	}
}

// Stopped returns a channel closed once Run has returned, i.e. once every
// child and graph-port splice has stopped.
func (g *Graph) Stopped() <-chan struct{} { return g.stoppedLatch.Done() }

// Shutdown calls Shutdown on every child (in map iteration order, which Go
// deliberately randomizes — matching spec.md's requirement that shutdown
// order across siblings is unspecified) and joins any resulting errors.
// Nested graphs recurse: a child Graph's own Shutdown call shuts down its
// own children the same way.
func (g *Graph) Shutdown(ctx context.Context) error {
	var errs []error
	for _, n := range g.allRunnable() {
		if err := n.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
