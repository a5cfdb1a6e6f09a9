// Package graph implements the composite node: a fixed set of child nodes
// (components or nested graphs) wired together by connections and
// supervised as a unit.
//
// Unlike the teacher's patterns/graph package, which computes dependency
// levels and executes one topological wave at a time (a one-shot DAG
// evaluator), a [Graph] here has no "level" concept: it is a
// continuously-running dataflow network where every child runs in its own
// goroutine for the network's entire lifetime, exactly as spec.md describes.
// What is reused from the teacher is the shape of construction — accumulate
// errors while wiring, validate, then produce an immutable runnable value —
// and the sync.WaitGroup-based fan-out/join used to start every child and
// wait for all of them to finish.
//
// [GraphPort] is the splice a nested sub-graph uses to expose one of its
// own inputs or outputs to the parent graph: it is itself a node.Node (a
// third concrete shape alongside Component and Graph) whose entire job is
// to forward values — and, eventually, end-of-stream — from one side to the
// other.
package graph
