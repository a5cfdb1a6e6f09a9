package node

import (
	"context"

	"github.com/flowruntime/fbp/port"
)

// Kind tags which of this module's concrete Node shapes an instance is.
type Kind int

const (
	KindComponent Kind = iota
	KindGraph
	KindGraphPort
)

func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindGraph:
		return "graph"
	case KindGraphPort:
		return "graph-port"
	default:
		return "unknown"
	}
}

// Node is the capability set every runnable unit of a flow implements,
// whether it is a leaf [Component] or a composite graph.Graph.
type Node interface {
	// ID is the instance identifier assigned when the node was
	// constructed, unique within its owning graph.
	ID() string
	// Kind reports which concrete shape this Node is.
	Kind() Kind
	// Inputs returns this node's input ports keyed by pin id.
	Inputs() map[string]*port.Input
	// Outputs returns this node's output ports keyed by pin id.
	Outputs() map[string]*port.Output
	// Run drives the node until it stops of its own accord, Stop is
	// called, or ctx is canceled. It blocks until the node is fully
	// stopped; callers that want non-blocking execution run it in its own
	// goroutine and observe completion via Stopped.
	Run(ctx context.Context)
	// Stop requests cooperative shutdown: the node finishes its current
	// iteration, closes its outputs, and exits. Stop does not block.
	Stop()
	// Stopped returns a channel closed once the node's Run call has fully
	// exited.
	Stopped() <-chan struct{}
	// Shutdown releases any resources the node's processor holds (for a
	// Component) or recurses into children (for a composite). It is
	// called once Stopped is closed, from the thread driving the overall
	// flow.
	Shutdown(ctx context.Context) error
}

// Base implements the bookkeeping shared by every Node: identity, ports,
// and the stop/stopped latch pair. Component and graph.GraphPort both embed
// it; graph.Graph keeps its own latches.
type Base struct {
	id          string
	inputs      map[string]*port.Input
	inputOrder  []string
	outputs     map[string]*port.Output
	stopLatch   *Latch
	stoppedLatch *Latch
}

// NewBase constructs a Base with the given id and ports. inputOrder fixes
// the order in which a Component's pull-loop polls its required inputs;
// callers should pass the declaration order of the node's input pins.
func NewBase(id string, inputOrder []string, inputs map[string]*port.Input, outputs map[string]*port.Output) Base {
	if inputs == nil {
		inputs = map[string]*port.Input{}
	}
	if outputs == nil {
		outputs = map[string]*port.Output{}
	}
	return Base{
		id:           id,
		inputs:       inputs,
		inputOrder:   inputOrder,
		outputs:      outputs,
		stopLatch:    NewLatch(),
		stoppedLatch: NewLatch(),
	}
}

func (b *Base) ID() string                         { return b.id }
func (b *Base) Inputs() map[string]*port.Input      { return b.inputs }
func (b *Base) Outputs() map[string]*port.Output    { return b.outputs }
func (b *Base) InputOrder() []string                { return b.inputOrder }
func (b *Base) Stop()                               { b.stopLatch.Trigger() }
func (b *Base) StopRequested() bool                 { return b.stopLatch.IsSet() }
func (b *Base) StopDone() <-chan struct{}           { return b.stopLatch.Done() }
func (b *Base) Stopped() <-chan struct{}            { return b.stoppedLatch.Done() }
func (b *Base) MarkStopped()                        { b.stoppedLatch.Trigger() }
