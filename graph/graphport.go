package graph

import (
	"context"

	"github.com/flowruntime/fbp/node"
	"github.com/flowruntime/fbp/port"
)

// Direction distinguishes a graph's input-side splice from its output-side
// splice.
type Direction int

const (
	// DirIn splices a graph input: an outer connection delivers into
	// External, and GraphPort forwards each value (and eventually
	// end-of-stream) to Internal, which the graph's own children connect
	// to as if it were an ordinary upstream output.
	DirIn Direction = iota
	// DirOut splices a graph output: the graph's own children connect
	// into Internal as if it were an ordinary downstream input, and
	// GraphPort forwards each value (and eventually end-of-stream) to
	// External, which outer connections read from.
	DirOut
)

// GraphPort is the third concrete Node shape: a single-input/single-output
// forwarder that lets a nested graph's own input or output pin participate
// in the parent graph's connections. It does no transformation of its own;
// its Run loop is a one-line relay, and its only job beyond that is to
// translate the pin's reference count correctly across the splice so
// end-of-stream still reaches every interior consumer exactly once.
type GraphPort struct {
	node.Base
	direction Direction
	recv      *port.Input
	send      *port.Output
}

// NewInputGraphPort creates the splice for a graph input pin named id.
// External is what outer connections feed; Internal is what the graph's
// own children read from, via ordinary Connect calls.
func NewInputGraphPort(id string, capacity int, required port.Requiredness) *GraphPort {
	external := port.NewQueueInput(id, required, capacity)
	internal := port.NewOutput(id, port.Ref)
	gp := &GraphPort{direction: DirIn, recv: external, send: internal}
	gp.Base = node.NewBase(id, nil, map[string]*port.Input{id: external}, map[string]*port.Output{id: internal})
	return gp
}

// NewOutputGraphPort creates the splice for a graph output pin named id.
// Internal is what the graph's own children feed, via ordinary Connect
// calls; External is what outer connections read from.
func NewOutputGraphPort(id string, capacity int) *GraphPort {
	internal := port.NewQueueInput(id, port.Required, capacity)
	external := port.NewOutput(id, port.Ref)
	gp := &GraphPort{direction: DirOut, recv: internal, send: external}
	gp.Base = node.NewBase(id, nil, map[string]*port.Input{id: internal}, map[string]*port.Output{id: external})
	return gp
}

func (gp *GraphPort) Kind() node.Kind { return node.KindGraphPort }

// External returns the port.Input (DirIn) or port.Output (DirOut) that
// outer connections attach to.
func (gp *GraphPort) External() any {
	if gp.direction == DirIn {
		return gp.recv
	}
	return gp.send
}

// Internal returns the port.Output (DirIn) or port.Input (DirOut) that the
// graph's own interior connections attach to.
func (gp *GraphPort) Internal() any {
	if gp.direction == DirIn {
		return gp.send
	}
	return gp.recv
}

// Run relays values (and end-of-stream) from recv to send until recv
// reports end-of-stream, Stop is requested, or ctx is canceled.
func (gp *GraphPort) Run(ctx context.Context) {
	defer func() {
		_ = gp.send.Close(ctx)
		gp.MarkStopped()
	}()
	for {
		v, isEOS, err := gp.recv.Get(ctx)
		if err != nil || isEOS {
			return
		}
		if err := gp.send.Send(ctx, v); err != nil {
			return
		}
		if gp.StopRequested() {
			return
		}
	}
}

// Shutdown is a no-op: a GraphPort holds no resources of its own.
func (gp *GraphPort) Shutdown(ctx context.Context) error { return nil }
