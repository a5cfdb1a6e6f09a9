package graph

import (
	"errors"
	"fmt"

	"github.com/flowruntime/fbp/ferrors"
	"github.com/flowruntime/fbp/node"
	"github.com/flowruntime/fbp/port"
)

// InputSpec declares one of a graph's exposed input pins.
type InputSpec struct {
	ID       string
	Required port.Requiredness
}

// NewGraph builds and wires a Graph: it constructs a [GraphPort] splice for
// every declared input/output pin, resolves every connection to the
// concrete port.Output/port.Input pair it names, wires them, and validates
// that every child's Required input ended up either connected or carrying a
// Static default. Construction errors are accumulated and returned joined,
// mirroring the teacher's GraphBuilder.Build — a caller sees every problem
// in one pass rather than one-at-a-time.
//
// children must already be constructed (the Loader's job, not this
// package's); NewGraph only wires and supervises them.
func NewGraph(id string, children map[string]node.Node, connections []Connection, inputs []InputSpec, outputs []string, opts ...Option) (*Graph, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Graph{
		id:           id,
		children:     children,
		connections:  connections,
		graphInputs:  make(map[string]*GraphPort, len(inputs)),
		graphOutputs: make(map[string]*GraphPort, len(outputs)),
		stopLatch:    node.NewLatch(),
		stoppedLatch: node.NewLatch(),
	}

	for _, spec := range inputs {
		g.graphInputs[spec.ID] = NewInputGraphPort(spec.ID, cfg.portCapacity, spec.Required)
	}
	for _, id := range outputs {
		g.graphOutputs[id] = NewOutputGraphPort(id, cfg.portCapacity)
	}

	var buildErrors []error

	for _, conn := range connections {
		out, err := g.resolveOutput(conn.From)
		if err != nil {
			buildErrors = append(buildErrors, &ferrors.ConnectionError{From: conn.From.String(), To: conn.To.String(), Reason: err.Error()})
			continue
		}
		in, err := g.resolveInput(conn.To)
		if err != nil {
			buildErrors = append(buildErrors, &ferrors.ConnectionError{From: conn.From.String(), To: conn.To.String(), Reason: err.Error()})
			continue
		}
		out.Connect(in)
		in.IncRefCount()
	}

	if err := g.validate(); err != nil {
		buildErrors = append(buildErrors, err)
	}

	if len(buildErrors) > 0 {
		return nil, errors.Join(buildErrors...)
	}

	return g, nil
}

func (g *Graph) resolveOutput(e Endpoint) (*port.Output, error) {
	if e.InstanceID == "" {
		gp, ok := g.graphInputs[e.PinID]
		if !ok {
			return nil, fmt.Errorf("no graph input pin %q", e.PinID)
		}
		return gp.Internal().(*port.Output), nil
	}
	child, ok := g.children[e.InstanceID]
	if !ok {
		return nil, fmt.Errorf("no instance %q", e.InstanceID)
	}
	out, ok := child.Outputs()[e.PinID]
	if !ok {
		return nil, fmt.Errorf("instance %q has no output pin %q", e.InstanceID, e.PinID)
	}
	return out, nil
}

func (g *Graph) resolveInput(e Endpoint) (*port.Input, error) {
	if e.InstanceID == "" {
		gp, ok := g.graphOutputs[e.PinID]
		if !ok {
			return nil, fmt.Errorf("no graph output pin %q", e.PinID)
		}
		return gp.Internal().(*port.Input), nil
	}
	child, ok := g.children[e.InstanceID]
	if !ok {
		return nil, fmt.Errorf("no instance %q", e.InstanceID)
	}
	in, ok := child.Inputs()[e.PinID]
	if !ok {
		return nil, fmt.Errorf("instance %q has no input pin %q", e.InstanceID, e.PinID)
	}
	return in, nil
}

// validate checks that every child's Required input (and every connected
// RequiredIfConnected input) has at least one incoming connection. A Static
// input always satisfies this by construction — its value comes from
// configuration, not a connection — so it is never flagged here.
func (g *Graph) validate() error {
	var errs []error
	for instanceID, child := range g.children {
		for pinID, in := range child.Inputs() {
			switch in.Required() {
			case port.Required:
				if in.Mode() != port.Static && !in.Connected() {
					errs = append(errs, &ferrors.GraphValidationError{NodeID: instanceID, PinID: pinID, Reason: "required input has no connection and no static value"})
				}
			case port.RequiredIfConnected, port.Optional:
				// Never flagged: RequiredIfConnected degrades to Optional
				// when unconnected, by definition.
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
