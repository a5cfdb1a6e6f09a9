package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flowruntime/fbp/node"
	"github.com/flowruntime/fbp/port"
	"github.com/flowruntime/fbp/value"
)

func passthroughComponent(id string) *node.Component {
	in := port.NewQueueInput("in", port.Required, 8)
	out := port.NewOutput("out", port.Ref)
	return node.NewComponent(id, id, []string{"in"},
		map[string]*port.Input{"in": in},
		map[string]*port.Output{"out": out},
		nil, nil,
		node.ProcessorFunc(func(ctx context.Context, in *node.ProcessInput) (*node.ProcessOutput, error) {
			return node.Single(in.Args["in"]), nil
		}))
}

func TestSingleLinkPropagatesValueAndEOS(t *testing.T) {
	a := passthroughComponent("a")
	b := passthroughComponent("b")

	children := map[string]node.Node{"a": a, "b": b}
	connections := []Connection{
		{From: Endpoint{InstanceID: "a", PinID: "out"}, To: Endpoint{InstanceID: "b", PinID: "in"}},
	}
	inputs := []InputSpec{{ID: "gin", Required: port.Required}}
	outputs := []string{"gout"}
	connections = append(connections,
		Connection{From: Endpoint{PinID: "gin"}, To: Endpoint{InstanceID: "a", PinID: "in"}},
		Connection{From: Endpoint{InstanceID: "b", PinID: "out"}, To: Endpoint{PinID: "gout"}},
	)

	g, err := NewGraph("g", children, connections, inputs, outputs)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()

	gin := g.Inputs()["gin"]
	gout := g.Outputs()["gout"]
	downstream := port.NewQueueInput("downstream", port.Required, 8)
	gout.Connect(downstream)
	downstream.IncRefCount()

	feeder := port.NewOutput("feeder", port.Ref)
	feeder.Connect(gin)
	gin.IncRefCount()

	if err := feeder.Send(ctx, value.Number(7)); err != nil {
		t.Fatal(err)
	}
	v, isEOS, err := downstream.Get(ctx)
	if err != nil || isEOS {
		t.Fatalf("expected a propagated value, got isEOS=%v err=%v", isEOS, err)
	}
	if n, _ := v.Number(); n != 7 {
		t.Fatalf("got %v, want 7", n)
	}

	if err := feeder.Close(ctx); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("graph never stopped after its sole feed closed")
	}

	_, isEOS, err = downstream.Get(ctx)
	if err != nil || !isEOS {
		t.Fatalf("expected EOS to reach the graph's external output, got isEOS=%v err=%v", isEOS, err)
	}
}

func TestValidationCatchesUnconnectedRequiredInput(t *testing.T) {
	a := passthroughComponent("a")
	children := map[string]node.Node{"a": a}

	_, err := NewGraph("g", children, nil, nil, nil)
	if err == nil {
		t.Fatal("expected a validation error for a's unconnected required input")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a GraphValidationError in the chain, got %v", err)
	}
}

func TestStopCascadesToChildren(t *testing.T) {
	// A zero-input ticker never blocks in Get, so Stop's cooperative
	// cancellation is observable at the next iteration boundary without
	// needing a forceful Terminate.
	out := port.NewOutput("out", port.Ref)
	ticker := node.NewComponent("ticker", "ticker", nil, nil,
		map[string]*port.Output{"out": out}, nil, nil,
		node.ProcessorFunc(func(ctx context.Context, in *node.ProcessInput) (*node.ProcessOutput, error) {
			return node.Single(value.Number(1)), nil
		}))

	children := map[string]node.Node{"a": ticker}
	outputs := []string{"gout"}
	connections := []Connection{
		{From: Endpoint{InstanceID: "a", PinID: "out"}, To: Endpoint{PinID: "gout"}},
	}

	g, err := NewGraph("g", children, connections, nil, outputs)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()

	// Keep gout drained throughout so the ticker never blocks on
	// backpressure instead of observing Stop at an iteration boundary.
	downstream := port.NewQueueInput("downstream", port.Required, 8)
	g.Outputs()["gout"].Connect(downstream)
	downstream.IncRefCount()
	drainDone := make(chan struct{})
	go func() {
		defer close(drainDone)
		for {
			_, isEOS, err := downstream.Get(ctx)
			if err != nil || isEOS {
				return
			}
		}
	}()

	time.Sleep(5 * time.Millisecond)
	g.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("graph never stopped after Stop")
	}
	<-drainDone
}
