package port

import (
	"context"
	"fmt"
	"sync"

	"github.com/flowruntime/fbp/value"
)

// Output is a node's sending end of zero or more connections. Mode governs
// how a sent value fans out across the connected inputs.
type Output struct {
	id   string
	mode OutputMode

	mu        sync.Mutex
	consumers []*Input
	cursor    int
	closed    bool
}

// NewOutput creates an output in the given fan-out mode.
func NewOutput(id string, mode OutputMode) *Output {
	return &Output{id: id, mode: mode}
}

func (o *Output) ID() string       { return o.id }
func (o *Output) Mode() OutputMode { return o.mode }

// Connect adds in as one more consumer of this output. Connect and Send both
// hold the output's lock, so a consumer may be connected while the owning
// node runs; it receives only values sent after it was connected.
func (o *Output) Connect(in *Input) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.consumers = append(o.consumers, in)
}

// Consumers returns the number of inputs currently connected.
func (o *Output) Consumers() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.consumers)
}

// Send fans v out to the connected inputs according to Mode. Ref delivers
// the identical value to every consumer; Value delivers an independent
// [value.Value.Clone] to each; Circle delivers to exactly one consumer,
// chosen round-robin. Sending on an output with no consumers, or after
// Close, is a silent no-op — spec.md treats an unconnected output as a
// deliberate sink, not an error.
func (o *Output) Send(ctx context.Context, v value.Value) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	consumers := o.consumers
	mode := o.mode
	var circleIdx int
	if mode == Circle && len(consumers) > 0 {
		circleIdx = o.cursor % len(consumers)
		o.cursor++
	}
	o.mu.Unlock()

	if len(consumers) == 0 {
		return nil
	}

	switch mode {
	case Ref:
		for _, c := range consumers {
			if err := c.deliver(ctx, v); err != nil {
				return err
			}
		}
		return nil
	case Value:
		for _, c := range consumers {
			if err := c.deliver(ctx, v.Clone()); err != nil {
				return err
			}
		}
		return nil
	case Circle:
		return consumers[circleIdx].deliver(ctx, v)
	default:
		return fmt.Errorf("port: output %q has unknown mode %v", o.id, o.mode)
	}
}

// Close broadcasts end-of-stream to every connected input exactly once,
// regardless of Mode — EOS is always delivered ref-style, to all consumers,
// not fanned out according to the value fan-out mode. Close is idempotent:
// calling it more than once is a no-op.
func (o *Output) Close(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	consumers := o.consumers
	o.mu.Unlock()

	for _, c := range consumers {
		if err := c.deliverEOS(ctx); err != nil {
			return err
		}
	}
	return nil
}
