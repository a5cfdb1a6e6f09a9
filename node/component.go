package node

import (
	"context"
	"fmt"

	"github.com/flowruntime/fbp/ferrors"
	"github.com/flowruntime/fbp/observe"
	"github.com/flowruntime/fbp/port"
	"github.com/flowruntime/fbp/value"
)

// ProcessInput carries one iteration's pulled and sampled input values plus
// the node's static configuration, as handed to a [Processor].
type ProcessInput struct {
	// Args holds one entry per input pin that was read this iteration:
	// every Required (or connected RequiredIfConnected) pin is always
	// present; Sticky and Static pins are included whenever they were
	// listed in NewComponent's sampled argument.
	Args map[string]value.Value
	// Config is the node instance's static configuration, as given at
	// construction (e.g. from a flow declaration's inputConfig).
	Config map[string]any
}

// ProcessOutput is what a [Processor] returns from one call to Process. Use
// [Single] when the node has exactly one output pin, [ByPin] when it has
// more than one, or [Nothing] to emit no value this iteration. Set Done on
// the returned value (or use [SingleDone]) to signal this was the node's
// last iteration: its outputs are closed immediately after dispatch instead
// of waiting for another pull.
type ProcessOutput struct {
	single   *value.Value
	byPin    map[string]value.Value
	hasValue bool
	Done     bool
}

// Single returns a ProcessOutput carrying one value, delivered to the
// node's sole output pin.
func Single(v value.Value) *ProcessOutput {
	return &ProcessOutput{single: &v, hasValue: true}
}

// SingleDone is Single, with Done set: the component stops after this
// iteration. Used by macros like InlineValue that emit exactly one value.
func SingleDone(v value.Value) *ProcessOutput {
	return &ProcessOutput{single: &v, hasValue: true, Done: true}
}

// ByPin returns a ProcessOutput that routes each entry to the output pin
// named by its key.
func ByPin(values map[string]value.Value) *ProcessOutput {
	return &ProcessOutput{byPin: values, hasValue: true}
}

// Nothing returns a ProcessOutput that sends no value this iteration.
func Nothing() *ProcessOutput {
	return &ProcessOutput{}
}

// Processor is the user-supplied callable driving a [Component]. It reads
// ProcessInput.Args for the values pulled this iteration and returns what to
// send downstream.
type Processor interface {
	Process(ctx context.Context, in *ProcessInput) (*ProcessOutput, error)
}

// ProcessorFunc adapts a plain function to [Processor].
type ProcessorFunc func(ctx context.Context, in *ProcessInput) (*ProcessOutput, error)

func (f ProcessorFunc) Process(ctx context.Context, in *ProcessInput) (*ProcessOutput, error) {
	return f(ctx, in)
}

// Component is a leaf node: a pull-loop around a [Processor]. Each Run call
// is one goroutine's worth of work, implementing spec.md's component
// pull-loop algorithm: pull every required input, sample sticky/static
// inputs, invoke the processor, forward its result, and repeat until
// end-of-stream arrives on a required input, the processor signals Done, a
// Stop is requested, or the processor errors.
type Component struct {
	Base
	displayName string
	config      map[string]any
	processor   Processor
	// sampled lists input pin ids (Sticky or Static, typically) that are
	// read every iteration in addition to the required set, even though
	// the pull-loop never blocks on them.
	sampled []string

	lastErr error
}

// NewComponent constructs a Component. inputOrder fixes polling order for
// required inputs; sampled lists the non-required pins (Sticky/Static)
// this processor wants included in ProcessInput.Args every iteration.
func NewComponent(id, displayName string, inputOrder []string, inputs map[string]*port.Input, outputs map[string]*port.Output, config map[string]any, sampled []string, processor Processor) *Component {
	return &Component{
		Base:        NewBase(id, inputOrder, inputs, outputs),
		displayName: displayName,
		config:      config,
		processor:   processor,
		sampled:     sampled,
	}
}

func (c *Component) DisplayName() string { return c.displayName }
func (c *Component) Kind() Kind          { return KindComponent }
func (c *Component) Config() map[string]any { return c.config }

// LastError returns the error that ended the most recent Run call via a
// processor failure, or nil if the last run ended cleanly (end-of-stream,
// Stop, or processor-signaled completion).
func (c *Component) LastError() error { return c.lastErr }

// requiredPins returns the input ids the pull-loop must wait on before
// every process call: every Required input, plus every RequiredIfConnected
// input that has at least one incoming connection.
func (c *Component) requiredPins() []string {
	var out []string
	for _, id := range c.InputOrder() {
		in := c.Inputs()[id]
		switch in.Required() {
		case port.Required:
			out = append(out, id)
		case port.RequiredIfConnected:
			if in.Connected() {
				out = append(out, id)
			}
		}
	}
	return out
}

// Run implements the pull-loop. It always returns once the node has
// stopped: on a clean exit Stopped() is already closed by the time Run
// returns.
func (c *Component) Run(ctx context.Context) {
	defer c.finish(ctx)

	required := c.requiredPins()
	logger := observe.LoggerFromContext(ctx)

	for {
		args := make(map[string]value.Value, len(required)+len(c.sampled))

		eosHit := false
		for _, id := range required {
			v, isEOS, err := c.Inputs()[id].Get(ctx)
			if err != nil {
				// Context cancellation during a blocking Get is treated as
				// a forceful terminate, not a worker error: just stop.
				return
			}
			if isEOS {
				eosHit = true
				break
			}
			args[id] = v
		}
		if eosHit {
			return
		}

		for _, id := range c.sampled {
			in, ok := c.Inputs()[id]
			if !ok {
				continue
			}
			v, _, err := in.Get(ctx)
			if err == nil {
				args[id] = v
			}
		}

		result, err := c.processor.Process(ctx, &ProcessInput{Args: args, Config: c.config})
		if err != nil {
			c.lastErr = err
			logger.Error(ctx, "component worker failed", observe.String("node", c.ID()), observe.Err(&ferrors.WorkerError{NodeID: c.ID(), Err: err}))
			return
		}
		if result == nil {
			result = Nothing()
		}

		if err := c.dispatch(ctx, result); err != nil {
			logger.Warn(ctx, "component delivery failed", observe.String("node", c.ID()), observe.Err(err))
		}

		if result.Done || c.StopRequested() {
			return
		}
	}
}

// dispatch forwards a ProcessOutput to the component's outputs: a Single
// value goes to the node's sole output (dispatch returns an error, and sends
// nothing, when the node does not have exactly one output), and a ByPin
// map routes each entry to the output pin named by its key.
func (c *Component) dispatch(ctx context.Context, result *ProcessOutput) error {
	if !result.hasValue {
		return nil
	}
	if result.single != nil {
		outs := c.Outputs()
		if len(outs) != 1 {
			return fmt.Errorf("component %q: Single result requires exactly one output pin, has %d", c.ID(), len(outs))
		}
		for _, out := range outs {
			return out.Send(ctx, *result.single)
		}
	}
	for pin, v := range result.byPin {
		out, ok := c.Outputs()[pin]
		if !ok {
			return &ferrors.DeliveryError{NodeID: c.ID(), PinID: pin, Err: fmt.Errorf("no such output pin")}
		}
		if err := out.Send(ctx, v); err != nil {
			return &ferrors.DeliveryError{NodeID: c.ID(), PinID: pin, Err: err}
		}
	}
	return nil
}

func (c *Component) finish(ctx context.Context) {
	for _, out := range c.Outputs() {
		_ = out.Close(ctx)
	}
	c.MarkStopped()
}

// Shutdown calls Shutdown on the processor if it implements
// io.Closer-style cleanup via [Shutdownable]; otherwise it is a no-op.
func (c *Component) Shutdown(ctx context.Context) error {
	if s, ok := c.processor.(Shutdownable); ok {
		return s.Shutdown(ctx)
	}
	return nil
}

// Shutdownable is implemented by a Processor that holds resources (file
// handles, network connections) needing explicit release once its owning
// Component has stopped.
type Shutdownable interface {
	Shutdown(ctx context.Context) error
}
