package port

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/flowruntime/fbp/value"
)

// Input is a node's receiving end of a connection. Its behavior is governed
// by Mode (Queue/Sticky/Static) and its Requiredness governs whether the
// owning component's pull-loop waits on it before every process call.
type Input struct {
	id       string
	mode     InputMode
	required Requiredness

	// rc counts upstream connections that have not yet delivered
	// end-of-stream. It starts at 0 and is incremented once per connection
	// at wiring time via IncRefCount; Get decrements it each time it
	// dequeues an EOS marker, and only reports end-of-stream to the caller
	// once rc reaches zero.
	rc atomic.Int64

	queue *boundedQueue // nil for Sticky and Static

	mu            sync.Mutex
	staticValue   value.Value // Static: the fixed value
	stickyDefault value.Value // Sticky: returned before the first item arrives
	stickyLatest  value.Value
	stickyPrimed  bool
}

// NewQueueInput creates a Queue-mode input backed by a bounded queue of the
// given capacity (rounded up to the next power of two, minimum 2).
func NewQueueInput(id string, required Requiredness, capacity int) *Input {
	return &Input{id: id, mode: Queue, required: required, queue: newBoundedQueue(capacity)}
}

// NewStickyInput creates a Sticky-mode input. def is returned by Get until
// the first item arrives on the underlying queue.
func NewStickyInput(id string, required Requiredness, capacity int, def value.Value) *Input {
	return &Input{id: id, mode: Sticky, required: required, queue: newBoundedQueue(capacity), stickyDefault: def}
}

// NewStaticInput creates a Static-mode input permanently holding v. Static
// inputs have no backing queue and cannot be connected.
func NewStaticInput(id string, v value.Value) *Input {
	return &Input{id: id, mode: Static, required: Optional, staticValue: v}
}

func (in *Input) ID() string              { return in.id }
func (in *Input) Mode() InputMode         { return in.mode }
func (in *Input) Required() Requiredness  { return in.required }
func (in *Input) RefCount() int64         { return in.rc.Load() }
func (in *Input) Connected() bool         { return in.rc.Load() > 0 }

// Len reports the number of items currently queued for this input,
// without consuming them. For Sticky it counts items not yet drained into
// the latch (see drainSticky); draining happens lazily on Get, so Len can
// be nonzero even while the latch already holds a primed value. Static has
// no backing queue and always reports 0.
func (in *Input) Len() int {
	if in.queue == nil {
		return 0
	}
	return in.queue.size()
}

// Empty reports whether Len() == 0, the scheduler-facing introspection a
// pull-loop can use to decide whether pulling from this input would block.
func (in *Input) Empty() bool {
	return in.Len() == 0
}

// IncRefCount registers one more upstream connection feeding this input.
// Called once per connection at graph wiring time, before the graph runs.
func (in *Input) IncRefCount() {
	if in.mode == Static {
		panic("port: cannot connect to a Static input")
	}
	in.rc.Add(1)
}

// Get returns the next value for this input. For Queue mode it blocks until
// a value arrives, an upstream connection closes (decrementing rc), or ctx
// is canceled; it reports end-of-stream (isEOS=true) only once every
// upstream connection has closed. For Sticky mode it never blocks: it
// drains whatever is currently queued to update the latched value, then
// returns the latch (or the configured default if nothing has arrived
// yet). For Static mode it always returns the configured value.
func (in *Input) Get(ctx context.Context) (v value.Value, isEOS bool, err error) {
	switch in.mode {
	case Static:
		return in.staticValue, false, nil

	case Sticky:
		in.drainSticky()
		in.mu.Lock()
		defer in.mu.Unlock()
		if !in.stickyPrimed {
			return in.stickyDefault, false, nil
		}
		return in.stickyLatest, false, nil

	case Queue:
		for {
			it, derr := in.queue.dequeue(ctx)
			if derr != nil {
				return value.Value{}, false, derr
			}
			if it.eos {
				remaining := in.rc.Add(-1)
				if remaining > 0 {
					continue
				}
				in.queue.drain()
				return value.Value{}, true, nil
			}
			return it.v.(value.Value), false, nil
		}

	default:
		return value.Value{}, false, fmt.Errorf("port: input %q has unknown mode %v", in.id, in.mode)
	}
}

// drainSticky non-blockingly consumes every item currently sitting on the
// queue and updates the latch to the most recent one. An EOS item decrements
// rc (so a sticky input's upstream closing is still observable via
// RefCount, even though Get itself never reports EOS for Sticky) and is
// otherwise ignored: a Sticky input that stops receiving updates keeps
// returning its last value forever, it never terminates its owner.
func (in *Input) drainSticky() {
	for {
		it, ok := in.queue.tryDequeue()
		if !ok {
			return
		}
		if it.eos {
			in.rc.Add(-1)
			continue
		}
		in.mu.Lock()
		in.stickyLatest = it.v.(value.Value)
		in.stickyPrimed = true
		in.mu.Unlock()
	}
}

// deliver enqueues v for this input, blocking under backpressure until
// capacity frees up or ctx is canceled. Only Output calls this.
func (in *Input) deliver(ctx context.Context, v value.Value) error {
	return in.queue.enqueue(ctx, item{v: v})
}

// deliverEOS enqueues one end-of-stream marker for this input. Only Output
// calls this, once per connection, when its owner closes.
func (in *Input) deliverEOS(ctx context.Context) error {
	return in.queue.enqueue(ctx, item{eos: true})
}
