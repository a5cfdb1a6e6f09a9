package port

import (
	"context"
	"sync/atomic"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// item is what travels over a QUEUE-mode input's internal queue: either a
// value or the end-of-stream marker, never both. The payload is boxed as
// `any` so this package does not need to import value just to move bytes;
// input.go/output.go do the type assertion back to value.Value.
type item struct {
	eos bool
	v   any
}

// boundedQueue wraps an lfq MPSC queue with the blocking get/send semantics
// an Input requires, using code.hybscloud.com/iox's Backoff helper — the
// idiom lfq's own documentation prescribes for turning its non-blocking
// Enqueue/Dequeue into a blocking call, instead of a hand-rolled spin loop.
type boundedQueue struct {
	q *lfq.MPSC[item]

	// length tracks the current item count. lfq's MPSC exposes no size
	// query of its own (only Enqueue/Dequeue/Cap), so the scheduler's
	// empty()/count() introspection is maintained here alongside every
	// successful enqueue/dequeue.
	length atomic.Int64
}

func newBoundedQueue(capacity int) *boundedQueue {
	if capacity < 2 {
		capacity = 2
	}
	return &boundedQueue{q: lfq.NewMPSC[item](capacity)}
}

// enqueue blocks until it or ctx's cancellation. Producers are many (every
// incoming connection), matching the MPSC queue's contract.
func (bq *boundedQueue) enqueue(ctx context.Context, it item) error {
	backoff := iox.Backoff{}
	for {
		err := bq.q.Enqueue(&it)
		if err == nil {
			bq.length.Add(1)
			return nil
		}
		if !lfq.IsWouldBlock(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		backoff.Wait()
	}
}

// dequeue blocks until an item or ctx's cancellation. The consumer is
// always the single owning Input, matching the MPSC queue's contract.
func (bq *boundedQueue) dequeue(ctx context.Context) (item, error) {
	backoff := iox.Backoff{}
	for {
		it, err := bq.q.Dequeue()
		if err == nil {
			bq.length.Add(-1)
			return it, nil
		}
		if !lfq.IsWouldBlock(err) {
			return item{}, err
		}
		select {
		case <-ctx.Done():
			return item{}, ctx.Err()
		default:
		}
		backoff.Wait()
	}
}

// tryDequeue returns immediately: ok is false if the queue is currently
// empty. Used by STICKY inputs, which must never block.
func (bq *boundedQueue) tryDequeue() (it item, ok bool) {
	it, err := bq.q.Dequeue()
	if err != nil {
		return item{}, false
	}
	bq.length.Add(-1)
	return it, true
}

// size returns the number of items currently enqueued.
func (bq *boundedQueue) size() int {
	return int(bq.length.Load())
}

// drain marks the queue as no longer accepting enqueues, the hint lfq's
// MPSC exposes for graceful shutdown. Called once an input's reference
// count reaches zero, after which no producer will enqueue again.
func (bq *boundedQueue) drain() {
	bq.q.Drain()
}
