package node

import "sync"

// Latch is a one-shot signal: it starts unset and can be set exactly once,
// after which Done's channel stays permanently closed. It backs both a
// node's stop request (set by Stop) and its stopped notification (set when
// the node's worker loop exits), matching the teacher's own boolean
// stopped-flag-plus-channel idiom but made race-free and reusable for both
// purposes.
type Latch struct {
	once sync.Once
	ch   chan struct{}
	mu   sync.Mutex
	set  bool
}

// NewLatch returns an unset Latch.
func NewLatch() *Latch {
	return &Latch{ch: make(chan struct{})}
}

// Trigger sets the latch. Safe to call more than once or concurrently;
// only the first call has any effect.
func (l *Latch) Trigger() {
	l.once.Do(func() {
		l.mu.Lock()
		l.set = true
		l.mu.Unlock()
		close(l.ch)
	})
}

// Done returns a channel that is closed once Trigger has been called.
func (l *Latch) Done() <-chan struct{} { return l.ch }

// IsSet reports whether Trigger has been called.
func (l *Latch) IsSet() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.set
}
