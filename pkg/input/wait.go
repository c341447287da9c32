package input

import (
	"context"
	"sync"
)

// waitCoordinator tracks how many readers are blocked on an empty queue
// and owns the binary non-empty signal. The blocked count is mutated
// only under the console lock. The signal is also mutated under the
// lock, but it is observed by wait primitives outside the lock's
// protection window, hence the idempotent set/reset gate (a counting
// design would double-release when one write wakes several readers).
type waitCoordinator struct {
	blocked int
	limit   int // 0 means unlimited

	mu   sync.Mutex // guards the gate swap for out-of-lock observers
	gate chan struct{}
	set  bool
}

func newWaitCoordinator(limit int) *waitCoordinator {
	return &waitCoordinator{limit: limit, gate: make(chan struct{})}
}

// assert marks the queue non-empty, waking every blocked reader.
func (w *waitCoordinator) assert() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.set {
		w.set = true
		close(w.gate)
	}
}

// deassert marks the queue empty again.
func (w *waitCoordinator) deassert() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.set {
		w.set = false
		w.gate = make(chan struct{})
	}
}

// signal returns the channel backing the current signal state. The
// channel is closed while the signal is asserted and replaced when it
// is reset, so a snapshot taken while the queue is empty becomes ready
// on the next write.
func (w *waitCoordinator) signal() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gate
}

// WaitHandle represents one blocked-reader registration. It is created
// under the console lock, waited on outside it, and must be completed
// under the lock exactly once, whether the reader was woken, cancelled,
// or failed.
type WaitHandle struct {
	ready <-chan struct{}
	done  bool
}

// register records a blocked reader and captures the signal to wait on.
// A failed registration leaves the blocked count untouched.
func (w *waitCoordinator) register() (*WaitHandle, error) {
	if w.limit > 0 && w.blocked >= w.limit {
		return nil, ErrTooManyWaiters
	}
	w.blocked++
	metricBlockedReaders.Inc()
	return &WaitHandle{ready: w.signal()}, nil
}

// complete balances a successful register call. Safe to call more than
// once; only the first call decrements.
func (w *waitCoordinator) complete(h *WaitHandle) {
	if h == nil || h.done {
		return
	}
	h.done = true
	w.blocked--
	metricBlockedReaders.Dec()
}

// Ready exposes the captured signal for callers integrating with their
// own select loops.
func (h *WaitHandle) Ready() <-chan struct{} {
	return h.ready
}

// Wait suspends until data arrives or ctx is cancelled. The caller must
// not hold the console lock; it reacquires the lock afterwards and
// completes the registration before retrying or bailing out.
func (h *WaitHandle) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-h.ready:
		return nil
	}
}
