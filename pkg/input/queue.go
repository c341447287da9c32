package input

// Deployment constants. Capacity counts ring slots (one of which stays
// reserved), the increment is extra headroom added on every grow.
const (
	DefaultCapacity        = 128
	DefaultGrowthIncrement = 10
)

// Options configure a queue at creation. Zero values select defaults.
type Options struct {
	// Capacity is the initial slot count of the ring. Zero or an
	// unrepresentable value falls back to DefaultCapacity.
	Capacity int
	// GrowthIncrement is the slot headroom added beyond the triggering
	// write whenever the ring grows.
	GrowthIncrement int
	// WaiterLimit bounds concurrently blocked readers; zero means
	// unlimited.
	WaiterLimit int
}

// Queue buffers input records between producers (window input, terminal
// protocol parsers) and console API readers, delivering them in write
// order except where coalescing merged them.
//
// The queue holds no lock of its own: every method requires the
// console-wide lock, which serializes the single writer path and all
// reader paths. Blocking never happens inside the queue; readers that
// find it empty register a wait and suspend outside the lock.
type Queue struct {
	ring *ringStore
	wait *waitCoordinator
}

// New creates a queue. It never fails; out-of-contract options fall
// back to defaults because queue creation is part of console startup.
func New(opts Options) *Queue {
	return &Queue{
		ring: newRingStore(opts.Capacity, opts.GrowthIncrement),
		wait: newWaitCoordinator(opts.WaiterLimit),
	}
}

// ReadOptions select the dequeue variant.
type ReadOptions struct {
	// Peek copies records out without retiring them.
	Peek bool
	// Stream returns one logical key occurrence at a time, expanding
	// compacted repeat runs. Requires len(dst) == 1 and implies a
	// consuming read.
	Stream bool
	// Narrow budgets the read by display-cell units instead of record
	// count: len(dst) is the unit budget, and a full-width key record
	// costs two units.
	Narrow bool
}

// Write appends events, coalescing a single submitted event into the
// most recent resident record when the merge rules allow. The returned
// count may be short of len(events) when the ring could not grow but
// space remained; an error is returned only when nothing was written.
func (q *Queue) Write(events []InputRecord) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	if len(events) == 1 && !q.ring.empty() && q.ring.tryCoalesce(&events[0]) {
		metricEventsCoalesced.Inc()
		return 1, nil
	}
	written, becameNonEmpty, err := q.ring.write(events)
	if written > 0 {
		metricEventsWritten.Add(float64(written))
		if written < len(events) {
			metricShortWrites.Inc()
		}
	}
	if becameNonEmpty {
		q.wait.assert()
	}
	return written, err
}

// Prepend pushes events in front of everything currently resident, used
// to re-inject records after a failed or partial downstream hand-off.
// The ring has no insert-at-head primitive, so the resident records are
// drained, the new events written, and the drained records written
// back. O(n), acceptable because prepends are rare relative to appends.
func (q *Queue) Prepend(events []InputRecord) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	var drained []InputRecord
	if n := q.ring.resident(); n > 0 {
		if err := checkedBufferBytes(n); err != nil {
			return 0, err
		}
		drained = q.ring.alloc(n)
		if drained == nil {
			return 0, ErrOutOfMemory
		}
		q.ring.read(drained, false)
	}
	written, becameNonEmpty, err := q.ring.write(events)
	if written > 0 {
		metricEventsWritten.Add(float64(written))
	}
	if drained != nil {
		// Re-appending the drained records cannot shrink below the
		// space they just vacated; any grow shortfall here drops the
		// tail the same way an overfull write would.
		q.ring.write(drained)
	}
	if becameNonEmpty {
		q.wait.assert()
	}
	return written, err
}

// Read copies up to len(dst) records out of the queue. When the queue
// is empty it returns 0 with no error; blocking is the caller's
// protocol (RegisterWait, suspend, retry), not the queue's.
func (q *Queue) Read(dst []InputRecord, opts ReadOptions) (int, error) {
	if len(dst) == 0 || (opts.Stream && len(dst) != 1) {
		return 0, ErrInvalidArgument
	}
	if q.ring.empty() {
		return 0, nil
	}

	var n int
	var becameEmpty bool
	switch {
	case opts.Stream && q.ring.buf[q.ring.out].Type == KeyEvent:
		becameEmpty = q.ring.readStream(&dst[0])
		n = 1
	case opts.Stream:
		// Non-key head: a stream read degenerates to a normal
		// single-record consuming read.
		n, becameEmpty = q.ring.read(dst[:1], false)
	case opts.Narrow:
		n, becameEmpty = q.ring.readNarrow(dst, opts.Peek)
	default:
		n, becameEmpty = q.ring.read(dst, opts.Peek)
	}

	if becameEmpty {
		q.wait.deassert()
	}
	if !opts.Peek {
		metricEventsRead.Add(float64(n))
	}
	return n, nil
}

// FlushAll discards everything resident and deasserts the non-empty
// signal, returning the queue to its initial state.
func (q *Queue) FlushAll() {
	q.ring.reset()
	q.wait.deassert()
}

// FlushAllButKeys drains the queue through the consuming read path and
// rewrites only the key records, preserving their relative order.
func (q *Queue) FlushAllButKeys() error {
	if q.ring.empty() {
		return nil
	}
	if err := checkedBufferBytes(q.ring.capacity()); err != nil {
		return err
	}
	scratch := q.ring.alloc(q.ring.capacity())
	if scratch == nil {
		return ErrOutOfMemory
	}
	n, _ := q.ring.read(scratch, false)
	q.ring.reset()

	// Rewrite key records from the start, stopping one slot short of
	// the usable capacity so the write cursor always lands on a free
	// slot.
	limit := q.ring.capacity() - 2
	kept := 0
	for i := 0; i < n; i++ {
		if kept >= limit {
			break
		}
		if scratch[i].Type == KeyEvent {
			q.ring.buf[kept] = scratch[i]
			kept++
		}
	}
	q.ring.in = kept
	if q.ring.empty() {
		q.wait.deassert()
	}
	return nil
}

// Resize grows the queue to newCapacity slots. Shrinking is not
// supported; a capacity not exceeding the current one is rejected.
func (q *Queue) Resize(newCapacity int) error {
	if newCapacity <= q.ring.capacity() {
		return ErrInvalidArgument
	}
	if err := q.ring.grow(newCapacity); err != nil {
		return err
	}
	if !q.ring.empty() {
		// Growth migrated pending content into a fresh array; assert
		// the signal for any wait primitive watching it.
		q.wait.assert()
	}
	return nil
}

// Len returns the number of resident records.
func (q *Queue) Len() int {
	return q.ring.resident()
}

// Capacity returns the current slot count of the ring.
func (q *Queue) Capacity() int {
	return q.ring.capacity()
}

// RegisterWait records the caller as a blocked reader. Invoked under
// the console lock after a read found the queue empty and the caller
// wants to block. The returned handle is waited on outside the lock and
// must be passed to CompleteWait exactly once afterwards.
func (q *Queue) RegisterWait() (*WaitHandle, error) {
	return q.wait.register()
}

// CompleteWait balances RegisterWait, whether the reader was woken,
// cancelled, or failed. Must be called under the console lock.
func (q *Queue) CompleteWait(h *WaitHandle) {
	q.wait.complete(h)
}

// BlockedReaders returns the number of currently registered waiters.
func (q *Queue) BlockedReaders() int {
	return q.wait.blocked
}

// NonEmptySignal exposes the binary non-empty signal for external wait
// primitives riding alongside the queue. The returned channel is closed
// while the queue is non-empty and replaced when it drains.
func (q *Queue) NonEmptySignal() <-chan struct{} {
	return q.wait.signal()
}
