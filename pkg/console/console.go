// Package console owns the console-wide lock and exposes the input
// queue operations to writer, reader, and administrative collaborators.
//
// The input queue itself performs no locking; a single coarse mutex
// here serializes the writer path and every reader path, which is what
// the queue's ordering guarantees rest on. Blocked readers release the
// lock before suspending and reacquire it before retrying.
package console

import (
	"context"
	"sync"

	"github.com/odvcencio/conhost/pkg/input"
	"github.com/odvcencio/conhost/pkg/logging"
)

// Console aggregates the console-wide state guarded by one lock. Only
// the input queue lives here; the output side is a separate subsystem.
type Console struct {
	mu    sync.Mutex
	input *input.Queue
	log   *logging.Logger // nil disables logging
}

// New wraps an input queue. log may be nil.
func New(q *input.Queue, log *logging.Logger) *Console {
	return &Console{input: q, log: log}
}

// WriteInput appends events to the queue, waking any blocked readers.
// Returns the number of events stored, which may be short of
// len(events) when the queue could not grow.
func (c *Console) WriteInput(events []input.InputRecord) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := c.input.Write(events)
	if err != nil && c.log != nil {
		c.log.Error(logging.CategoryInput, "write_failed", err.Error(), map[string]any{
			"submitted": len(events),
		})
	}
	return n, err
}

// PrependInput pushes events in front of everything resident, used to
// re-inject records after a failed downstream hand-off.
func (c *Console) PrependInput(events []input.InputRecord) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.Prepend(events)
}

// ReadInput copies up to len(dst) records out of the queue. With
// blocking set, an empty queue registers the caller as a blocked
// reader, suspends outside the lock until a write arrives or ctx is
// cancelled, then retries. Multiple blocked readers are all woken by a
// single write and race for the records under the lock; losers block
// again.
func (c *Console) ReadInput(ctx context.Context, dst []input.InputRecord, opts input.ReadOptions, blocking bool) (int, error) {
	c.mu.Lock()
	for {
		n, err := c.input.Read(dst, opts)
		if err != nil || n > 0 || !blocking {
			c.mu.Unlock()
			return n, err
		}

		h, err := c.input.RegisterWait()
		if err != nil {
			c.mu.Unlock()
			return 0, err
		}
		c.mu.Unlock()

		waitErr := h.Wait(ctx)

		c.mu.Lock()
		// Balance the registration exactly once, woken or cancelled.
		c.input.CompleteWait(h)
		if waitErr != nil {
			c.mu.Unlock()
			return 0, waitErr
		}
	}
}

// FlushInput discards every resident record.
func (c *Console) FlushInput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input.FlushAll()
}

// FlushInputButKeys discards everything except key records.
func (c *Console) FlushInputButKeys() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.FlushAllButKeys()
}

// ResizeInput grows the input queue to newCapacity slots.
func (c *Console) ResizeInput(newCapacity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.input.Resize(newCapacity)
	if c.log != nil {
		if err != nil {
			c.log.Warn(logging.CategoryLifecycle, "input_resize_rejected", err.Error(), map[string]any{
				"requested": newCapacity,
			})
		} else {
			c.log.Info(logging.CategoryLifecycle, "input_resized", "", map[string]any{
				"capacity": newCapacity,
			})
		}
	}
	return err
}

// InputLen returns the number of resident input records.
func (c *Console) InputLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.Len()
}
