// Package sim provides a scripted input source for tests. Records
// posted to the source come back out of Poll in order; Interrupt or
// Close ends the stream.
package sim

import (
	"sync"

	"github.com/odvcencio/conhost/pkg/input"
)

// Source is a scripted backend source.
type Source struct {
	mu      sync.Mutex
	pending chan []input.InputRecord
	closed  chan struct{}
	once    sync.Once
}

// New creates a scripted source able to hold up to 64 posted batches.
func New() *Source {
	return &Source{
		pending: make(chan []input.InputRecord, 64),
		closed:  make(chan struct{}),
	}
}

// Init implements backend.Source.
func (s *Source) Init() error { return nil }

// Fini implements backend.Source.
func (s *Source) Fini() { s.Close() }

// Interrupt unblocks a pending Poll, which then reports shutdown.
func (s *Source) Interrupt() { s.Close() }

// Close ends the stream. Batches posted before the close are still
// delivered by Poll before it reports shutdown.
func (s *Source) Close() {
	s.once.Do(func() { close(s.closed) })
}

// Post queues a batch of records for the next Poll. Posting after
// Close is a no-op.
func (s *Source) Post(records ...input.InputRecord) {
	if len(records) == 0 {
		return
	}
	batch := make([]input.InputRecord, len(records))
	copy(batch, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.closed:
	case s.pending <- batch:
	}
}

// Poll returns the next posted batch, or nil when the source is closed.
func (s *Source) Poll() ([]input.InputRecord, error) {
	select {
	case batch := <-s.pending:
		return batch, nil
	case <-s.closed:
		// Drain anything posted before the close.
		select {
		case batch := <-s.pending:
			return batch, nil
		default:
			return nil, nil
		}
	}
}
