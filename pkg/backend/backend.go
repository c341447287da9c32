// Package backend defines the device abstraction that feeds the input
// queue. A Source produces batches of input records from a terminal or
// a scripted harness; Pump moves them into a Sink until the source is
// exhausted or the context is cancelled.
package backend

import (
	"context"

	"github.com/odvcencio/conhost/pkg/input"
)

// Source is an input device. Poll blocks until at least one record is
// available and returns a nil slice with nil error when the device has
// shut down. Interrupt unblocks a pending Poll.
type Source interface {
	Init() error
	Fini()
	Interrupt()
	Poll() ([]input.InputRecord, error)
}

// Sink receives input records. The returned count may be short of
// len(events) when the sink is out of space.
type Sink interface {
	WriteInput(events []input.InputRecord) (int, error)
}

// Pump forwards records from src to sink until src shuts down, src
// fails, or ctx is cancelled. The source must already be initialized.
func Pump(ctx context.Context, src Source, sink Sink) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			src.Interrupt()
		case <-done:
		}
	}()

	for {
		records, err := src.Poll()
		if err != nil {
			return err
		}
		if records == nil {
			return ctx.Err()
		}
		if len(records) == 0 {
			continue
		}
		if _, err := sink.WriteInput(records); err != nil {
			return err
		}
	}
}
