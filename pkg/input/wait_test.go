package input

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitRegisterAndCompleteBalance(t *testing.T) {
	q := New(Options{Capacity: 16})

	h1, err := q.RegisterWait()
	require.NoError(t, err)
	h2, err := q.RegisterWait()
	require.NoError(t, err)
	require.Equal(t, 2, q.BlockedReaders())

	q.CompleteWait(h1)
	q.CompleteWait(h2)
	assert.Equal(t, 0, q.BlockedReaders())

	// Completing twice must not decrement twice.
	q.CompleteWait(h1)
	assert.Equal(t, 0, q.BlockedReaders())
}

func TestWaitLimitLeavesCountUntouched(t *testing.T) {
	q := New(Options{Capacity: 16, WaiterLimit: 1})

	h, err := q.RegisterWait()
	require.NoError(t, err)

	_, err = q.RegisterWait()
	require.ErrorIs(t, err, ErrTooManyWaiters)
	assert.Equal(t, 1, q.BlockedReaders())

	q.CompleteWait(h)
	assert.Equal(t, 0, q.BlockedReaders())
}

func TestWaitWokenByWrite(t *testing.T) {
	q := New(Options{Capacity: 16})

	h, err := q.RegisterWait()
	require.NoError(t, err)

	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Write([]InputRecord{keyDown('a')})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, h.Wait(ctx))
	q.CompleteWait(h)

	dst := make([]InputRecord, 1)
	n, _ := q.Read(dst, ReadOptions{})
	assert.Equal(t, 1, n)
}

func TestWaitSingleWriteWakesAllReaders(t *testing.T) {
	q := New(Options{Capacity: 16})

	h1, _ := q.RegisterWait()
	h2, _ := q.RegisterWait()
	q.Write([]InputRecord{keyDown('a')})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, h1.Wait(ctx))
	require.NoError(t, h2.Wait(ctx))
	q.CompleteWait(h1)
	q.CompleteWait(h2)
	assert.Equal(t, 0, q.BlockedReaders())
}

func TestWaitCancellation(t *testing.T) {
	q := New(Options{Capacity: 16})

	h, err := q.RegisterWait()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, h.Wait(ctx), context.Canceled)

	// Cancellation still balances the registration exactly once.
	q.CompleteWait(h)
	assert.Equal(t, 0, q.BlockedReaders())
}

func TestNonEmptySignalSnapshotBecomesReady(t *testing.T) {
	q := New(Options{Capacity: 16})
	snapshot := q.NonEmptySignal()

	select {
	case <-snapshot:
		t.Fatal("signal asserted on an empty queue")
	default:
	}

	q.Write([]InputRecord{keyDown('a')})
	select {
	case <-snapshot:
	case <-time.After(time.Second):
		t.Fatal("snapshot not released by write")
	}
}
