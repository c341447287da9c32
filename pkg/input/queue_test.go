package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signalAsserted(q *Queue) bool {
	select {
	case <-q.NonEmptySignal():
		return true
	default:
		return false
	}
}

func TestQueueWriteOrderAcrossEventTypes(t *testing.T) {
	q := New(Options{Capacity: 16})
	events := []InputRecord{
		keyDown('a'),
		NewMouseRecord(1, 2, FromLeft1stButtonPressed, 0, 0),
		NewFocusRecord(true),
		NewBufferSizeRecord(80, 25),
		NewMenuRecord(42),
		keyDown('b'),
	}
	for _, ev := range events {
		_, err := q.Write([]InputRecord{ev})
		require.NoError(t, err)
	}
	require.Equal(t, len(events), q.Len())

	dst := make([]InputRecord, len(events))
	n, err := q.Read(dst, ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, len(events), n)
	assert.Equal(t, events, dst)
}

func TestQueueSignalTracksEmptiness(t *testing.T) {
	q := New(Options{Capacity: 16})
	require.False(t, signalAsserted(q))

	q.Write([]InputRecord{keyDown('a')})
	require.True(t, signalAsserted(q))

	dst := make([]InputRecord, 1)
	q.Read(dst, ReadOptions{})
	require.False(t, signalAsserted(q), "signal deasserts when a read empties the queue")
}

func TestQueuePeekDoesNotDeassertSignal(t *testing.T) {
	q := New(Options{Capacity: 16})
	q.Write([]InputRecord{keyDown('a')})

	dst := make([]InputRecord, 1)
	q.Read(dst, ReadOptions{Peek: true})
	assert.True(t, signalAsserted(q))
}

func TestFlushAll(t *testing.T) {
	q := New(Options{Capacity: 16})
	q.Write([]InputRecord{keyDown('a'), mouseMove(1, 1)})

	q.FlushAll()
	assert.Equal(t, 0, q.Len())
	assert.False(t, signalAsserted(q))
}

func TestFlushAllButKeys(t *testing.T) {
	q := New(Options{Capacity: 16})
	q.Write([]InputRecord{keyDown('a')})
	q.Write([]InputRecord{NewMouseRecord(1, 1, FromLeft1stButtonPressed, 0, 0)})
	q.Write([]InputRecord{keyDown('b')})
	q.Write([]InputRecord{NewMouseRecord(2, 2, 0, MouseMoved, 0)})
	q.Write([]InputRecord{keyDown('c')})
	require.Equal(t, 5, q.Len())

	require.NoError(t, q.FlushAllButKeys())
	require.Equal(t, 3, q.Len())
	require.True(t, signalAsserted(q))

	dst := make([]InputRecord, 3)
	n, _ := q.Read(dst, ReadOptions{})
	require.Equal(t, 3, n)
	for i, want := range []rune{'a', 'b', 'c'} {
		assert.Equal(t, want, dst[i].Key.Char, "key %d out of relative order", i)
	}
}

func TestFlushAllButKeysEmptiesSignalWithoutKeys(t *testing.T) {
	q := New(Options{Capacity: 16})
	q.Write([]InputRecord{mouseMove(1, 1)})
	q.Write([]InputRecord{NewFocusRecord(true)})

	require.NoError(t, q.FlushAllButKeys())
	assert.Equal(t, 0, q.Len())
	assert.False(t, signalAsserted(q))
}

func TestResizeRejectsNonGrowth(t *testing.T) {
	q := New(Options{Capacity: 16})
	assert.ErrorIs(t, q.Resize(16), ErrInvalidArgument)
	assert.ErrorIs(t, q.Resize(8), ErrInvalidArgument)
}

func TestResizePreservesContent(t *testing.T) {
	q := New(Options{Capacity: 8})
	q.Write([]InputRecord{keyDown('a')})
	q.Write([]InputRecord{keyDown('b')})

	require.NoError(t, q.Resize(32))
	assert.Equal(t, 32, q.Capacity())
	assert.Equal(t, 2, q.Len())
	assert.True(t, signalAsserted(q), "growth migrating pending content keeps the signal asserted")

	dst := make([]InputRecord, 2)
	q.Read(dst, ReadOptions{})
	assert.Equal(t, 'a', dst[0].Key.Char)
	assert.Equal(t, 'b', dst[1].Key.Char)
}

func TestPrependOrder(t *testing.T) {
	q := New(Options{Capacity: 16})
	q.Write([]InputRecord{keyDown('a')})
	q.Write([]InputRecord{keyDown('b')})

	written, err := q.Prepend([]InputRecord{keyDown('x'), keyDown('y')})
	require.NoError(t, err)
	require.Equal(t, 2, written)
	require.Equal(t, 4, q.Len())

	dst := make([]InputRecord, 4)
	n, _ := q.Read(dst, ReadOptions{})
	require.Equal(t, 4, n)
	for i, want := range []rune{'x', 'y', 'a', 'b'} {
		assert.Equal(t, want, dst[i].Key.Char, "record %d out of order after prepend", i)
	}
}

func TestPrependOntoEmptyQueue(t *testing.T) {
	q := New(Options{Capacity: 16})
	written, err := q.Prepend([]InputRecord{keyDown('x')})
	require.NoError(t, err)
	require.Equal(t, 1, written)
	assert.Equal(t, 1, q.Len())
	assert.True(t, signalAsserted(q))
}

func TestReadArgumentValidation(t *testing.T) {
	q := New(Options{Capacity: 16})
	q.Write([]InputRecord{keyDown('a')})

	_, err := q.Read(nil, ReadOptions{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWriteEmptyBatch(t *testing.T) {
	q := New(Options{Capacity: 16})
	written, err := q.Write(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, written)
	assert.False(t, signalAsserted(q))
}

func TestReadEmptyQueueNonBlocking(t *testing.T) {
	q := New(Options{Capacity: 16})
	dst := make([]InputRecord, 4)
	n, err := q.Read(dst, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
