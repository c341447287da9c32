package input

import (
	"math"
	"unsafe"
)

// recordBytes sizes the 32-bit allocation guards below.
const recordBytes = int64(unsafe.Sizeof(InputRecord{}))

// checkedBufferBytes verifies that a backing array of the given slot
// count can be sized without overflowing 32-bit byte arithmetic. It is
// called before any allocation so a failed check never mutates state.
func checkedBufferBytes(slots int) error {
	if slots <= 0 || int64(slots) > math.MaxUint32 {
		return ErrOverflow
	}
	if int64(slots)*recordBytes > math.MaxUint32 {
		return ErrOverflow
	}
	return nil
}

// ringStore is the circular array backing the queue. Cursors are plain
// indexes into buf; all wraparound is explicit modulo arithmetic. One
// slot is permanently reserved so in == out always means empty and a
// full buffer never lets in catch up to out.
//
// Invariant: the resident region is [out, in) measured circularly, and
// holds at most len(buf)-1 records.
type ringStore struct {
	buf []InputRecord
	in  int // next slot to write
	out int // next slot to read

	growthIncrement int

	// alloc provides the backing arrays. Production uses make; tests
	// inject failures (nil return) to exercise the grow-failure paths,
	// since Go offers no recoverable allocation error.
	alloc func(slots int) []InputRecord
}

func defaultAlloc(slots int) []InputRecord {
	return make([]InputRecord, slots)
}

// newRingStore creates a store with the given slot capacity. A zero or
// unrepresentable capacity falls back to the default rather than failing:
// queue creation is console startup and must succeed.
func newRingStore(capacity, growthIncrement int) *ringStore {
	if capacity == 0 || checkedBufferBytes(capacity) != nil {
		capacity = DefaultCapacity
	}
	if growthIncrement <= 0 {
		growthIncrement = DefaultGrowthIncrement
	}
	return &ringStore{
		buf:             make([]InputRecord, capacity),
		growthIncrement: growthIncrement,
		alloc:           defaultAlloc,
	}
}

// capacity returns the slot count, including the reserved slot.
func (r *ringStore) capacity() int {
	return len(r.buf)
}

func (r *ringStore) empty() bool {
	return r.in == r.out
}

// resident computes the number of stored records from the cursors alone.
// It is never maintained incrementally; the cursors are the single
// source of truth.
func (r *ringStore) resident() int {
	if r.in >= r.out {
		return r.in - r.out
	}
	return (len(r.buf) - r.out) + r.in
}

// free returns the number of records that can be appended without
// growing. One slot stays reserved for the full/empty disambiguation.
func (r *ringStore) free() int {
	return len(r.buf) - 1 - r.resident()
}

// lastWritten returns the record physically preceding the write cursor,
// i.e. the most recently appended one. Only valid when non-empty.
func (r *ringStore) lastWritten() *InputRecord {
	idx := r.in - 1
	if idx < 0 {
		idx = len(r.buf) - 1
	}
	return &r.buf[idx]
}

// write appends as many records as fit. When free space is insufficient
// it first tries to grow by len(events)+growthIncrement slots. If growth
// fails but space remains, it writes what fits and reports the shortfall
// through the returned count with a nil error; only when literally zero
// space remains does the growth error surface. Callers depend on this
// partial-success behavior, so it is deliberate, not an oversight.
func (r *ringStore) write(events []InputRecord) (written int, becameNonEmpty bool, err error) {
	if len(events) == 0 {
		return 0, false, nil
	}
	wasEmpty := r.empty()

	n := len(events)
	if free := r.free(); free < n {
		growErr := r.growForWrite(n)
		if growErr != nil {
			if free == 0 {
				return 0, false, growErr
			}
			n = free
		}
	}

	// Copies crossing the array end split into tail then head segments.
	first := n
	if tail := len(r.buf) - r.in; first > tail {
		first = tail
	}
	copy(r.buf[r.in:], events[:first])
	copy(r.buf, events[first:n])
	r.in = (r.in + n) % len(r.buf)

	if n > 0 && r.in == r.out {
		panic("input: ring full/empty invariant violated")
	}
	return n, wasEmpty && n > 0, nil
}

// growForWrite grows the store to hold count more records plus the
// configured increment of headroom, checking the target capacity for
// addition overflow first.
func (r *ringStore) growForWrite(count int) error {
	target := int64(len(r.buf)) + int64(count) + int64(r.growthIncrement)
	if target > math.MaxInt32 {
		return ErrOverflow
	}
	return r.grow(int(target))
}

// grow replaces the backing array with a strictly larger one, draining
// the resident records into it in logical order through the same read
// primitive readers use. On any failure the store is unchanged.
func (r *ringStore) grow(newCapacity int) error {
	if newCapacity <= len(r.buf) {
		return ErrInvalidArgument
	}
	if err := checkedBufferBytes(newCapacity); err != nil {
		return err
	}
	fresh := r.alloc(newCapacity)
	if fresh == nil {
		return ErrOutOfMemory
	}
	n, _ := r.read(fresh, false)
	r.buf = fresh
	r.out = 0
	r.in = n
	metricQueueGrowths.Inc()
	return nil
}

// read copies up to len(dst) records starting at the read cursor. With
// peek set the cursors are left untouched. becameEmpty reports the
// post-state, which is what the non-empty signal mirrors.
func (r *ringStore) read(dst []InputRecord, peek bool) (n int, becameEmpty bool) {
	n = r.resident()
	if n > len(dst) {
		n = len(dst)
	}
	first := n
	if tail := len(r.buf) - r.out; first > tail {
		first = tail
	}
	copy(dst, r.buf[r.out:r.out+first])
	copy(dst[first:n], r.buf[:n-first])
	if !peek {
		r.out = (r.out + n) % len(r.buf)
	}
	return n, r.in == r.out
}

// reset discards all resident records.
func (r *ringStore) reset() {
	r.in = 0
	r.out = 0
}
