package input

// Dequeue supports two output encodings. The wide path in ring.read is
// a straight record copy. The narrow path here budgets output in
// display-cell-equivalent units instead of record counts: narrow-mode
// readers account for consumed space per cell, and a full-width
// character fills two of them.

// readNarrow copies records out under a unit budget of len(dst). A key
// record whose character is full-width costs two units; every other
// record costs one. The head record is always copied before its cost is
// charged, so a full-width head is returned even when only one unit
// remains; refusing it would leave a one-unit reader stuck forever.
func (r *ringStore) readNarrow(dst []InputRecord, peek bool) (n int, becameEmpty bool) {
	budget := len(dst)
	avail := r.resident()
	units := 0
	idx := r.out
	for i := 0; i < avail && units < budget; i++ {
		rec := r.buf[idx]
		dst[n] = rec
		n++
		if rec.Type == KeyEvent && isFullWidth(rec.Key.Char) {
			units += 2
		} else {
			units++
		}
		idx++
		if idx == len(r.buf) {
			idx = 0
		}
	}
	if !peek {
		r.out = (r.out + n) % len(r.buf)
	}
	return n, r.in == r.out
}

// readStream returns one logical key occurrence from a compacted
// repeat run. A head record with a repeat count above one is decremented
// in place and a single-occurrence copy is returned; the record itself
// is retired by the read that observes a count of one. This expands a
// merged run back into individual reads without re-inflating storage.
//
// Only valid when the store is non-empty and the head is a key record;
// the caller routes other heads through the normal read path.
func (r *ringStore) readStream(dst *InputRecord) (becameEmpty bool) {
	head := &r.buf[r.out]
	if head.Key.Repeat > 1 {
		*dst = *head
		dst.Key.Repeat = 1
		head.Key.Repeat--
		return false
	}
	var one [1]InputRecord
	_, becameEmpty = r.read(one[:], false)
	*dst = one[0]
	return becameEmpty
}
