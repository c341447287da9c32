package input

import "github.com/mattn/go-runewidth"

// isFullWidth reports whether ch occupies two display cells. Full-width
// characters are exempt from repeat compaction and cost two units in
// narrow-mode reads; merging them would corrupt the reader's column
// accounting.
func isFullWidth(ch rune) bool {
	return runewidth.RuneWidth(ch) == 2
}

// tryCoalesce attempts to merge ev into the most recently written
// record instead of appending it. It applies only when a write submits
// exactly one event and the store is non-empty; the caller checks both.
// Returns true when ev was absorbed, in which case the write cursor has
// not moved and the caller reports one event written.
//
// The window system posts a mouse-move for every pointer update, and
// keyboard auto-repeat posts a key-down per repeat; without merging,
// either would flood the queue faster than readers drain it.
func (r *ringStore) tryCoalesce(ev *InputRecord) bool {
	last := r.lastWritten()

	// Mouse-move merge: only the latest position is observable, so a
	// move following a move simply updates the stored coordinates.
	// Button transitions carry other flags and never merge.
	if ev.Type == MouseEvent && ev.Mouse.Flags == MouseMoved {
		if last.Type == MouseEvent && last.Mouse.Flags == MouseMoved {
			last.Mouse.X = ev.Mouse.X
			last.Mouse.Y = ev.Mouse.Y
			return true
		}
		return false
	}

	// Key-repeat merge: a key-down matching the previous stored
	// key-down adds its repeat count to it.
	if ev.isKeyDown() {
		if isFullWidth(ev.Key.Char) {
			return false
		}
		if ev.Key.ControlState&ImeConversion != 0 {
			// IME-synthesized events share a character and control
			// state but not a stable scan code, so the scan code is
			// ignored for the match.
			if last.isKeyDown() &&
				last.Key.Char == ev.Key.Char &&
				last.Key.ControlState == ev.Key.ControlState {
				last.Key.Repeat += ev.Key.Repeat
				return true
			}
			return false
		}
		if last.isKeyDown() &&
			last.Key.ScanCode == ev.Key.ScanCode &&
			last.Key.Char == ev.Key.Char &&
			last.Key.ControlState == ev.Key.ControlState {
			last.Key.Repeat += ev.Key.Repeat
			return true
		}
	}
	return false
}
