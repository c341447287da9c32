// Package input implements the console host's input event queue: a
// growable circular buffer of input records shared between the window
// and terminal input producers and the console API read handlers.
//
// The queue performs no locking of its own. Every method must be called
// with the console-wide lock held; see package console for the lock
// owner and the blocking read protocol built on top of this package.
package input

// EventType tags the variant carried by an InputRecord.
type EventType uint16

const (
	KeyEvent EventType = 1 << iota
	MouseEvent
	BufferSizeEvent
	MenuEvent
	FocusEvent
)

// Control key state bits, shared by key and mouse records.
const (
	RightAltPressed  uint32 = 0x0001
	LeftAltPressed   uint32 = 0x0002
	RightCtrlPressed uint32 = 0x0004
	LeftCtrlPressed  uint32 = 0x0008
	ShiftPressed     uint32 = 0x0010
	NumLockOn        uint32 = 0x0020
	ScrollLockOn     uint32 = 0x0040
	CapsLockOn       uint32 = 0x0080
	EnhancedKey      uint32 = 0x0100

	// ImeConversion marks key events synthesized by an IME composition.
	// Coalescing uses a relaxed match for these (scan code ignored).
	ImeConversion uint32 = 0x00800000
)

// Mouse event flags.
const (
	MouseMoved       uint32 = 0x0001
	MouseDoubleClick uint32 = 0x0002
	MouseWheeled     uint32 = 0x0004
	MouseHWheeled    uint32 = 0x0008
)

// Mouse button state bits. Wheel events carry the signed delta in the
// high 16 bits of the button state.
const (
	FromLeft1stButtonPressed uint32 = 0x0001
	RightmostButtonPressed   uint32 = 0x0002
	FromLeft2ndButtonPressed uint32 = 0x0004
)

// KeyRecord describes one keyboard transition. A stored record may stand
// for Repeat logically identical consecutive key-downs; the queue compacts
// auto-repeat runs at write time and expands them again for stream reads.
type KeyRecord struct {
	Down         bool
	Repeat       uint16
	VirtualKey   uint16
	ScanCode     uint16
	Char         rune // 0 when the key produces no character
	ControlState uint32
}

// MouseRecord describes one mouse event in buffer cell coordinates.
type MouseRecord struct {
	X, Y         int
	ButtonState  uint32
	Flags        uint32
	ControlState uint32
}

// BufferSizeRecord reports a screen buffer resize.
type BufferSizeRecord struct {
	Width  int
	Height int
}

// MenuRecord is an opaque menu notification, passed through unmodified.
type MenuRecord struct {
	CommandID uint32
}

// FocusRecord reports a console window focus transition.
type FocusRecord struct {
	SetFocus bool
}

// InputRecord is one queued input occurrence. Only the variant selected
// by Type is meaningful; the others hold their zero values. A flat value
// layout is used instead of an interface so records can live directly in
// the ring's backing array and be updated in place by the coalescer.
type InputRecord struct {
	Type  EventType
	Key   KeyRecord
	Mouse MouseRecord
	Size  BufferSizeRecord
	Menu  MenuRecord
	Focus FocusRecord
}

// NewKeyRecord builds a key record with a repeat count of one.
func NewKeyRecord(down bool, vk, scan uint16, ch rune, state uint32) InputRecord {
	return InputRecord{
		Type: KeyEvent,
		Key: KeyRecord{
			Down:         down,
			Repeat:       1,
			VirtualKey:   vk,
			ScanCode:     scan,
			Char:         ch,
			ControlState: state,
		},
	}
}

// NewMouseRecord builds a mouse record.
func NewMouseRecord(x, y int, buttons, flags, state uint32) InputRecord {
	return InputRecord{
		Type: MouseEvent,
		Mouse: MouseRecord{
			X:            x,
			Y:            y,
			ButtonState:  buttons,
			Flags:        flags,
			ControlState: state,
		},
	}
}

// NewBufferSizeRecord builds a buffer resize record.
func NewBufferSizeRecord(width, height int) InputRecord {
	return InputRecord{
		Type: BufferSizeEvent,
		Size: BufferSizeRecord{Width: width, Height: height},
	}
}

// NewFocusRecord builds a focus transition record.
func NewFocusRecord(set bool) InputRecord {
	return InputRecord{Type: FocusEvent, Focus: FocusRecord{SetFocus: set}}
}

// NewMenuRecord builds a menu notification record.
func NewMenuRecord(commandID uint32) InputRecord {
	return InputRecord{Type: MenuEvent, Menu: MenuRecord{CommandID: commandID}}
}

// isKeyDown reports whether r is a key-down record.
func (r *InputRecord) isKeyDown() bool {
	return r.Type == KeyEvent && r.Key.Down
}
