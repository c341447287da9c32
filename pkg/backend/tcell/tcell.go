// Package tcell provides a backend.Source backed by a tcell screen,
// translating terminal events into console input records.
package tcell

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/conhost/pkg/backend"
	"github.com/odvcencio/conhost/pkg/input"
)

// wheelDelta is the per-notch wheel delta reported in the high word of
// the mouse button state.
const wheelDelta = 120

// Source implements backend.Source using tcell.
type Source struct {
	screen tcell.Screen

	// Last reported mouse position, for move detection.
	lastX, lastY int

	// Bracketed paste state
	inPaste     bool
	pasteBuffer strings.Builder
}

// New creates a tcell source on a fresh screen.
func New() (*Source, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen creates a source on an existing screen (for testing).
func NewWithScreen(screen tcell.Screen) *Source {
	return &Source{screen: screen, lastX: -1, lastY: -1}
}

// Init initializes the screen and enables mouse, paste, and focus
// reporting.
func (s *Source) Init() error {
	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnableMouse()
	s.screen.EnablePaste()
	s.screen.EnableFocus()
	return nil
}

// Fini restores the terminal.
func (s *Source) Fini() {
	s.screen.Fini()
}

// Interrupt unblocks a pending Poll, which then reports shutdown.
func (s *Source) Interrupt() {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Poll blocks until the terminal delivers events that translate to at
// least one input record. Returns nil records when the screen is
// finalized or Interrupt is called.
func (s *Source) Poll() ([]input.InputRecord, error) {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil, nil
		}

		switch e := ev.(type) {
		case *tcell.EventInterrupt:
			return nil, nil

		case *tcell.EventError:
			return nil, fmt.Errorf("terminal event stream: %s", e.Error())

		case *tcell.EventPaste:
			if e.Start() {
				s.inPaste = true
				s.pasteBuffer.Reset()
				continue
			}
			if e.End() {
				s.inPaste = false
				text := s.pasteBuffer.String()
				s.pasteBuffer.Reset()
				if records := pasteRecords(text); len(records) > 0 {
					return records, nil
				}
				continue
			}

		case *tcell.EventKey:
			if s.inPaste {
				// Accumulate runes during paste
				switch e.Key() {
				case tcell.KeyRune:
					s.pasteBuffer.WriteRune(e.Rune())
				case tcell.KeyEnter:
					s.pasteBuffer.WriteRune('\n')
				case tcell.KeyTab:
					s.pasteBuffer.WriteRune('\t')
				}
				continue
			}
			return keyRecords(e), nil

		case *tcell.EventMouse:
			return s.mouseRecords(e), nil

		case *tcell.EventResize:
			w, h := e.Size()
			return []input.InputRecord{input.NewBufferSizeRecord(w, h)}, nil

		case *tcell.EventFocus:
			return []input.InputRecord{input.NewFocusRecord(e.Focused)}, nil
		}
	}
}

// keyRecords translates one key event into a down/up record pair. The
// terminal reports only the press, so the release is synthesized.
func keyRecords(e *tcell.EventKey) []input.InputRecord {
	vk, ch := translateKey(e)
	state := modState(e.Modifiers())
	if enhanced(vk) {
		state |= input.EnhancedKey
	}
	return []input.InputRecord{
		input.NewKeyRecord(true, vk, vk, ch, state),
		input.NewKeyRecord(false, vk, vk, ch, state),
	}
}

// pasteRecords expands pasted text into key transitions with no scan
// codes or modifiers, the same shape synthesized text input takes.
func pasteRecords(text string) []input.InputRecord {
	records := make([]input.InputRecord, 0, 2*len(text))
	for _, r := range text {
		var vk uint16
		switch r {
		case '\n':
			vk = input.VKReturn
		case '\t':
			vk = input.VKTab
		}
		records = append(records,
			input.NewKeyRecord(true, vk, 0, r, 0),
			input.NewKeyRecord(false, vk, 0, r, 0),
		)
	}
	return records
}

// mouseRecords translates one mouse event, tracking position to set
// the moved flag only on actual movement.
func (s *Source) mouseRecords(e *tcell.EventMouse) []input.InputRecord {
	x, y := e.Position()
	state := modState(e.Modifiers())
	buttons := e.Buttons()

	var flags uint32
	var buttonState uint32
	var delta int16

	switch {
	case buttons&tcell.WheelUp != 0:
		flags |= input.MouseWheeled
		delta = wheelDelta
	case buttons&tcell.WheelDown != 0:
		flags |= input.MouseWheeled
		delta = -wheelDelta
	case buttons&tcell.WheelLeft != 0:
		flags |= input.MouseHWheeled
		delta = -wheelDelta
	case buttons&tcell.WheelRight != 0:
		flags |= input.MouseHWheeled
		delta = wheelDelta
	}
	if delta != 0 {
		buttonState |= uint32(uint16(delta)) << 16
	}

	if buttons&tcell.Button1 != 0 {
		buttonState |= input.FromLeft1stButtonPressed
	}
	if buttons&tcell.Button2 != 0 {
		buttonState |= input.FromLeft2ndButtonPressed
	}
	if buttons&tcell.Button3 != 0 {
		buttonState |= input.RightmostButtonPressed
	}

	if flags == 0 && (x != s.lastX || y != s.lastY) {
		flags |= input.MouseMoved
	}
	s.lastX, s.lastY = x, y

	return []input.InputRecord{input.NewMouseRecord(x, y, buttonState, flags, state)}
}

// modState maps tcell modifier bits to control key state.
func modState(mods tcell.ModMask) uint32 {
	var state uint32
	if mods&tcell.ModAlt != 0 {
		state |= input.LeftAltPressed
	}
	if mods&tcell.ModCtrl != 0 {
		state |= input.LeftCtrlPressed
	}
	if mods&tcell.ModShift != 0 {
		state |= input.ShiftPressed
	}
	return state
}

// translateKey maps a tcell key event to a virtual key and character.
func translateKey(e *tcell.EventKey) (vk uint16, ch rune) {
	switch e.Key() {
	case tcell.KeyRune:
		return 0, e.Rune()
	case tcell.KeyEnter:
		return input.VKReturn, '\r'
	case tcell.KeyTab:
		return input.VKTab, '\t'
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.VKBack, '\b'
	case tcell.KeyEscape:
		return input.VKEscape, 0x1B
	case tcell.KeyUp:
		return input.VKUp, 0
	case tcell.KeyDown:
		return input.VKDown, 0
	case tcell.KeyLeft:
		return input.VKLeft, 0
	case tcell.KeyRight:
		return input.VKRight, 0
	case tcell.KeyHome:
		return input.VKHome, 0
	case tcell.KeyEnd:
		return input.VKEnd, 0
	case tcell.KeyPgUp:
		return input.VKPrior, 0
	case tcell.KeyPgDn:
		return input.VKNext, 0
	case tcell.KeyInsert:
		return input.VKInsert, 0
	case tcell.KeyDelete:
		return input.VKDelete, 0
	case tcell.KeyF1:
		return input.VKF1, 0
	case tcell.KeyF2:
		return input.VKF2, 0
	case tcell.KeyF3:
		return input.VKF3, 0
	case tcell.KeyF4:
		return input.VKF4, 0
	case tcell.KeyF5:
		return input.VKF5, 0
	case tcell.KeyF6:
		return input.VKF6, 0
	case tcell.KeyF7:
		return input.VKF7, 0
	case tcell.KeyF8:
		return input.VKF8, 0
	case tcell.KeyF9:
		return input.VKF9, 0
	case tcell.KeyF10:
		return input.VKF10, 0
	case tcell.KeyF11:
		return input.VKF11, 0
	case tcell.KeyF12:
		return input.VKF12, 0
	default:
		// Control characters arrive as dedicated tcell keys; report the
		// raw rune with no virtual key.
		return 0, e.Rune()
	}
}

// enhanced reports whether vk is on the navigation cluster, which the
// console marks with the enhanced key flag.
func enhanced(vk uint16) bool {
	switch vk {
	case input.VKUp, input.VKDown, input.VKLeft, input.VKRight,
		input.VKHome, input.VKEnd, input.VKPrior, input.VKNext,
		input.VKInsert, input.VKDelete:
		return true
	}
	return false
}

// Ensure Source implements backend.Source
var _ backend.Source = (*Source)(nil)
