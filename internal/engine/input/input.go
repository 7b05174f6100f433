// Package input holds the per-frame pointer state and key events produced
// by the window layer.
package input

// Key is a platform-independent key identifier.
type Key int

// Keys the scene reacts to.
const (
	KeyUnknown Key = iota
	KeyEscape
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyC
	KeyZ
	KeyX
	KeyF
	KeyP
	KeyT
	KeyY
	KeyU
	KeyQ
	KeyI
	KeyK
	KeyJ
	KeyL
	KeyF12
)

// Action is what happened to a key.
type Action int

const (
	Press Action = iota
	Repeat
	Release
)

// KeyEvent is one key transition.
type KeyEvent struct {
	Key    Key
	Action Action
}

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	buttonCount
)

// Deltas are the pointer changes since the previous Drain.
type Deltas struct {
	DX, DY float32
	Scroll float32
	// Button state at drain time.
	Left, Right bool
}

// State accumulates input between frames. Deltas have a single consumer:
// the frame driver drains them once per frame whether or not anything
// uses them.
type State struct {
	x, y       float32
	hasPointer bool

	dx, dy float32
	scroll float32

	buttons [buttonCount]bool
	keys    []KeyEvent
}

// New creates an empty input state.
func New() *State {
	return &State{keys: make([]KeyEvent, 0, 16)}
}

// MoveTo records an absolute pointer position. The first sample only
// establishes the origin.
func (s *State) MoveTo(x, y float32) {
	if s.hasPointer {
		s.dx += x - s.x
		s.dy += y - s.y
	}
	s.x, s.y = x, y
	s.hasPointer = true
}

// AddScroll records a wheel movement.
func (s *State) AddScroll(dy float32) {
	s.scroll += dy
}

// SetButton records a button press or release.
func (s *State) SetButton(b Button, down bool) {
	if b >= 0 && b < buttonCount {
		s.buttons[b] = down
	}
}

// PushKey queues a key event.
func (s *State) PushKey(k Key, a Action) {
	s.keys = append(s.keys, KeyEvent{Key: k, Action: a})
}

// Drain returns and clears the accumulated pointer deltas.
func (s *State) Drain() Deltas {
	d := Deltas{
		DX:     s.dx,
		DY:     s.dy,
		Scroll: s.scroll,
		Left:   s.buttons[ButtonLeft],
		Right:  s.buttons[ButtonRight],
	}
	s.dx, s.dy, s.scroll = 0, 0, 0
	return d
}

// DrainKeys returns and clears the queued key events.
// The returned slice is only valid until the next PushKey.
func (s *State) DrainKeys() []KeyEvent {
	keys := s.keys
	s.keys = s.keys[:0]
	return keys
}
