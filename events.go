package vtui

import "fmt"

// Events are plain values. Listeners are keyed by the event's dynamic type,
// so dispatch MouseDown{...}, not &MouseDown{...}.

// PointerEvent is an event with a screen position. Dispatching one resolves
// a target node by hit-testing before any listener runs.
type PointerEvent interface {
	Coords() (x, y int)
}

// Tick asks for an update cycle without any input.
type Tick struct{}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	}
	return fmt.Sprintf("button(%d)", uint8(b))
}

// ScrollDirection is the direction of a wheel movement.
type ScrollDirection uint8

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
	ScrollLeft
	ScrollRight
)

// MouseDown is a pointer button press.
type MouseDown struct {
	X, Y   int
	Button MouseButton
}

// MouseUp is a pointer button release.
type MouseUp struct {
	X, Y   int
	Button MouseButton
}

// MouseHover is pointer movement with no button held.
type MouseHover struct {
	X, Y int
}

// MouseDrag is pointer movement with a button held.
type MouseDrag struct {
	X, Y   int
	Button MouseButton
}

// MouseScroll is a wheel movement at the pointer position.
type MouseScroll struct {
	X, Y      int
	Direction ScrollDirection
}

func (e MouseDown) Coords() (int, int)   { return e.X, e.Y }
func (e MouseUp) Coords() (int, int)     { return e.X, e.Y }
func (e MouseHover) Coords() (int, int)  { return e.X, e.Y }
func (e MouseDrag) Coords() (int, int)   { return e.X, e.Y }
func (e MouseScroll) Coords() (int, int) { return e.X, e.Y }

// KeyPress is a key going down.
type KeyPress struct {
	Key KeyCode
}

// KeyRepeat is a held key auto-repeating.
// Only terminals speaking the kitty keyboard protocol report it.
type KeyRepeat struct {
	Key KeyCode
}

// KeyRelease is a key coming up.
// Only terminals speaking the kitty keyboard protocol report it.
type KeyRelease struct {
	Key KeyCode
}

// Resize reports new terminal dimensions.
type Resize struct {
	Width, Height int
}

// FocusChanged is dispatched after a commit moved focus.
// Either side may be the zero NodeID (no focus).
type FocusChanged struct {
	Previous NodeID
	Current  NodeID
}
