// Package input defines the device-independent input event model.
// The windowing collaborator translates native events into these values;
// the camera controller consumes them without knowing the backend.
package input

// Key identifies a camera control key.
type Key int

const (
	KeyNone Key = iota
	KeyForward
	KeyBack
	KeyStrafeLeft
	KeyStrafeRight
	KeyRise
	KeyFall
)

// String returns a human-readable key name.
func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBack:
		return "back"
	case KeyStrafeLeft:
		return "strafe-left"
	case KeyStrafeRight:
		return "strafe-right"
	case KeyRise:
		return "rise"
	case KeyFall:
		return "fall"
	default:
		return "none"
	}
}

// EventType discriminates input events.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event represents a processed input event. Each tick the window produces
// a finite batch of these; the batch is drained and a fresh one starts on
// the next tick.
type Event struct {
	Type EventType
	Key  Key

	// Mouse movement delta in pixels (EventMouseMove)
	DX, DY float32

	// New drawable size (EventWindowResize)
	Width  int
	Height int
}

// KeyDown returns a key-down event.
func KeyDown(k Key) Event { return Event{Type: EventKeyDown, Key: k} }

// KeyUp returns a key-up event.
func KeyUp(k Key) Event { return Event{Type: EventKeyUp, Key: k} }

// MouseMove returns a mouse movement event.
func MouseMove(dx, dy float32) Event { return Event{Type: EventMouseMove, DX: dx, DY: dy} }
