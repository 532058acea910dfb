package gesture

import (
	"math"

	"github.com/kokistudios/swipe/internal/deck"
)

// Point is a pointer or touch coordinate in viewport units.
type Point struct {
	X, Y float64
}

// Axis records how a session's movement was interpreted.
type Axis int

const (
	AxisUndecided Axis = iota
	AxisHorizontal
	AxisVertical // ceded to native scrolling
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "undecided"
	}
}

// Session is the transient state of one drag on the top card.
type Session struct {
	Subject deck.Item
	Origin  Point
	Current Point
	Axis    Axis
}

// Delta returns the displacement from the gesture's origin.
func (s Session) Delta() (dx, dy float64) {
	return s.Current.X - s.Origin.X, s.Current.Y - s.Origin.Y
}

// lockAxis fixes the session axis once the movement leaves the slop
// radius. Ties go horizontal.
func (s *Session) lockAxis(slop float64) {
	if s.Axis != AxisUndecided {
		return
	}
	dx, dy := s.Delta()
	if math.Max(math.Abs(dx), math.Abs(dy)) < slop {
		return
	}
	if math.Abs(dx) >= math.Abs(dy) {
		s.Axis = AxisHorizontal
	} else {
		s.Axis = AxisVertical
	}
}

type EventKind int

const (
	EventStart EventKind = iota
	EventMove
	EventEnd
	EventCancel // e.g. touchcancel; treated like a release
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventMove:
		return "move"
	case EventEnd:
		return "end"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

type Device int

const (
	Pointer Device = iota
	Touch
)

// Event is one input sample. Target is the card under the pointer, zero
// when the pointer is not over a card.
type Event struct {
	Kind   EventKind
	Device Device
	Point  Point
	Target deck.Item
}
