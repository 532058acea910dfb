package gesture

// State is the controller's position in the swipe lifecycle. Exactly
// one state is current; there are no side flags for dragging or summary.
type State int

const (
	Idle State = iota
	Dragging
	Committing
	Cancelling
	Summary
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	case Cancelling:
		return "cancelling"
	case Summary:
		return "summary"
	default:
		return "unknown"
	}
}

var validTransitions = map[State][]State{
	Idle:       {Dragging, Committing},
	Dragging:   {Committing, Cancelling},
	Committing: {Idle, Summary},
	Cancelling: {Idle, Dragging, Committing}, // a new gesture or button press preempts the snap-back
	Summary:    {Idle},
}

// CanTransition reports whether moving from one state to another is legal.
func CanTransition(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Outcome is the classification of a finished gesture. It is derived
// once per session.
type Outcome int

const (
	Cancel Outcome = iota
	Accept
	Reject
)

func (o Outcome) String() string {
	switch o {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	default:
		return "cancel"
	}
}

// Classify compares a release displacement against viewportWidth*ratio.
// The comparison is strict: a release exactly on the threshold cancels.
func Classify(dx, viewportWidth, ratio float64) Outcome {
	threshold := viewportWidth * ratio
	switch {
	case dx > threshold:
		return Accept
	case dx < -threshold:
		return Reject
	default:
		return Cancel
	}
}
