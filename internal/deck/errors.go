package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition marks a deck mutation attempted in a state that
	// the gesture guards should have made unreachable.
	ErrPrecondition = errors.New("deck precondition violated")

	// ErrInputOutOfOrder classifies move/end input that arrives with no
	// open gesture session. Input handlers never return it; they drop
	// the event instead.
	ErrInputOutOfOrder = errors.New("input out of order")
)

// PreconditionError reports which operation hit an empty deck.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}
