package gesture

import (
	"time"

	"github.com/kokistudios/swipe/internal/deck"
)

// Transform is the visual offset applied to a card.
type Transform struct {
	TranslateX float64
	RotateDeg  float64
}

// Lerp interpolates toward to by p in [0,1].
func (t Transform) Lerp(to Transform, p float64) Transform {
	return Transform{
		TranslateX: t.TranslateX + (to.TranslateX-t.TranslateX)*p,
		RotateDeg:  t.RotateDeg + (to.RotateDeg-t.RotateDeg)*p,
	}
}

// Affordance holds the like/reject indicator intensities, each in [0,1].
type Affordance struct {
	Like   float64
	Reject float64
}

// Motion describes an eased animation.
type Motion struct {
	Duration time.Duration
	Easing   Easing
}

// View is the render collaborator and input surface the controller drives.
// Implementations are called from the same goroutine that dispatches input.
type View interface {
	ViewportWidth() float64
	// RenderStack draws pending bottom first; the last item is in front.
	RenderStack(pending []deck.Item)
	RenderSummary(accepted []deck.Item)
	SetProgress(label string)
	// SetTransform moves subject immediately with transitions disabled,
	// stopping any animation running on it.
	SetTransform(subject deck.Item, t Transform)
	SetAffordance(subject deck.Item, a Affordance)
	// SetScrollLock suppresses native scrolling while a horizontal drag is live.
	SetScrollLock(locked bool)
	// Animate eases subject to t and calls done once when the animation
	// ends. done may run before Animate returns. An animation replaced by
	// a later one on the same subject never calls its done.
	Animate(subject deck.Item, to Transform, m Motion, done func())
}
