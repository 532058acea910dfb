// Package headless provides a gesture.View with no screen. It records
// what the controller renders and completes animations either at once
// or when flushed.
package headless

import (
	"github.com/kokistudios/swipe/internal/deck"
	"github.com/kokistudios/swipe/internal/gesture"
)

type pending struct {
	subject deck.Item
	to      gesture.Transform
	done    func()
}

// View is a recording gesture.View. The zero value is not usable; use New.
type View struct {
	width    float64
	deferred bool

	stack      []deck.Item
	summary    []deck.Item
	inSummary  bool
	progress   string
	transforms map[string]gesture.Transform
	affordance map[string]gesture.Affordance
	scrollLock bool
	queue      []pending
}

// Option configures a View.
type Option func(*View)

// Deferred holds animations until Flush is called.
func Deferred() Option {
	return func(v *View) { v.deferred = true }
}

// New returns a view reporting the given viewport width.
func New(width float64, opts ...Option) *View {
	v := &View{
		width:      width,
		transforms: make(map[string]gesture.Transform),
		affordance: make(map[string]gesture.Affordance),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *View) ViewportWidth() float64 { return v.width }

func (v *View) RenderStack(p []deck.Item) {
	v.stack = p
	v.summary = nil
	v.inSummary = false
	v.transforms = make(map[string]gesture.Transform)
	v.affordance = make(map[string]gesture.Affordance)
}

func (v *View) RenderSummary(accepted []deck.Item) {
	v.stack = nil
	v.summary = accepted
	v.inSummary = true
}

func (v *View) SetProgress(label string) { v.progress = label }

func (v *View) SetTransform(s deck.Item, t gesture.Transform) {
	v.drop(s)
	v.transforms[s.ID] = t
}

func (v *View) SetAffordance(s deck.Item, a gesture.Affordance) { v.affordance[s.ID] = a }

func (v *View) SetScrollLock(locked bool) { v.scrollLock = locked }

func (v *View) Animate(s deck.Item, to gesture.Transform, m gesture.Motion, done func()) {
	v.drop(s)
	if !v.deferred {
		v.transforms[s.ID] = to
		done()
		return
	}
	v.queue = append(v.queue, pending{subject: s, to: to, done: done})
}

// drop discards a queued animation on s without completing it.
func (v *View) drop(s deck.Item) {
	kept := v.queue[:0]
	for _, p := range v.queue {
		if p.subject.ID != s.ID {
			kept = append(kept, p)
		}
	}
	v.queue = kept
}

// Flush completes queued animations in the order they were started and
// reports how many ran. Callbacks may queue further animations; those run
// on the next Flush.
func (v *View) Flush() int {
	q := v.queue
	v.queue = nil
	for _, p := range q {
		v.transforms[p.subject.ID] = p.to
		p.done()
	}
	return len(q)
}

// Animating reports how many animations are waiting for Flush.
func (v *View) Animating() int { return len(v.queue) }

// Stack returns the last rendered pending stack, bottom first.
func (v *View) Stack() []deck.Item { return v.stack }

// Summary returns the accepted items shown by the summary view and
// whether the summary is on screen.
func (v *View) Summary() ([]deck.Item, bool) { return v.summary, v.inSummary }

func (v *View) Progress() string { return v.progress }

func (v *View) Transform(s deck.Item) gesture.Transform { return v.transforms[s.ID] }

func (v *View) Affordance(s deck.Item) gesture.Affordance { return v.affordance[s.ID] }

func (v *View) ScrollLocked() bool { return v.scrollLock }
