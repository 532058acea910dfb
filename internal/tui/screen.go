package tui

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/kokistudios/swipe/internal/deck"
	"github.com/kokistudios/swipe/internal/gesture"
)

// Terminal cells are mapped to a nominal pixel grid so gesture
// thresholds configured in pixels mean the same thing here.
const (
	cellWidth  = 8
	cellHeight = 16
)

type animation struct {
	subject deck.Item
	from    gesture.Transform
	to      gesture.Transform
	motion  gesture.Motion
	started time.Time
	done    func()
}

// screen is the terminal implementation of gesture.View. It only holds
// what the controller told it; View() in the model draws from it.
type screen struct {
	clock  clockwork.Clock
	cols   int
	rows   int
	scroll int

	stack      []deck.Item
	summary    []deck.Item
	inSummary  bool
	progress   string
	transforms map[string]gesture.Transform
	affordance map[string]gesture.Affordance
	scrollLock bool

	anims []*animation
}

func newScreen(clock clockwork.Clock) *screen {
	return &screen{
		clock:      clock,
		cols:       80,
		rows:       24,
		transforms: make(map[string]gesture.Transform),
		affordance: make(map[string]gesture.Affordance),
	}
}

func (s *screen) ViewportWidth() float64 { return float64(s.cols * cellWidth) }

func (s *screen) RenderStack(p []deck.Item) {
	s.stack = p
	s.summary = nil
	s.inSummary = false
	s.scroll = 0
	s.transforms = make(map[string]gesture.Transform)
	s.affordance = make(map[string]gesture.Affordance)
}

func (s *screen) RenderSummary(accepted []deck.Item) {
	s.stack = nil
	s.summary = accepted
	s.inSummary = true
	s.scroll = 0
	s.anims = nil
}

func (s *screen) SetProgress(label string) { s.progress = label }

func (s *screen) SetTransform(subject deck.Item, t gesture.Transform) {
	s.stop(subject)
	s.transforms[subject.ID] = t
}

func (s *screen) SetAffordance(subject deck.Item, a gesture.Affordance) {
	s.affordance[subject.ID] = a
}

func (s *screen) SetScrollLock(locked bool) { s.scrollLock = locked }

func (s *screen) Animate(subject deck.Item, to gesture.Transform, m gesture.Motion, done func()) {
	s.stop(subject)
	if m.Duration <= 0 {
		s.transforms[subject.ID] = to
		done()
		return
	}
	s.anims = append(s.anims, &animation{
		subject: subject,
		from:    s.transforms[subject.ID],
		to:      to,
		motion:  m,
		started: s.clock.Now(),
		done:    done,
	})
}

// stop drops any running animation on subject without completing it.
func (s *screen) stop(subject deck.Item) {
	kept := s.anims[:0]
	for _, a := range s.anims {
		if a.subject.ID != subject.ID {
			kept = append(kept, a)
		}
	}
	s.anims = kept
}

func (s *screen) animating() bool { return len(s.anims) > 0 }

// advance moves every animation to the clock's current time and fires
// completion callbacks, in start order, for those that have ended.
func (s *screen) advance() {
	now := s.clock.Now()
	var finished []*animation
	kept := s.anims[:0]
	for _, a := range s.anims {
		p := float64(now.Sub(a.started)) / float64(a.motion.Duration)
		if p >= 1 {
			s.transforms[a.subject.ID] = a.to
			finished = append(finished, a)
			continue
		}
		s.transforms[a.subject.ID] = a.from.Lerp(a.to, a.motion.Easing.At(p))
		kept = append(kept, a)
	}
	s.anims = kept
	for _, a := range finished {
		a.done()
	}
}

func (s *screen) top() (deck.Item, bool) {
	if len(s.stack) == 0 {
		return deck.Item{}, false
	}
	return s.stack[len(s.stack)-1], true
}
