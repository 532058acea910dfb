// Package gesture implements the swipe state machine: it tracks a drag on
// the top card, classifies the release, and commits or cancels against
// the deck while driving the view's animations.
package gesture

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/kokistudios/swipe/internal/deck"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes transition and commit logging to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTransitionHook calls fn after every state change.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(c *Controller) { c.onTransition = fn }
}

// Controller owns one deck's interaction state. All methods must be
// called from a single goroutine, including the view's done callbacks.
type Controller struct {
	deck   *deck.Deck
	view   View
	cfg    Config
	logger *log.Logger

	onTransition func(from, to State)

	state   State
	session *Session  // non-nil only while Dragging
	subject deck.Item // card being animated while Committing or Cancelling
	locked  bool      // scroll lock held for the open session

	// gen invalidates animation callbacks that belong to a superseded
	// commit or cancel.
	gen uint64
}

// NewController binds a deck to a view.
func NewController(d *deck.Deck, v View, cfg Config, opts ...Option) (*Controller, error) {
	if d == nil || v == nil {
		return nil, fmt.Errorf("controller requires a deck and a view")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gesture config: %w", err)
	}
	c := &Controller{
		deck:   d,
		view:   v,
		cfg:    cfg,
		logger: log.New(io.Discard),
		state:  Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Deck() *deck.Deck { return c.deck }

// Subject returns the card the controller is bound to: the dragged card
// while Dragging, the animating card while Committing or Cancelling.
func (c *Controller) Subject() (deck.Item, bool) {
	if c.session != nil {
		return c.session.Subject, true
	}
	if !c.subject.IsZero() {
		return c.subject, true
	}
	return deck.Item{}, false
}

// Session returns a copy of the open drag session, if any.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Start populates the deck and renders it. It is valid for the first
// load (Idle) and from Summary; any other state is left alone.
func (c *Controller) Start(ctx context.Context) error {
	if c.state != Idle && c.state != Summary {
		return nil
	}
	if err := c.deck.Initialize(ctx); err != nil {
		return err
	}
	c.session = nil
	c.subject = deck.Item{}
	c.gen++
	if c.state == Summary {
		c.setState(Idle)
	}
	c.view.RenderStack(c.deck.Pending())
	c.view.SetProgress(c.deck.ProgressLabel())
	return nil
}

// Restart is the summary's restart action. Outside Summary it does nothing.
func (c *Controller) Restart(ctx context.Context) error {
	if c.state != Summary {
		return nil
	}
	return c.Start(ctx)
}

// Dispatch feeds one input event through the state machine. Events that
// do not apply to the current state are dropped.
func (c *Controller) Dispatch(ev Event) {
	switch ev.Kind {
	case EventStart:
		c.begin(ev)
	case EventMove:
		c.move(ev)
	case EventEnd, EventCancel:
		c.release()
	}
}

// Accept commits the top card as liked, as if it had been swiped right.
func (c *Controller) Accept() (deck.Item, bool) { return c.decide(deck.Accept) }

// Reject commits the top card as passed, as if it had been swiped left.
func (c *Controller) Reject() (deck.Item, bool) { return c.decide(deck.Reject) }

func (c *Controller) decide(d deck.Decision) (deck.Item, bool) {
	if c.state != Idle && c.state != Cancelling {
		return deck.Item{}, false
	}
	top, ok := c.deck.PeekTop()
	if !ok {
		return deck.Item{}, false
	}
	return top, c.commit(top, d)
}

func (c *Controller) begin(ev Event) {
	if c.state != Idle && c.state != Cancelling {
		return
	}
	top, ok := c.deck.PeekTop()
	if !ok || ev.Target.ID != top.ID {
		return
	}
	c.gen++
	c.subject = deck.Item{}
	c.session = &Session{Subject: top, Origin: ev.Point, Current: ev.Point}
	if !c.cfg.AxisLock {
		c.session.Axis = AxisHorizontal
	}
	c.setState(Dragging)
	c.view.SetTransform(top, Transform{})
	if c.session.Axis == AxisHorizontal {
		c.lockScroll(true)
	}
}

func (c *Controller) move(ev Event) {
	if c.state != Dragging || c.session == nil {
		return
	}
	s := c.session
	s.Current = ev.Point
	s.lockAxis(c.cfg.AxisSlop)
	if s.Axis != AxisHorizontal {
		return
	}
	c.lockScroll(true)
	dx, _ := s.Delta()
	c.view.SetTransform(s.Subject, Transform{TranslateX: dx, RotateDeg: dx * c.cfg.RotationPerPixel})
	c.view.SetAffordance(s.Subject, c.affordance(dx))
}

func (c *Controller) release() {
	if c.state != Dragging || c.session == nil {
		return
	}
	s := *c.session
	c.session = nil
	c.lockScroll(false)

	outcome := Cancel
	if s.Axis != AxisVertical {
		dx, _ := s.Delta()
		outcome = Classify(dx, c.view.ViewportWidth(), c.cfg.SwipeRatio)
	}
	c.logger.Debug("gesture released", "outcome", outcome, "axis", s.Axis, "item", s.Subject.ID)

	switch outcome {
	case Accept:
		c.commit(s.Subject, deck.Accept)
	case Reject:
		c.commit(s.Subject, deck.Reject)
	default:
		c.cancel(s.Subject)
	}
}

// commit mutates the deck first so queries are correct immediately, then
// animates the card away. The view is reconciled when the animation ends.
func (c *Controller) commit(subject deck.Item, d deck.Decision) bool {
	item, err := c.deck.CommitTop(d)
	if err != nil {
		c.logger.Error("commit rejected", "err", err)
		return false
	}
	if item.ID != subject.ID {
		c.logger.Error("committed card differs from gesture subject", "subject", subject.ID, "committed", item.ID)
	}
	c.logger.Info("card committed", "decision", d, "item", item.ID, "remaining", c.deck.Remaining())

	c.gen++
	gen := c.gen
	c.subject = item
	c.setState(Committing)

	dir := 1.0
	if d == deck.Reject {
		dir = -1
	}
	to := Transform{TranslateX: dir * c.view.ViewportWidth(), RotateDeg: dir * c.cfg.CommitRotation}
	c.view.Animate(item, to, Motion{Duration: c.cfg.CommitDuration, Easing: Ease}, func() {
		c.finishCommit(gen)
	})
	return true
}

func (c *Controller) finishCommit(gen uint64) {
	if gen != c.gen || c.state != Committing {
		return
	}
	c.subject = deck.Item{}
	if c.deck.Exhausted() {
		c.setState(Summary)
		c.view.RenderSummary(c.deck.Accepted())
		c.view.SetProgress(c.deck.ProgressLabel())
		return
	}
	c.view.RenderStack(c.deck.Pending())
	c.view.SetProgress(c.deck.ProgressLabel())
	c.setState(Idle)
}

func (c *Controller) cancel(subject deck.Item) {
	c.gen++
	gen := c.gen
	c.subject = subject
	c.setState(Cancelling)
	c.view.SetAffordance(subject, Affordance{})
	c.view.Animate(subject, Transform{}, Motion{Duration: c.cfg.CancelDuration, Easing: SnapBack}, func() {
		if gen != c.gen || c.state != Cancelling {
			return
		}
		c.subject = deck.Item{}
		c.setState(Idle)
	})
}

func (c *Controller) affordance(dx float64) Affordance {
	intensity := math.Min(math.Abs(dx)/c.cfg.AffordanceDistance, 1)
	switch {
	case dx > 0:
		return Affordance{Like: intensity}
	case dx < 0:
		return Affordance{Reject: intensity}
	default:
		return Affordance{}
	}
}

func (c *Controller) lockScroll(locked bool) {
	if c.locked == locked {
		return
	}
	c.locked = locked
	c.view.SetScrollLock(locked)
}

func (c *Controller) setState(to State) {
	from := c.state
	if from == to {
		return
	}
	if !CanTransition(from, to) {
		c.logger.Error("illegal transition ignored", "from", from, "to", to)
		return
	}
	c.state = to
	c.logger.Debug("state", "from", from, "to", to, "remaining", c.deck.Remaining())
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}
