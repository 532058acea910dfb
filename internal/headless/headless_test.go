package headless

import (
	"context"
	"testing"

	"github.com/kokistudios/swipe/internal/deck"
	"github.com/kokistudios/swipe/internal/gesture"
	"github.com/kokistudios/swipe/internal/provision"
)

func newController(t *testing.T, v *View, urls ...string) *gesture.Controller {
	t.Helper()
	d, err := deck.New(&provision.Static{URLs: urls}, len(urls))
	if err != nil {
		t.Fatal(err)
	}
	c, err := gesture.NewController(d, v, gesture.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestImmediate_CommitReconcilesAtOnce(t *testing.T) {
	v := New(800)
	c := newController(t, v, "a", "b")
	if _, ok := c.Accept(); !ok {
		t.Fatal("Accept failed")
	}
	if c.State() != gesture.Idle {
		t.Errorf("state = %s, want idle", c.State())
	}
	if len(v.Stack()) != 1 || v.Progress() != "2 / 2" {
		t.Errorf("stack=%d progress=%q", len(v.Stack()), v.Progress())
	}
}

func TestDeferred_HoldsUntilFlush(t *testing.T) {
	v := New(800, Deferred())
	c := newController(t, v, "a", "b")
	c.Reject()
	if c.State() != gesture.Committing || v.Animating() != 1 {
		t.Fatalf("state=%s animating=%d", c.State(), v.Animating())
	}
	if len(v.Stack()) != 2 {
		t.Error("departing card must stay rendered until the animation ends")
	}
	if n := v.Flush(); n != 1 {
		t.Errorf("Flush ran %d", n)
	}
	if c.State() != gesture.Idle || len(v.Stack()) != 1 {
		t.Errorf("after flush state=%s stack=%d", c.State(), len(v.Stack()))
	}
}

func TestSetTransform_DropsQueuedAnimation(t *testing.T) {
	v := New(800, Deferred())
	c := newController(t, v, "a", "b")
	card, _ := c.Deck().PeekTop()
	c.Dispatch(gesture.Event{Kind: gesture.EventStart, Point: gesture.Point{X: 10}, Target: card})
	c.Dispatch(gesture.Event{Kind: gesture.EventMove, Point: gesture.Point{X: 40}})
	c.Dispatch(gesture.Event{Kind: gesture.EventEnd})
	if v.Animating() != 1 {
		t.Fatalf("expected snap-back queued")
	}
	c.Dispatch(gesture.Event{Kind: gesture.EventStart, Point: gesture.Point{X: 10}, Target: card})
	if v.Animating() != 0 {
		t.Error("new drag must discard the snap-back")
	}
	if c.State() != gesture.Dragging {
		t.Errorf("state = %s", c.State())
	}
}

func TestSummaryView(t *testing.T) {
	v := New(800)
	c := newController(t, v, "a", "b", "c")
	c.Accept()
	c.Reject()
	c.Accept()
	acc, shown := v.Summary()
	if !shown || len(acc) != 2 {
		t.Fatalf("summary shown=%v accepted=%v", shown, acc)
	}
	if acc[0].URL != "c" || acc[1].URL != "a" {
		t.Errorf("summary order = %v", acc)
	}
	if v.Progress() != deck.DoneLabel {
		t.Errorf("progress = %q", v.Progress())
	}
}
