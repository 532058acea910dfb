package deck

import (
	"context"
	"fmt"
)

// Decision is the irrevocable verdict recorded for the top card.
type Decision int

const (
	Reject Decision = iota
	Accept
)

func (d Decision) String() string {
	if d == Accept {
		return "accept"
	}
	return "reject"
}

// Item is an opaque reference to a card's content.
type Item struct {
	ID  string `json:"id" yaml:"id"`
	URL string `json:"url" yaml:"url"`
}

// IsZero reports whether the item carries no identity.
func (i Item) IsZero() bool { return i.ID == "" && i.URL == "" }

// Provisioner supplies fresh card content. Each call must return
// distinct items so a restarted deck shows new content.
type Provisioner interface {
	Provision(ctx context.Context, count int) ([]Item, error)
}

// DoneLabel is the progress label once every card has been decided.
const DoneLabel = "Done"

// Deck holds the pending stack and the accepted list for one widget.
// pending is a stack: its last element is the top card.
type Deck struct {
	provisioner Provisioner
	total       int
	pending     []Item
	accepted    []Item
}

// New creates an empty deck that provisions total cards per Initialize.
func New(p Provisioner, total int) (*Deck, error) {
	if p == nil {
		return nil, fmt.Errorf("deck requires a provisioner")
	}
	if total < 1 {
		return nil, fmt.Errorf("total cards must be at least 1, got %d", total)
	}
	return &Deck{provisioner: p, total: total}, nil
}

// Initialize replaces the pending stack with freshly provisioned items
// and clears the accepted list. On error the previous content is kept.
func (d *Deck) Initialize(ctx context.Context) error {
	items, err := d.provisioner.Provision(ctx, d.total)
	if err != nil {
		return fmt.Errorf("provision %d cards: %w", d.total, err)
	}
	if len(items) != d.total {
		return fmt.Errorf("provisioner returned %d cards, want %d", len(items), d.total)
	}
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			return fmt.Errorf("provisioner returned duplicate card %q", it.ID)
		}
		seen[it.ID] = true
	}
	d.pending = append(make([]Item, 0, len(items)), items...)
	d.accepted = nil
	return nil
}

// PeekTop returns the top card without removing it.
func (d *Deck) PeekTop() (Item, bool) {
	if len(d.pending) == 0 {
		return Item{}, false
	}
	return d.pending[len(d.pending)-1], true
}

// CommitTop removes the top card and records it when accepted.
// It is the only mutator of the deck besides Initialize.
func (d *Deck) CommitTop(decision Decision) (Item, error) {
	if len(d.pending) == 0 {
		return Item{}, &PreconditionError{Op: "commit " + decision.String(), Reason: "deck is empty"}
	}
	last := len(d.pending) - 1
	top := d.pending[last]
	d.pending = d.pending[:last]
	if decision == Accept {
		d.accepted = append(d.accepted, top)
	}
	return top, nil
}

func (d *Deck) Remaining() int { return len(d.pending) }

func (d *Deck) Total() int { return d.total }

// Exhausted reports whether every card has been decided.
func (d *Deck) Exhausted() bool { return len(d.pending) == 0 }

// Pending returns a copy of the stack, bottom card first.
func (d *Deck) Pending() []Item {
	return append([]Item(nil), d.pending...)
}

// Accepted returns a copy of the accepted items in acceptance order.
func (d *Deck) Accepted() []Item {
	return append([]Item(nil), d.accepted...)
}

// ProgressLabel counts the card in view as seen: a fresh deck of ten
// reads "1 / 10" and the last card reads "10 / 10".
func (d *Deck) ProgressLabel() string {
	if len(d.pending) == 0 {
		return DoneLabel
	}
	viewed := d.total - len(d.pending) + 1
	if viewed > d.total {
		viewed = d.total
	}
	return fmt.Sprintf("%d / %d", viewed, d.total)
}
