package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kokistudios/swipe/internal/deck"
	"github.com/kokistudios/swipe/internal/gesture"
	"github.com/kokistudios/swipe/internal/headless"
)

// viewportWidth is the nominal width reported by the headless view. Only
// explicit controls reach this deck, so it never feeds a threshold.
const viewportWidth = 1024

// Server exposes one swipe deck to MCP clients through explicit controls.
type Server struct {
	mu     sync.Mutex
	ctrl   *gesture.Controller
	view   *headless.View
	server *mcp.Server
}

// NewServer creates a swipe MCP server around d. Call Start (or Run) to
// provision the first deck.
func NewServer(d *deck.Deck, cfg gesture.Config, version string, logger *log.Logger) (*Server, error) {
	view := headless.New(viewportWidth)
	ctrl, err := gesture.NewController(d, view, cfg, gesture.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	s := &Server{ctrl: ctrl, view: view}

	impl := &mcp.Implementation{
		Name:    "swipe",
		Version: version,
	}

	s.server = mcp.NewServer(impl, nil)
	s.registerTools()

	return s, nil
}

// Start provisions the deck.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Start(ctx)
}

// Run provisions the deck and serves MCP on stdio until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "deck_status",
		Description: "Show the swipe deck: state, progress label, the card on top, and the cards liked so far " +
			"in the order they were liked. Call this before deck_accept or deck_reject to see which card is on top.",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "deck_accept",
		Description: "Like the card on top of the deck. Pass the card id from deck_status to make sure the " +
			"decision lands on the card you looked at; a stale id is ignored.",
	}, s.handleAccept)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deck_reject",
		Description: "Pass on the card on top of the deck. Takes the same optional id guard as deck_accept.",
	}, s.handleReject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "deck_restart",
		Description: "Deal a fresh deck with new cards. Only available once every card has been decided " +
			"and the summary is showing.",
	}, s.handleRestart)
}

// CardSummary identifies one card.
type CardSummary struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func summarize(it deck.Item) CardSummary { return CardSummary{ID: it.ID, URL: it.URL} }

// DeckStatus is the output of deck_status and part of every other result.
type DeckStatus struct {
	State     string        `json:"state"`
	Progress  string        `json:"progress"`
	Remaining int           `json:"remaining"`
	Total     int           `json:"total"`
	Top       *CardSummary  `json:"top,omitempty"`
	Accepted  []CardSummary `json:"accepted"`
}

// StatusArgs defines the input for deck_status.
type StatusArgs struct{}

// DecideArgs defines the input for deck_accept and deck_reject.
type DecideArgs struct {
	ID string `json:"id,omitempty" jsonschema:"Card id expected on top of the deck (optional). The decision is skipped if another card is on top."`
}

// DecideResult is the output of deck_accept and deck_reject.
type DecideResult struct {
	Committed bool         `json:"committed"`
	Decision  string       `json:"decision"`
	Card      *CardSummary `json:"card,omitempty"`
	Status    DeckStatus   `json:"status"`
	Message   string       `json:"message,omitempty"`
}

// RestartArgs defines the input for deck_restart.
type RestartArgs struct{}

// RestartResult is the output of deck_restart.
type RestartResult struct {
	Restarted bool       `json:"restarted"`
	Status    DeckStatus `json:"status"`
	Message   string     `json:"message,omitempty"`
}

func (s *Server) status() DeckStatus {
	d := s.ctrl.Deck()
	out := DeckStatus{
		State:     s.ctrl.State().String(),
		Progress:  s.view.Progress(),
		Remaining: d.Remaining(),
		Total:     d.Total(),
		Accepted:  []CardSummary{},
	}
	if top, ok := d.PeekTop(); ok {
		c := summarize(top)
		out.Top = &c
	}
	for _, it := range d.Accepted() {
		out.Accepted = append(out.Accepted, summarize(it))
	}
	return out
}

func (s *Server) handleStatus(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nil, s.status(), nil
}

func (s *Server) handleAccept(ctx context.Context, req *mcp.CallToolRequest, args DecideArgs) (*mcp.CallToolResult, any, error) {
	return nil, s.decide(deck.Accept, args.ID), nil
}

func (s *Server) handleReject(ctx context.Context, req *mcp.CallToolRequest, args DecideArgs) (*mcp.CallToolResult, any, error) {
	return nil, s.decide(deck.Reject, args.ID), nil
}

func (s *Server) decide(d deck.Decision, expect string) DecideResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := DecideResult{Decision: d.String()}
	top, ok := s.ctrl.Deck().PeekTop()
	switch {
	case !ok:
		out.Message = "No cards left. Use deck_restart for a fresh deck."
	case expect != "" && expect != top.ID:
		out.Message = fmt.Sprintf("Card %s is no longer on top; call deck_status and try again.", expect)
	default:
		var item deck.Item
		if d == deck.Accept {
			item, out.Committed = s.ctrl.Accept()
		} else {
			item, out.Committed = s.ctrl.Reject()
		}
		if out.Committed {
			c := summarize(item)
			out.Card = &c
		} else {
			out.Message = fmt.Sprintf("Deck is busy (%s); nothing was decided.", s.ctrl.State())
		}
	}
	out.Status = s.status()
	return out
}

func (s *Server) handleRestart(ctx context.Context, req *mcp.CallToolRequest, args RestartArgs) (*mcp.CallToolResult, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl.State() != gesture.Summary {
		return nil, RestartResult{
			Status:  s.status(),
			Message: "Restart is only available from the summary, after every card has been decided.",
		}, nil
	}
	if err := s.ctrl.Restart(ctx); err != nil {
		return nil, nil, fmt.Errorf("restart failed: %w", err)
	}
	return nil, RestartResult{Restarted: true, Status: s.status()}, nil
}
