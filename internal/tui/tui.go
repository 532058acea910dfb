// Package tui hosts a swipe deck in the terminal: mouse drags and keys
// become gesture input, and the controller's render calls become frames.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/kokistudios/swipe/internal/deck"
	"github.com/kokistudios/swipe/internal/export"
	"github.com/kokistudios/swipe/internal/gesture"
)

const frameInterval = 16 * time.Millisecond

const (
	deckHelp    = "drag the card • ←/h nope • →/l like • q quit"
	summaryHelp = "r restart • e export png • c copy urls • q quit"
)

// Options configures a Model.
type Options struct {
	Gesture   gesture.Config
	ExportDir string
	Clock     clockwork.Clock
	Logger    *log.Logger
	// Copy replaces the system clipboard writer, mainly for tests.
	Copy func(text string) error
}

// Model is the bubbletea model for one deck.
type Model struct {
	ctx       context.Context
	ctrl      *gesture.Controller
	screen    *screen
	clock     clockwork.Clock
	logger    *log.Logger
	exportDir string
	copy      func(string) error

	ticking bool
	status  string
	err     error
}

// New builds a model around d. The deck is populated by Start.
func New(d *deck.Deck, opts Options) (*Model, error) {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = export.CopyText
	}
	sc := newScreen(clock)
	ctrl, err := gesture.NewController(d, sc, opts.Gesture, gesture.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Model{
		ctx:       context.Background(),
		ctrl:      ctrl,
		screen:    sc,
		clock:     clock,
		logger:    logger,
		exportDir: opts.ExportDir,
		copy:      copyFn,
	}, nil
}

// Start provisions the first deck. A failure here is fatal for the shell.
func (m *Model) Start(ctx context.Context) error {
	m.ctx = ctx
	return m.ctrl.Start(ctx)
}

// Controller exposes the state machine driving this model.
func (m *Model) Controller() *gesture.Controller { return m.ctrl }

// Err reports an error that ended the program, such as a failed restart.
func (m *Model) Err() error { return m.err }

func (m *Model) Init() tea.Cmd { return nil }

type frameMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.screen.cols = msg.Width
		m.screen.rows = msg.Height
	case frameMsg:
		m.ticking = false
		m.screen.advance()
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}
	if m.screen.animating() && !m.ticking {
		m.ticking = true
		cmd = tea.Batch(cmd, frame())
	}
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := gesture.Point{X: float64(msg.X * cellWidth), Y: float64(msg.Y * cellHeight)}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.ctrl.Dispatch(gesture.Event{
				Kind:   gesture.EventStart,
				Device: gesture.Pointer,
				Point:  p,
				Target: m.screen.hit(msg.X, msg.Y),
			})
		case tea.MouseButtonWheelUp:
			m.scroll(-1)
		case tea.MouseButtonWheelDown:
			m.scroll(1)
		}
	case tea.MouseActionMotion:
		m.ctrl.Dispatch(gesture.Event{Kind: gesture.EventMove, Device: gesture.Pointer, Point: p})
	case tea.MouseActionRelease:
		m.ctrl.Dispatch(gesture.Event{Kind: gesture.EventEnd, Device: gesture.Pointer, Point: p})
	}
}

// scroll moves the summary list unless a drag holds the scroll lock.
func (m *Model) scroll(delta int) {
	if m.screen.scrollLock || !m.screen.inSummary {
		return
	}
	next := m.screen.scroll + delta
	if next < 0 || next >= len(m.screen.summary) {
		return
	}
	m.screen.scroll = next
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return tea.Quit
	case "right", "l":
		m.status = ""
		m.ctrl.Accept()
	case "left", "h":
		m.status = ""
		m.ctrl.Reject()
	case "r":
		if m.ctrl.State() != gesture.Summary {
			return nil
		}
		if err := m.ctrl.Restart(m.ctx); err != nil {
			m.err = fmt.Errorf("restart: %w", err)
			return tea.Quit
		}
		m.status = ""
	case "e":
		m.exportSummary()
	case "c":
		m.copySummary()
	case "up", "k":
		m.scroll(-1)
	case "down", "j":
		m.scroll(1)
	}
	return nil
}

func (m *Model) exportSummary() {
	if m.ctrl.State() != gesture.Summary {
		return
	}
	name := fmt.Sprintf("swipe-summary-%s.png", m.clock.Now().Format("20060102-150405"))
	path := filepath.Join(m.exportDir, name)
	if err := export.ContactSheet(path, m.ctrl.Deck().Accepted(), export.SheetOptions{}); err != nil {
		m.logger.Error("export failed", "path", path, "err", err)
		m.status = "export failed: " + err.Error()
		return
	}
	m.logger.Info("summary exported", "path", path)
	m.status = "saved " + path
}

func (m *Model) copySummary() {
	if m.ctrl.State() != gesture.Summary {
		return
	}
	accepted := m.ctrl.Deck().Accepted()
	if err := m.copy(export.URLList(accepted)); err != nil {
		m.logger.Error("clipboard write failed", "err", err)
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("copied %d urls", len(accepted))
}

func (m *Model) View() string {
	help := deckHelp
	if m.screen.inSummary {
		help = summaryHelp
	}
	return m.screen.render(m.status, help)
}

// Run shows the model full screen until the user quits.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}
