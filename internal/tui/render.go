package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kokistudios/swipe/internal/deck"
	"github.com/kokistudios/swipe/internal/gesture"
)

const (
	cardHeight   = 9
	maxCardWidth = 44
	maxDepth     = 3 // cards drawn behind the top one
	headerRows   = 3 // title line, blank line, badge line
)

var catArt = []string{
	` /\_/\ `,
	`( o.o )`,
	` > ^ < `,
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	progressStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	cardStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	edgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headlineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

// cardRect is the resting position of the top card in cells.
type cardRect struct {
	x, y, w, h int
}

func (r cardRect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (s *screen) cardRect() cardRect {
	w := s.cols - 4
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < 12 {
		w = 12
	}
	x := (s.cols - w) / 2
	if x < 0 {
		x = 0
	}
	return cardRect{x: x, y: headerRows, w: w, h: cardHeight}
}

// hit returns the card under the cell (x, y). Only the top card can be hit.
func (s *screen) hit(x, y int) deck.Item {
	top, ok := s.top()
	if !ok {
		return deck.Item{}
	}
	r := s.cardRect()
	t := s.transforms[top.ID]
	r.x += int(math.Round(t.TranslateX / cellWidth))
	if !r.contains(x, y) {
		return deck.Item{}
	}
	return top
}

func (s *screen) render(status, help string) string {
	var b strings.Builder
	b.WriteString(s.header())
	b.WriteString("\n\n")
	if s.inSummary {
		b.WriteString(s.renderSummary())
	} else {
		b.WriteString(s.renderStack())
	}
	b.WriteString("\n")
	if status != "" {
		b.WriteString(statusStyle.Render(status) + "\n")
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (s *screen) header() string {
	title := titleStyle.Render("swipe")
	progress := progressStyle.Render(s.progress)
	gap := s.cols - lipgloss.Width(title) - lipgloss.Width(progress)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + progress
}

func (s *screen) renderStack() string {
	top, ok := s.top()
	if !ok {
		return "\n"
	}
	r := s.cardRect()
	var b strings.Builder
	b.WriteString(s.badges(s.affordance[top.ID], r))
	b.WriteString("\n")

	t := s.transforms[top.ID]
	position := len(s.stack)
	lines := cardLines(top, r.w, r.h, position)
	shift := int(math.Round(t.TranslateX / cellWidth))
	for i, line := range lines {
		offset := r.x + shift + shear(i, r.h, t.RotateDeg)
		b.WriteString(cardStyle.Render(place(line, offset, s.cols)))
		b.WriteString("\n")
	}

	depth := len(s.stack) - 1
	if depth > maxDepth {
		depth = maxDepth
	}
	for d := 1; d <= depth; d++ {
		w := r.w - 2*d
		edge := "╰" + strings.Repeat("─", w-2) + "╯"
		b.WriteString(edgeStyle.Render(place(edge, r.x+d, s.cols)))
		b.WriteString("\n")
	}
	return b.String()
}

// badges draws the NOPE and LIKE indicators above the card with a
// brightness that follows the affordance intensity.
func (s *screen) badges(a gesture.Affordance, r cardRect) string {
	nope := lipgloss.NewStyle().Bold(a.Reject > 0).Foreground(intensityColor(a.Reject, 196)).Render("✗ NOPE")
	like := lipgloss.NewStyle().Bold(a.Like > 0).Foreground(intensityColor(a.Like, 46)).Render("LIKE ♥")
	gap := r.w - lipgloss.Width(nope) - lipgloss.Width(like)
	if gap < 1 {
		gap = 1
	}
	return strings.Repeat(" ", r.x) + nope + strings.Repeat(" ", gap) + like
}

// intensityColor fades from a dim grey to the given 256-colour code.
func intensityColor(intensity float64, full int) lipgloss.Color {
	switch {
	case intensity >= 0.75:
		return lipgloss.Color(fmt.Sprint(full))
	case intensity >= 0.4:
		return lipgloss.Color("250")
	case intensity > 0:
		return lipgloss.Color("245")
	default:
		return lipgloss.Color("238")
	}
}

// cardLines builds the plain text box for a card.
func cardLines(item deck.Item, w, h, position int) []string {
	inner := w - 2
	lines := make([]string, 0, h)
	lines = append(lines, "╭"+strings.Repeat("─", inner)+"╮")
	body := []string{
		fmt.Sprintf("#%d", position),
		"",
	}
	body = append(body, catArt...)
	body = append(body, "", truncate(item.URL, inner-2))
	for len(body) < h-2 {
		body = append(body, "")
	}
	for _, l := range body[:h-2] {
		lines = append(lines, "│"+center(l, inner)+"│")
	}
	lines = append(lines, "╰"+strings.Repeat("─", inner)+"╯")
	return lines
}

// shear approximates rotation by sliding rows apart. Cells are about
// twice as tall as wide, hence the factor of two.
func shear(row, height int, deg float64) int {
	mid := float64(height-1) / 2
	return int(math.Round((mid - float64(row)) * math.Tan(deg*math.Pi/180) * 2))
}

// place positions line at column x and clips it to the screen width.
func place(line string, x, cols int) string {
	runes := []rune(line)
	if x < 0 {
		if -x >= len(runes) {
			return ""
		}
		runes = runes[-x:]
		x = 0
	}
	if x >= cols {
		return ""
	}
	if x+len(runes) > cols {
		runes = runes[:cols-x]
	}
	return strings.Repeat(" ", x) + string(runes)
}

func center(s string, w int) string {
	n := len([]rune(s))
	if n >= w {
		return string([]rune(s)[:w])
	}
	left := (w - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-n-left)
}

func truncate(s string, w int) string {
	r := []rune(s)
	if w <= 0 {
		return ""
	}
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}

func (s *screen) renderSummary() string {
	var b strings.Builder
	b.WriteString(headlineStyle.Render(Headline(len(s.summary))))
	b.WriteString("\n\n")
	if len(s.summary) == 0 {
		b.WriteString(helpStyle.Render("  Nothing caught your eye this time."))
		b.WriteString("\n")
		return b.String()
	}
	visible := s.rows - headerRows - 6
	if visible < 1 {
		visible = 1
	}
	start := s.scroll
	if start > len(s.summary)-1 {
		start = len(s.summary) - 1
	}
	end := start + visible
	if end > len(s.summary) {
		end = len(s.summary)
	}
	for i := start; i < end; i++ {
		fmt.Fprintf(&b, "  %2d. %s\n", i+1, truncate(s.summary[i].URL, s.cols-8))
	}
	return b.String()
}

// Headline is the summary title for n liked cards.
func Headline(n int) string {
	noun := "cats"
	if n == 1 {
		noun = "cat"
	}
	return fmt.Sprintf("😻 You liked %d %s!", n, noun)
}
