package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdownString renders md for the terminal, or returns it as is
// when rendering fails.
func RenderMarkdownString(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func RenderMarkdown(md string) {
	fmt.Fprint(os.Stderr, RenderMarkdownString(md))
}
