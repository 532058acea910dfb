// Package export turns a finished deck's accepted cards into artifacts
// that outlive the session: a PNG contact sheet, markdown, or clipboard text.
package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/kokistudios/swipe/internal/deck"
)

// SheetOptions controls the contact sheet layout. Zero fields take defaults.
type SheetOptions struct {
	Columns    int
	TileWidth  float64
	TileHeight float64
	FontSize   float64
}

func (o SheetOptions) withDefaults() SheetOptions {
	if o.Columns <= 0 {
		o.Columns = 3
	}
	if o.TileWidth <= 0 {
		o.TileWidth = 240
	}
	if o.TileHeight <= 0 {
		o.TileHeight = 150
	}
	if o.FontSize <= 0 {
		o.FontSize = 12
	}
	return o
}

const (
	sheetPadding = 24.0
	headerHeight = 48.0
)

// ContactSheet writes a PNG grid with one numbered tile per accepted
// card, in acceptance order.
func ContactSheet(path string, accepted []deck.Item, opts SheetOptions) error {
	opts = opts.withDefaults()

	rows := (len(accepted) + opts.Columns - 1) / opts.Columns
	cols := opts.Columns
	if len(accepted) < cols {
		cols = len(accepted)
	}
	if cols == 0 {
		cols = 1
	}
	width := int(sheetPadding*2 + float64(cols)*opts.TileWidth + float64(cols-1)*sheetPadding/2)
	height := int(sheetPadding*2 + headerHeight + float64(rows)*(opts.TileHeight+sheetPadding/2))

	face, err := loadFace(opts.FontSize)
	if err != nil {
		return err
	}
	headFace, err := loadFace(opts.FontSize * 1.6)
	if err != nil {
		return err
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetFontFace(headFace)
	dc.SetColor(color.Black)
	dc.DrawString(fmt.Sprintf("You liked %d %s!", len(accepted), plural(len(accepted))), sheetPadding, sheetPadding+opts.FontSize*1.6)

	dc.SetFontFace(face)
	for i, item := range accepted {
		col := i % opts.Columns
		row := i / opts.Columns
		x := sheetPadding + float64(col)*(opts.TileWidth+sheetPadding/2)
		y := sheetPadding + headerHeight + float64(row)*(opts.TileHeight+sheetPadding/2)
		drawTile(dc, i+1, item, x, y, opts)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func drawTile(dc *gg.Context, n int, item deck.Item, x, y float64, opts SheetOptions) {
	dc.SetColor(color.RGBA{R: 0xf4, G: 0xf1, B: 0xfb, A: 0xff})
	dc.DrawRoundedRectangle(x, y, opts.TileWidth, opts.TileHeight, 10)
	dc.Fill()

	dc.SetLineWidth(1.5)
	dc.SetColor(color.RGBA{R: 0x5f, G: 0x5f, B: 0xff, A: 0xff})
	dc.DrawRoundedRectangle(x, y, opts.TileWidth, opts.TileHeight, 10)
	dc.Stroke()

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(fmt.Sprintf("#%d", n), x+opts.TileWidth/2, y+opts.TileHeight/3, 0.5, 0.5)

	// URLs are long; wrap onto at most three lines inside the tile.
	lines := dc.WordWrap(strings.ReplaceAll(item.URL, "?", " ?"), opts.TileWidth-16)
	if len(lines) > 3 {
		lines = lines[:3]
	}
	for i, line := range lines {
		dc.DrawStringAnchored(line, x+opts.TileWidth/2, y+opts.TileHeight/2+float64(i+1)*opts.FontSize*1.3, 0.5, 0.5)
	}
}

func loadFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func plural(n int) string {
	if n == 1 {
		return "cat"
	}
	return "cats"
}

// URLList joins the accepted locators one per line.
func URLList(accepted []deck.Item) string {
	urls := make([]string, len(accepted))
	for i, it := range accepted {
		urls[i] = it.URL
	}
	return strings.Join(urls, "\n")
}

// CopyText writes text to the system clipboard.
func CopyText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// Markdown renders the summary as a markdown document.
func Markdown(accepted []deck.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# You liked %d %s!\n\n", len(accepted), plural(len(accepted)))
	if len(accepted) == 0 {
		b.WriteString("_Nothing caught your eye this time._\n")
		return b.String()
	}
	for i, it := range accepted {
		fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, it.ID, it.URL)
	}
	return b.String()
}
