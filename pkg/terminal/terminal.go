package terminal

import (
	"image/color"

	"github.com/hinshun/vt10x"

	svgcolor "github.com/asciireel/svgcast/pkg/color"
)

// Mode bits read off a vt10x Glyph, matching the attribute layout vt10x
// inherited from st (reverse, underline, bold, gfx, italic, blink, wrap
// in ascending bit order). Only the decoration bits are read here:
// vt10x applies bold brightening and reverse-video to the stored glyph's
// FG/BG at write time, so glyph colors arrive already resolved.
const (
	modeUnderline = 1 << 1
	modeBold      = 1 << 2
	modeItalic    = 1 << 4
)

// Emulator maintains a fixed-size VT-style screen and reports, for each
// fed chunk, the rows that changed.
type Emulator struct {
	term   vt10x.Terminal
	width  int
	height int

	prev    ScreenGrid
	cursor  Cursor
	hasPrev bool
}

// New creates an Emulator with a fixed (width, height) in cells. Both must
// be positive, or a GeometryError is returned.
func New(width, height int) (*Emulator, error) {
	if width <= 0 || height <= 0 {
		return nil, &GeometryError{Width: width, Height: height}
	}
	return &Emulator{
		term:   vt10x.New(vt10x.WithSize(width, height)),
		width:  width,
		height: height,
		cursor: Cursor{Hidden: true},
	}, nil
}

// Width returns the emulator's fixed column count.
func (e *Emulator) Width() int { return e.width }

// Height returns the emulator's fixed row count.
func (e *Emulator) Height() int { return e.height }

// Feed writes chunk into the emulator and returns the LineBuffer for every
// row the write or a cursor move/visibility change touched, plus the
// emulator's new cursor. Cursor overlays are applied to the returned
// buffers but never persisted into the screen state.
func (e *Emulator) Feed(chunk []byte) (dirty map[int]LineBuffer, cursor Cursor) {
	_, _ = e.term.Write(chunk)

	grid := e.snapshot()
	newCursor := e.readCursor()

	rows := DirtyRows(e.prev, grid, e.height, e.cursor, newCursor)

	dirty = make(map[int]LineBuffer, len(rows))
	for row := range rows {
		dirty[row] = CursorOverlay(grid[row], row, newCursor)
	}

	e.prev = grid
	e.cursor = newCursor

	return dirty, newCursor
}

// Screen returns the full current grid with the cursor overlay applied,
// for still frames and the stacked per-time views of the WAAPI layout.
// The returned grid is a fresh snapshot; mutating it does not affect the
// emulator.
func (e *Emulator) Screen() ScreenGrid {
	grid := e.snapshot()
	if !e.cursor.Hidden {
		grid[e.cursor.Row] = CursorOverlay(grid[e.cursor.Row], e.cursor.Row, e.cursor)
	}
	return grid
}

func (e *Emulator) readCursor() Cursor {
	c := e.term.Cursor()
	return Cursor{Row: c.Y, Col: c.X, Hidden: !e.term.CursorVisible()}
}

func (e *Emulator) snapshot() ScreenGrid {
	grid := make(ScreenGrid, e.height)
	for row := 0; row < e.height; row++ {
		lb := make(LineBuffer)
		for col := 0; col < e.width; col++ {
			cell := convertCell(e.term.Cell(col, row))
			if cell != blankCell {
				lb[col] = cell
			}
		}
		if len(lb) > 0 {
			grid[row] = lb
		}
	}
	return grid
}

// convertCell turns a vt10x glyph into a CharacterCell. The glyph's FG
// and BG are taken verbatim: vt10x has already brightened basic colors
// on bold and exchanged the pair on reverse-video when it wrote the
// glyph, so deriving either again from the mode bits would apply the
// attribute twice. Mode feeds only the decoration flags.
func convertCell(g vt10x.Glyph) CharacterCell {
	text := string(g.Char)
	if g.Char == 0 {
		text = " "
	}

	return CharacterCell{
		Text:       text,
		Color:      convertColor(g.FG),
		Background: convertColor(g.BG),
		Bold:       g.Mode&modeBold != 0,
		Italic:     g.Mode&modeItalic != 0,
		Underline:  g.Mode&modeUnderline != 0,
	}
}

// convertColor dispatches over vt10x.Color's ranges: default sentinel,
// 256-color slot, 24-bit literal.
func convertColor(c vt10x.Color) svgcolor.Color {
	switch {
	case c == vt10x.DefaultFG:
		return svgcolor.Color{Kind: svgcolor.Foreground}
	case c == vt10x.DefaultBG:
		return svgcolor.Color{Kind: svgcolor.Background}
	case c < 256:
		return svgcolor.Color{Kind: svgcolor.Indexed, Index: uint8(c)}
	default:
		r := uint8((c >> 16) & 0xFF)
		g := uint8((c >> 8) & 0xFF)
		b := uint8(c & 0xFF)
		return svgcolor.Color{Kind: svgcolor.Rgb, RGBA: color.RGBA{R: r, G: g, B: b, A: 255}}
	}
}
