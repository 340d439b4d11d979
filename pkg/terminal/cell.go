// Package terminal maintains an in-memory VT-style screen: it wraps
// github.com/hinshun/vt10x and converts its cell grid into the
// CharacterCell/LineBuffer/ScreenGrid/Cursor types the rest of the
// pipeline consumes, reporting which rows changed after each write.
package terminal

import svgcolor "github.com/asciireel/svgcast/pkg/color"

// CharacterCell is the immutable per-column record. Every field is
// itself comparable, so two cells compare equal with ==.
type CharacterCell struct {
	Text          string
	Color         svgcolor.Color
	Background    svgcolor.Color
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
}

// blankCell is the cell an empty, untouched terminal position renders as.
// vt10x does not model strikethrough, so CharacterCells produced by this
// package always carry Strikethrough == false; later stages may still
// synthesize it by hand.
var blankCell = CharacterCell{
	Text:       " ",
	Color:      svgcolor.Color{Kind: svgcolor.Foreground},
	Background: svgcolor.Color{Kind: svgcolor.Background},
}

// LineBuffer is a sparse column->CharacterCell mapping; a missing key means
// a default blank cell at that position.
type LineBuffer map[int]CharacterCell

// Equal reports whether two LineBuffers hold the same sparse content.
func (lb LineBuffer) Equal(other LineBuffer) bool {
	if len(lb) != len(other) {
		return false
	}
	for col, cell := range lb {
		if otherCell, ok := other[col]; !ok || otherCell != cell {
			return false
		}
	}
	return true
}

// ScreenGrid maps row index (0..height-1) to LineBuffer.
type ScreenGrid map[int]LineBuffer

// Cursor is the terminal's cursor position and visibility.
type Cursor struct {
	Row, Col int
	Hidden   bool
}
