package terminal

import svgcolor "github.com/asciireel/svgcast/pkg/color"

// DirtyRows compares prev and curr row by row (vt10x exposes no public
// dirty-row accessor, so the dirty set is recovered by diffing two full
// snapshots) and adds both the old and new cursor row when the cursor
// moved or its visibility toggled, skipping a row on either side of the
// move if that cursor was hidden.
func DirtyRows(prev, curr ScreenGrid, height int, prevCursor, newCursor Cursor) map[int]bool {
	dirty := make(map[int]bool)

	for row := 0; row < height; row++ {
		if !prev[row].Equal(curr[row]) {
			dirty[row] = true
		}
	}

	if prevCursor != newCursor {
		if !newCursor.Hidden {
			dirty[newCursor.Row] = true
		}
		if !prevCursor.Hidden {
			dirty[prevCursor.Row] = true
		}
	}

	return dirty
}

// CursorOverlay returns, when the cursor is visible and sits on row, a
// copy of lb with a synthetic reverse-video CharacterCell spliced in at
// the cursor's column. lb is returned unchanged otherwise. The overlay
// is synthesized per frame and never persisted into the screen state.
func CursorOverlay(lb LineBuffer, row int, cur Cursor) LineBuffer {
	if cur.Hidden || cur.Row != row {
		return lb
	}

	out := make(LineBuffer, len(lb)+1)
	for col, cell := range lb {
		out[col] = cell
	}

	under, ok := out[cur.Col]
	if !ok {
		under = blankCell
	}

	fg, bg := svgcolor.Swap(under.Color, under.Background)
	out[cur.Col] = CharacterCell{
		Text:          under.Text,
		Color:         fg,
		Background:    bg,
		Bold:          under.Bold,
		Italic:        under.Italic,
		Underline:     under.Underline,
		Strikethrough: under.Strikethrough,
	}

	return out
}
