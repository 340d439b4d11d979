package svgcompose

import (
	"sort"

	svgcolor "github.com/asciireel/svgcast/pkg/color"
	"github.com/asciireel/svgcast/pkg/terminal"
)

// bgRun is a maximal run of contiguous LineBuffer columns sharing a
// non-default background color.
type bgRun struct {
	startCol int
	cols     []int
	color    svgcolor.Color
}

// textRun is a maximal run of contiguous LineBuffer columns sharing
// identical text attributes.
type textRun struct {
	startCol int
	cols     []int
	text     string
	color    svgcolor.Color
	bold     bool
	italic   bool
	underline     bool
	strikethrough bool
}

func sortedColumns(lb terminal.LineBuffer) []int {
	cols := make([]int, 0, len(lb))
	for col := range lb {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// groupContiguous splits cols into maximal runs where consecutive indices
// are adjacent (col, col+1, ...) AND same(prev, next) holds; a gap in the
// sparse LineBuffer always breaks a run.
func groupContiguous(cols []int, same func(a, b int) bool) [][]int {
	var groups [][]int
	var cur []int
	for i, col := range cols {
		cur = append(cur, col)
		last := i == len(cols)-1
		if last || cols[i+1] != col+1 || !same(col, cols[i+1]) {
			groups = append(groups, cur)
			cur = nil
		}
	}
	return groups
}

func runVisualWidth(lb terminal.LineBuffer, cols []int) int {
	width := 0
	for _, c := range cols {
		width += visualWidth(lb[c].Text)
	}
	if width == 0 {
		return len(cols)
	}
	return width
}

// backgroundRuns returns every maximal same-background run in lb whose
// color is not the theme's default Background.
func backgroundRuns(lb terminal.LineBuffer) []bgRun {
	cols := sortedColumns(lb)
	groups := groupContiguous(cols, func(a, b int) bool {
		return lb[a].Background == lb[b].Background
	})

	runs := make([]bgRun, 0, len(groups))
	for _, g := range groups {
		bg := lb[g[0]].Background
		if bg.Kind == svgcolor.Background {
			continue
		}
		runs = append(runs, bgRun{startCol: g[0], cols: g, color: bg})
	}
	return runs
}

// textRuns returns every maximal same-attribute run in lb.
func textRuns(lb terminal.LineBuffer) []textRun {
	cols := sortedColumns(lb)
	groups := groupContiguous(cols, func(a, b int) bool {
		ca, cb := lb[a], lb[b]
		return ca.Color == cb.Color && ca.Bold == cb.Bold && ca.Italic == cb.Italic &&
			ca.Underline == cb.Underline && ca.Strikethrough == cb.Strikethrough
	})

	runs := make([]textRun, 0, len(groups))
	for _, g := range groups {
		var text string
		for _, c := range g {
			text += lb[c].Text
		}
		first := lb[g[0]]
		runs = append(runs, textRun{
			startCol:      g[0],
			cols:          g,
			text:          text,
			color:         first.Color,
			bold:          first.Bold,
			italic:        first.Italic,
			underline:     first.Underline,
			strikethrough: first.Strikethrough,
		})
	}
	return runs
}
