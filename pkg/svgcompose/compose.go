// Package svgcompose turns a stream of lineevent.LineEvents (or a single
// terminal.ScreenGrid snapshot, for still frames) into SVG fragments:
// background rectangles, deduplicated text groups, and either a chained
// SMIL "display" animation or a WAAPI keyframe array, ready for
// pkg/template to graft into a template's screen element.
package svgcompose

import (
	"encoding/xml"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	svgcolor "github.com/asciireel/svgcast/pkg/color"
	"github.com/asciireel/svgcast/pkg/lineevent"
	"github.com/asciireel/svgcast/pkg/terminal"
)

// Config is the compositor's cell geometry in SVG user units.
type Config struct {
	CellWidth  float64
	CellHeight float64
}

// DefaultConfig returns the standard 8x17 cell size.
func DefaultConfig() Config {
	return Config{CellWidth: 8, CellHeight: 17}
}

func (c Config) withDefaults() Config {
	if c.CellWidth == 0 {
		c.CellWidth = 8
	}
	if c.CellHeight == 0 {
		c.CellHeight = 17
	}
	return c
}

// Composer renders LineEvents and grid snapshots into SVG fragments,
// sharing one ColorCatalog (caller-owned) and one content-addressed
// definition table for the lifetime of a single render call.
type Composer struct {
	cfg     Config
	catalog *svgcolor.ColorCatalog
	defs    *definitionTable
}

// NewComposer returns a Composer bound to catalog, which the caller must
// keep using for the whole render so color classes stay stable.
func NewComposer(catalog *svgcolor.ColorCatalog, cfg Config) *Composer {
	return &Composer{cfg: cfg.withDefaults(), catalog: catalog, defs: newDefinitionTable()}
}

// Defs returns the accumulated definitions in first-seen order, ready for
// a <defs> block.
func (c *Composer) Defs() []*Element {
	return c.defs.defs
}

// renderLine builds the background rectangles and the <use> reference for
// one row's content, interning the row's text group into the shared
// definition table.
func (c *Composer) renderLine(row int, lb terminal.LineBuffer) (rects []*Element, use *Element) {
	y := float64(row) * c.cfg.CellHeight

	for _, run := range backgroundRuns(lb) {
		attr, value := c.catalog.Encode(run.color)
		width := float64(runVisualWidth(lb, run.cols)) * c.cfg.CellWidth
		rects = append(rects, NewElement("rect",
			Attr("x", numAttr(float64(run.startCol)*c.cfg.CellWidth)),
			Attr("y", numAttr(y)),
			Attr("width", numAttr(width)),
			Attr("height", numAttr(c.cfg.CellHeight)),
			Attr(attr, value),
		))
	}

	textGroup := NewElement("g")
	for _, run := range textRuns(lb) {
		textGroup.Add(c.renderTextRun(lb, run))
	}

	id := c.defs.intern(textGroup)
	use = NewElement("use", Attr("xlink:href", "#"+id), Attr("y", numAttr(y)))

	return rects, use
}

// renderTextRun builds one <text> element for a maximal same-attribute
// column run.
func (c *Composer) renderTextRun(lb terminal.LineBuffer, run textRun) *Element {
	width := float64(runVisualWidth(lb, run.cols)) * c.cfg.CellWidth

	attrs := []xml.Attr{
		Attr("x", numAttr(float64(run.startCol)*c.cfg.CellWidth)),
		Attr("textLength", numAttr(width)),
	}

	colorAttr, colorValue := c.catalog.Encode(run.color)
	attrs = append(attrs, Attr(colorAttr, colorValue))

	if run.bold {
		attrs = append(attrs, Attr("font-weight", "bold"))
	}
	if run.italic {
		attrs = append(attrs, Attr("font-style", "italic"))
	}

	var decorations []string
	if run.underline {
		decorations = append(decorations, "underline")
	}
	if run.strikethrough {
		decorations = append(decorations, "line-through")
	}
	if len(decorations) > 0 {
		attrs = append(attrs, Attr("text-decoration", strings.Join(decorations, " ")))
	}

	el := NewElement("text", attrs...)
	el.Text = run.text
	return el
}

// groupByTime batches events sharing an equal (TimeMS, DurationMS) pair
// into a single co-timed SVG group, sorting first by (time, duration,
// row) ascending.
func groupByTime(events []lineevent.LineEvent) [][]lineevent.LineEvent {
	sorted := make([]lineevent.LineEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TimeMS != b.TimeMS {
			return a.TimeMS < b.TimeMS
		}
		if a.DurationMS != b.DurationMS {
			return a.DurationMS < b.DurationMS
		}
		return a.Row < b.Row
	})

	var groups [][]lineevent.LineEvent
	for _, ev := range sorted {
		if n := len(groups); n > 0 {
			head := groups[n-1][0]
			if head.TimeMS == ev.TimeMS && head.DurationMS == ev.DurationMS {
				groups[n-1] = append(groups[n-1], ev)
				continue
			}
		}
		groups = append(groups, []lineevent.LineEvent{ev})
	}
	return groups
}

// Animation is the CSS/SMIL animation path's output: the single
// "screen_view" group to graft into the template's screen element, plus
// the total duration (last event's time+duration), which the generated
// stylesheet exposes as --animation-duration.
type Animation struct {
	ScreenView *Element
	DurationMS int64
}

// AnimateCSS renders one display:none group per co-timed batch of
// LineEvents, each revealed by an SMIL animate chained through the
// "anim_last" sentinel so the whole sequence loops forever. The sentinel
// id is stamped onto the final animate only once iteration completes,
// which is what lets earlier begin attributes reference it.
func (c *Composer) AnimateCSS(events []lineevent.LineEvent) Animation {
	groups := groupByTime(events)
	screen := NewElement("g", Attr("id", "screen_view"))

	if len(groups) == 0 {
		return Animation{ScreenView: screen}
	}

	var lastAnimate *Element
	var duration int64
	for _, grp := range groups {
		t, d := grp[0].TimeMS, grp[0].DurationMS
		frame := NewElement("g", Attr("display", "none"))

		for _, ev := range grp {
			rects, use := c.renderLine(ev.Row, ev.Content)
			for _, r := range rects {
				frame.Add(r)
			}
			frame.Add(use)
		}

		begin := fmt.Sprintf("%dms; anim_last.end+%dms", t, t)
		if t == 0 {
			begin = "0ms; anim_last.end"
		}

		animate := NewElement("animate",
			Attr("attributeName", "display"),
			Attr("from", "inline"),
			Attr("to", "inline"),
			Attr("begin", begin),
			Attr("dur", fmt.Sprintf("%dms", d)),
		)
		frame.Add(animate)
		screen.Add(frame)

		lastAnimate = animate
		if end := t + d; end > duration {
			duration = end
		}
	}

	lastAnimate.Attrs = append(lastAnimate.Attrs, Attr("id", "anim_last"))

	return Animation{ScreenView: screen, DurationMS: duration}
}

// Still renders one full ScreenGrid snapshot with no animation element
// attached.
func (c *Composer) Still(grid terminal.ScreenGrid, height int) *Element {
	g := NewElement("g")
	for row := 0; row < height; row++ {
		lb := grid[row]
		if len(lb) == 0 {
			continue
		}
		rects, use := c.renderLine(row, lb)
		for _, r := range rects {
			g.Add(r)
		}
		g.Add(use)
	}
	return g
}

// numAttr formats a user-unit coordinate, using an integer literal when
// the value has no fractional part.
func numAttr(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
