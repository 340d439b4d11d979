package svgcompose

import (
	"fmt"

	"github.com/asciireel/svgcast/pkg/terminal"
)

// WaapiView is one distinct-time full-screen snapshot to stack vertically
// in the WAAPI/JS-driven layout.
type WaapiView struct {
	TimeMS int64
	Grid   terminal.ScreenGrid
}

// Keyframe is one entry of the WAAPI keyframe array: a translate3d
// transform, a steps(1,end) easing, and an optional offset fraction.
type Keyframe struct {
	Transform string
	Easing    string
	Offset    *float64 // nil when the host computes an even spread
}

// WaapiAnimation is the JS-driven layout's output: a vertically-stacked
// series of per-time views to graft into the template's screen element,
// plus the keyframe array and total duration a host script applies via
// the Web Animations API.
type WaapiAnimation struct {
	Views      *Element
	Keyframes  []Keyframe
	DurationMS int64
}

// AnimateWAAPI stacks one view per distinct time below the previous and
// animates a single vertical scroll through them. A view whose rounded
// duration collapses to 0ms is merged into the view that follows it
// rather than emitted as its own keyframe stop. views must be in
// non-decreasing TimeMS order; the last view's on-screen duration is
// unknown until render end, so callers pass the cast's total duration
// explicitly as totalDurationMS.
func (c *Composer) AnimateWAAPI(views []WaapiView, height int, gapCells float64, totalDurationMS int64) WaapiAnimation {
	merged := mergeZeroDurationViews(views, totalDurationMS)

	viewHeight := (float64(height) + gapCells) * c.cfg.CellHeight

	stack := NewElement("g", Attr("id", "screen_view"))
	keyframes := make([]Keyframe, 0, len(merged))

	for i, v := range merged {
		y := float64(i) * viewHeight

		g := NewElement("g", Attr("transform", fmt.Sprintf("translate(0,%s)", numAttr(y))))
		for row := 0; row < height; row++ {
			lb := v.Grid[row]
			if len(lb) == 0 {
				continue
			}
			rects, use := c.renderLine(row, lb)
			for _, r := range rects {
				g.Add(r)
			}
			g.Add(use)
		}
		stack.Add(g)

		var offset *float64
		if totalDurationMS > 0 {
			o := float64(v.TimeMS) / float64(totalDurationMS)
			offset = &o
		}

		keyframes = append(keyframes, Keyframe{
			Transform: fmt.Sprintf("translate3d(0,-%spx,0)", numAttr(y)),
			Easing:    "steps(1,end)",
			Offset:    offset,
		})
	}

	return WaapiAnimation{Views: stack, Keyframes: keyframes, DurationMS: totalDurationMS}
}

// mergeZeroDurationViews drops any view (other than the last) whose
// duration to the next view rounds to 0ms; zero durations collapse into
// the following view.
func mergeZeroDurationViews(views []WaapiView, totalDurationMS int64) []WaapiView {
	if len(views) == 0 {
		return nil
	}

	out := make([]WaapiView, 0, len(views))
	for i, v := range views {
		next := totalDurationMS
		if i+1 < len(views) {
			next = views[i+1].TimeMS
		}
		if next-v.TimeMS == 0 && i != len(views)-1 {
			continue
		}
		out = append(out, v)
	}
	return out
}
