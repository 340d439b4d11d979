// Package svgcast renders recorded terminal sessions as self-contained,
// looping SVG animations. The pipeline runs leaves-first: pkg/asciicast
// reads the recording, pkg/coalesce merges its events into frames,
// pkg/terminal replays each frame's bytes and reports dirty rows,
// pkg/lineevent turns those into a per-row timeline, pkg/svgcompose
// renders the timeline as deduplicated SVG fragments, and pkg/template
// grafts everything into the caller's SVG template. Render wires the
// stages together for the common case; each stage is usable on its own.
package svgcast

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tdewolff/minify/v2"
	msvg "github.com/tdewolff/minify/v2/svg"

	"github.com/asciireel/svgcast/pkg/asciicast"
	"github.com/asciireel/svgcast/pkg/coalesce"
	svgcolor "github.com/asciireel/svgcast/pkg/color"
	"github.com/asciireel/svgcast/pkg/lineevent"
	"github.com/asciireel/svgcast/pkg/progress"
	"github.com/asciireel/svgcast/pkg/svgcompose"
	"github.com/asciireel/svgcast/pkg/template"
	"github.com/asciireel/svgcast/pkg/terminal"
	"github.com/asciireel/svgcast/pkg/theme"
)

// Options configures a render.
type Options struct {
	// MinFrameMS floors the inter-frame gap during coalescing; 0 means
	// the default of 1.
	MinFrameMS int64
	// MaxFrameMS caps the inter-frame gap; 0 defers to the recording
	// header's idle_time_limit.
	MaxFrameMS int64
	// LastFrameMS is the synthetic pause appended to the final frame;
	// 0 means the default of 1000.
	LastFrameMS int64

	// CellWidth and CellHeight are the SVG user-unit size of one cell;
	// 0 means the defaults of 8 and 17.
	CellWidth  float64
	CellHeight float64
	// FrameCellSpacing is the extra cell rows between stacked views in
	// the WAAPI vertical-scroll layout.
	FrameCellSpacing float64

	// Columns and Rows override the recording header's geometry when
	// positive, re-letterboxing the replay.
	Columns int
	Rows    int

	// Theme overrides the recording header's theme. When nil and the
	// header carries none, Render fails with ErrNoTheme.
	Theme *theme.Theme

	// Template is the SVG template to bind the animation into.
	Template []byte

	// Minify post-processes the serialized SVG through an SVG minifier.
	Minify bool

	// Logger receives debug traces from the pipeline stages; nil
	// disables logging.
	Logger *zerolog.Logger

	// Progress receives per-phase updates; sends never block, so a slow
	// reader only loses granularity.
	Progress chan<- progress.Update
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.Nop()
}

func (o Options) report(phase string, current, total int) {
	if o.Progress == nil {
		return
	}
	select {
	case o.Progress <- progress.Update{Phase: phase, Current: current, Total: total}:
	default:
	}
}

func (o Options) cellSize() (float64, float64) {
	w, h := o.CellWidth, o.CellHeight
	if w == 0 {
		w = 8
	}
	if h == 0 {
		h = 17
	}
	return w, h
}

func (o Options) coalesceOptions() coalesce.Options {
	co := coalesce.DefaultOptions()
	if o.MinFrameMS > 0 {
		co.MinFrameMS = o.MinFrameMS
	}
	if o.MaxFrameMS > 0 {
		co.MaxFrameMS = o.MaxFrameMS
	}
	if o.LastFrameMS > 0 {
		co.LastFrameMS = o.LastFrameMS
	}
	return co
}

// geometry resolves the replay's (cols, rows), preferring the caller's
// override to the header's recorded size.
func (o Options) geometry(cast *asciicast.Cast) (int, int, error) {
	cols, rows := cast.Header.Width, cast.Header.Height
	if o.Columns > 0 {
		cols = o.Columns
	}
	if o.Rows > 0 {
		rows = o.Rows
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, &terminal.GeometryError{Width: cols, Height: rows}
	}
	return cols, rows, nil
}

// resolveTheme picks the caller's theme override, else the header's
// embedded theme, else fails with ErrNoTheme.
func (o Options) resolveTheme(cast *asciicast.Cast) (theme.Theme, error) {
	if o.Theme != nil {
		return *o.Theme, nil
	}
	if cast.Header.Theme.Foreground != "" {
		return theme.FromAsciinemaHeader(
			cast.Header.Theme.Foreground,
			cast.Header.Theme.Background,
			cast.Header.Theme.Palette,
		)
	}
	return theme.Theme{}, ErrNoTheme
}

// Render replays cast and binds the resulting animation into the
// template, returning the serialized SVG. The template's settings block
// decides whether the animation is SMIL/CSS-driven or a WAAPI keyframe
// scroll. All pipeline errors surface here; no partial output is ever
// returned, since serialization happens only after every definition and
// group is assembled in memory.
func Render(ctx context.Context, cast *asciicast.Cast, opts Options) ([]byte, error) {
	log := opts.logger()

	tpl, err := template.Parse(opts.Template)
	if err != nil {
		return nil, err
	}
	settings := tpl.Settings()

	cols, rows, err := opts.geometry(cast)
	if err != nil {
		return nil, err
	}

	th, err := opts.resolveTheme(cast)
	if err != nil {
		return nil, err
	}

	frames := coalesce.Coalesce(cast.OutputEvents(), cast.Header.IdleTimeLimit, opts.coalesceOptions())
	opts.report(progress.PhaseCoalesce, 1, 1)
	log.Debug().
		Int("events", len(cast.Events)).
		Int("frames", len(frames)).
		Msg("coalesced event stream")

	emu, err := terminal.New(cols, rows)
	if err != nil {
		return nil, err
	}

	cellW, cellH := opts.cellSize()
	catalog := svgcolor.NewCatalog(th.Palette, th.Foreground, th.Background)
	comp := svgcompose.NewComposer(catalog, svgcompose.Config{CellWidth: cellW, CellHeight: cellH})
	gen := lineevent.NewGenerator()

	collectViews := settings.Animation == template.AnimationWAAPI

	var events []lineevent.LineEvent
	var views []svgcompose.WaapiView
	var totalMS int64

	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return nil, &ConsumerCancelledError{Err: err}
		}

		dirty, _ := emu.Feed([]byte(f.Chunk))
		events = append(events, gen.Process(dirty, f.DurationMS)...)

		if collectViews && (i == 0 || len(dirty) > 0) {
			views = append(views, svgcompose.WaapiView{TimeMS: f.TimeMS, Grid: emu.Screen()})
		}

		totalMS = f.TimeMS + f.DurationMS
		opts.report(progress.PhaseTerminal, i+1, len(frames))
	}
	events = append(events, gen.Flush()...)
	log.Debug().Int("line_events", len(events)).Msg("replayed recording")

	opts.report(progress.PhaseCompose, 1, 1)

	assets := template.BindAssets{
		Columns:    cols,
		Rows:       rows,
		CellWidth:  cellW,
		CellHeight: cellH,
	}

	switch settings.Animation {
	case template.AnimationWAAPI:
		anim := comp.AnimateWAAPI(views, rows, opts.FrameCellSpacing, totalMS)
		assets.Screen = anim.Views.Canonical()
		assets.Script = waapiScript(anim)
		assets.Style = stylesheet(catalog, anim.DurationMS)
	default:
		anim := comp.AnimateCSS(events)
		assets.Screen = anim.ScreenView.Canonical()
		assets.Style = stylesheet(catalog, anim.DurationMS)
	}

	for _, def := range comp.Defs() {
		assets.Defs = append(assets.Defs, def.Canonical())
	}
	log.Debug().Int("definitions", len(assets.Defs)).Msg("composed animation")

	opts.report(progress.PhaseTemplate, 1, 1)
	out, err := tpl.Bind(assets)
	if err != nil {
		return nil, err
	}

	if opts.Minify {
		return minifySVG(out)
	}
	return out, nil
}

// waapiScript serializes the keyframe array and total duration as a JS
// literal for the template's own host script to apply via the Web
// Animations API.
func waapiScript(anim svgcompose.WaapiAnimation) string {
	var sb strings.Builder
	sb.WriteString("var termAnimation={duration:")
	sb.WriteString(strconv.FormatInt(anim.DurationMS, 10))
	sb.WriteString(",keyframes:[")
	for i, kf := range anim.Keyframes {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{transform:"`)
		sb.WriteString(kf.Transform)
		sb.WriteString(`",easing:"`)
		sb.WriteString(kf.Easing)
		sb.WriteString(`"`)
		if kf.Offset != nil {
			sb.WriteString(",offset:")
			sb.WriteString(strconv.FormatFloat(*kf.Offset, 'f', -1, 64))
		}
		sb.WriteString("}")
	}
	sb.WriteString("]};")
	return sb.String()
}

// minifySVG post-processes the serialized document.
func minifySVG(data []byte) ([]byte, error) {
	m := minify.New()
	m.AddFunc("image/svg+xml", msvg.Minify)

	var out bytes.Buffer
	if err := m.Minify("image/svg+xml", &out, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("svgcast: minifying output: %w", err)
	}
	return out.Bytes(), nil
}
