package svgcast

import (
	"context"
	"fmt"
	"strconv"

	"github.com/asciireel/svgcast/pkg/asciicast"
	"github.com/asciireel/svgcast/pkg/coalesce"
	svgcolor "github.com/asciireel/svgcast/pkg/color"
	"github.com/asciireel/svgcast/pkg/progress"
	"github.com/asciireel/svgcast/pkg/svgcompose"
	"github.com/asciireel/svgcast/pkg/template"
	"github.com/asciireel/svgcast/pkg/terminal"
)

// Still is one rendered snapshot, named with a fixed-width counter sized
// to the frame count.
type Still struct {
	Name string
	Data []byte
}

// RenderStills replays cast and renders every coalesced frame as its own
// static SVG with no animation element attached. Each output document is
// self-contained: its definition table covers only the lines that frame
// shows, so a document never references a definition emitted for another.
func RenderStills(ctx context.Context, cast *asciicast.Cast, opts Options) ([]Still, error) {
	log := opts.logger()

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

	emu, err := terminal.New(cols, rows)
	if err != nil {
		return nil, err
	}

	cellW, cellH := opts.cellSize()
	digits := len(strconv.Itoa(len(frames)))

	stills := make([]Still, 0, len(frames))
	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return nil, &ConsumerCancelledError{Err: err}
		}

		emu.Feed([]byte(f.Chunk))

		// Bind mutates the template tree, so every document starts from
		// a fresh parse.
		tpl, err := template.Parse(opts.Template)
		if err != nil {
			return nil, err
		}

		catalog := svgcolor.NewCatalog(th.Palette, th.Foreground, th.Background)
		comp := svgcompose.NewComposer(catalog, svgcompose.Config{CellWidth: cellW, CellHeight: cellH})
		frame := comp.Still(emu.Screen(), rows)

		assets := template.BindAssets{
			Columns:    cols,
			Rows:       rows,
			CellWidth:  cellW,
			CellHeight: cellH,
			Screen:     frame.Canonical(),
			Style:      stylesheet(catalog, 0),
		}
		for _, def := range comp.Defs() {
			assets.Defs = append(assets.Defs, def.Canonical())
		}

		out, err := tpl.Bind(assets)
		if err != nil {
			return nil, err
		}
		if opts.Minify {
			if out, err = minifySVG(out); err != nil {
				return nil, err
			}
		}

		stills = append(stills, Still{
			Name: fmt.Sprintf("%0*d.svg", digits, i),
			Data: out,
		})
		opts.report(progress.PhaseCompose, i+1, len(frames))
	}

	log.Debug().Int("stills", len(stills)).Msg("rendered still frames")
	return stills, nil
}
