// Package progress reports render progress over a channel, one bar per
// pipeline phase (coalesce, replay, compose, bind).
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Phase names the top-level render emits progress updates for.
const (
	PhaseCoalesce = "Coalescing"
	PhaseTerminal = "Replaying"
	PhaseCompose  = "Composing"
	PhaseTemplate = "Binding template"
)

// Update represents a progress update from a processing phase.
type Update struct {
	Phase   string
	Current int
	Total   int
}

// Reporter drains an Update channel in the background and renders one
// terminal progress bar per phase, finishing each bar as soon as an
// update for a new phase arrives.
type Reporter struct {
	updates chan Update
	done    chan struct{}
}

// New creates a Reporter and the channel to feed it. Close the channel
// when the render finishes, then Wait for the final bar to be drawn.
// The channel is buffered; senders that must never block should still
// send with a default case, dropping granularity instead of stalling.
func New() (*Reporter, chan<- Update) {
	r := &Reporter{
		updates: make(chan Update, 100),
		done:    make(chan struct{}),
	}
	return r, r.updates
}

// Start launches the draining goroutine. It returns immediately.
func (r *Reporter) Start() {
	go r.drain()
}

// Wait blocks until the update channel has been closed and drained.
func (r *Reporter) Wait() {
	<-r.done
}

func (r *Reporter) drain() {
	defer close(r.done)

	bars := make(map[string]*progressbar.ProgressBar)
	var active *progressbar.ProgressBar

	for u := range r.updates {
		bar, seen := bars[u.Phase]
		if !seen {
			if active != nil {
				_ = active.Finish()
			}
			bar = newBar(u.Phase, u.Total)
			bars[u.Phase] = bar
		}
		active = bar
		_ = bar.Set(u.Current)
	}

	if active != nil {
		_ = active.Finish()
	}
}

func newBar(phase string, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(phase),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			_, _ = os.Stderr.WriteString("\n")
		}),
	)
}
