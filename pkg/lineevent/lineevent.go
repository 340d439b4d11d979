// Package lineevent turns the per-frame dirty-row output of pkg/terminal
// into a stable per-row timeline of appearances and durations, so
// pkg/svgcompose never has to see raw frames.
package lineevent

import (
	"sort"

	"github.com/asciireel/svgcast/pkg/terminal"
)

// LineEvent is the appearance-and-duration record for one row: it
// closes out when the row's content changes or is erased.
type LineEvent struct {
	Row        int
	Content    terminal.LineBuffer
	TimeMS     int64
	DurationMS int64
}

type pendingEntry struct {
	content    terminal.LineBuffer
	timeMS     int64
	durationMS int64
}

// Generator holds the per-row timeline state.
type Generator struct {
	pending map[int]pendingEntry
	clockMS int64
}

// NewGenerator returns a ready-to-use Generator.
func NewGenerator() *Generator {
	return &Generator{pending: make(map[int]pendingEntry)}
}

// Process advances the generator by one frame of duration durationMS,
// given the dirty rows the emulator reported for that frame (an entry
// with an empty LineBuffer means the row was erased). It returns the
// LineEvents that closed during this frame, ordered by (time, duration,
// row) ascending.
func (g *Generator) Process(dirty map[int]terminal.LineBuffer, durationMS int64) []LineEvent {
	var closed []LineEvent

	for row, content := range dirty {
		if old, ok := g.pending[row]; ok {
			closed = append(closed, LineEvent{
				Row:        row,
				Content:    old.content,
				TimeMS:     old.timeMS,
				DurationMS: old.durationMS,
			})
			delete(g.pending, row)
		}

		if len(content) > 0 {
			g.pending[row] = pendingEntry{
				content:    content,
				timeMS:     g.clockMS,
				durationMS: durationMS,
			}
		}
	}

	for row, entry := range g.pending {
		if _, touched := dirty[row]; touched {
			continue
		}
		entry.durationMS += durationMS
		g.pending[row] = entry
	}

	g.clockMS += durationMS

	sortEvents(closed)
	return closed
}

// Flush emits every remaining pending row as a closed LineEvent, in the
// same (time, duration, row) order Process uses. Call this once after the
// last frame.
func (g *Generator) Flush() []LineEvent {
	events := make([]LineEvent, 0, len(g.pending))
	for row, entry := range g.pending {
		events = append(events, LineEvent{
			Row:        row,
			Content:    entry.content,
			TimeMS:     entry.timeMS,
			DurationMS: entry.durationMS,
		})
	}
	g.pending = make(map[int]pendingEntry)

	sortEvents(events)
	return events
}

func sortEvents(events []LineEvent) {
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.TimeMS != b.TimeMS {
			return a.TimeMS < b.TimeMS
		}
		if a.DurationMS != b.DurationMS {
			return a.DurationMS < b.DurationMS
		}
		return a.Row < b.Row
	})
}
