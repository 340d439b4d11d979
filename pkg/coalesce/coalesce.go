// Package coalesce merges a chronologically ordered asciicast
// output-event stream into (time, duration, chunk) frames: it floors
// every gap at a minimum, caps any gap above a maximum by deducting the
// excess from the running clock so later times stay monotonic, and
// appends a synthetic trailing frame. Events closer together than the
// floor are concatenated into the pending chunk rather than emitted as
// their own frame.
package coalesce

import "github.com/asciireel/svgcast/pkg/asciicast"

// Frame is one coalesced output chunk: it starts at TimeMS and holds the
// screen steady for DurationMS before the next frame (or, for the last
// frame, before the loop restarts).
type Frame struct {
	TimeMS     int64
	DurationMS int64
	Chunk      string
}

// Options configures the coalescer.
type Options struct {
	MinFrameMS  int64 // floor on inter-frame gap; must be >= 1
	MaxFrameMS  int64 // 0 means unset: no cap
	LastFrameMS int64 // synthetic pause appended to the final frame; must be >= 1
}

// DefaultOptions returns the standard settings, with MaxFrameMS left unset
// so the caller can seed it from the recording header's idle_time_limit.
func DefaultOptions() Options {
	return Options{MinFrameMS: 1, LastFrameMS: 1000}
}

// Coalesce runs the time coalescer over a cast's output events; any
// input-tagged event in events is skipped.
// idleTimeLimitSeconds from the header becomes the default MaxFrameMS
// only when the caller left MaxFrameMS unset.
func Coalesce(events []asciicast.Event, idleTimeLimitSeconds float64, opts Options) []Frame {
	if opts.MinFrameMS < 1 {
		opts.MinFrameMS = 1
	}
	if opts.LastFrameMS < 1 {
		opts.LastFrameMS = 1000
	}
	if opts.MaxFrameMS == 0 && idleTimeLimitSeconds > 0 {
		opts.MaxFrameMS = int64(idleTimeLimitSeconds * 1000)
	}

	minDurationS := float64(opts.MinFrameMS) / 1000
	maxDurationS := float64(opts.MaxFrameMS) / 1000
	lastDurationS := float64(opts.LastFrameMS) / 1000

	var (
		frames       []Frame
		pendingChunk string
		currentTimeS float64
		droppedTimeS float64
	)

	for _, ev := range events {
		if ev.Type != asciicast.Output {
			continue
		}

		gap := ev.Time - (currentTimeS + droppedTimeS)
		if gap >= minDurationS {
			if maxDurationS > 0 && gap > maxDurationS {
				droppedTimeS += gap - maxDurationS
				gap = maxDurationS
			}

			frames = append(frames, Frame{
				TimeMS:     secondsToMS(currentTimeS),
				DurationMS: secondsToMS(gap),
				Chunk:      pendingChunk,
			})
			pendingChunk = ""
			currentTimeS += gap
		}

		pendingChunk += ev.Data
	}

	if pendingChunk != "" {
		frames = append(frames, Frame{
			TimeMS:     secondsToMS(currentTimeS),
			DurationMS: secondsToMS(lastDurationS),
			Chunk:      pendingChunk,
		})
	}

	return frames
}

func secondsToMS(seconds float64) int64 {
	return int64(seconds*1000 + 0.5)
}
