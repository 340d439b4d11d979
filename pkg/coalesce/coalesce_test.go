package coalesce_test

import (
	"testing"

	"github.com/asciireel/svgcast/pkg/asciicast"
	"github.com/asciireel/svgcast/pkg/coalesce"
)

func events(pairs ...struct {
	t float64
	d string
}) []asciicast.Event {
	out := make([]asciicast.Event, len(pairs))
	for i, p := range pairs {
		out[i] = asciicast.Event{Time: p.t, Type: asciicast.Output, Data: p.d}
	}
	return out
}

func TestCoalesce_MinFrameFloorAndLastFrame(t *testing.T) {
	evs := events(
		struct {
			t float64
			d string
		}{0, "a"},
		struct {
			t float64
			d string
		}{0.5, "b"},
	)

	opts := coalesce.Options{MinFrameMS: 10, LastFrameMS: 42}
	frames := coalesce.Coalesce(evs, 0, opts)

	if len(frames) == 0 {
		t.Fatal("expected at least one frame")
	}
	last := frames[len(frames)-1]
	if last.DurationMS != 42 {
		t.Errorf("last frame duration = %d, want 42", last.DurationMS)
	}

	for _, f := range frames {
		if f.DurationMS < opts.MinFrameMS {
			t.Errorf("frame duration %d below floor %d", f.DurationMS, opts.MinFrameMS)
		}
	}
}

func TestCoalesce_ConsecutiveFramesAreContiguous(t *testing.T) {
	evs := events(
		struct {
			t float64
			d string
		}{0, "a"},
		struct {
			t float64
			d string
		}{0.1, "b"},
		struct {
			t float64
			d string
		}{0.3, "c"},
	)

	frames := coalesce.Coalesce(evs, 0, coalesce.Options{MinFrameMS: 1, LastFrameMS: 100})

	for i := 0; i+1 < len(frames); i++ {
		if frames[i].TimeMS+frames[i].DurationMS != frames[i+1].TimeMS {
			t.Errorf("frame %d: time(%d)+duration(%d) != next time(%d)",
				i, frames[i].TimeMS, frames[i].DurationMS, frames[i+1].TimeMS)
		}
	}
}

func TestCoalesce_MaxFrameCapTranslatesSubsequentTimes(t *testing.T) {
	// idle gap of 60s capped to the 1s idle_time_limit; later event times
	// must be translated down so the capped gap is the only gap observed.
	evs := events(
		struct {
			t float64
			d string
		}{0, "a"},
		struct {
			t float64
			d string
		}{60, "b"},
	)

	frames := coalesce.Coalesce(evs, 1.0, coalesce.Options{MinFrameMS: 1, LastFrameMS: 1000})

	var capped bool
	for _, f := range frames {
		if f.DurationMS == 1000 {
			capped = true
		}
		if f.DurationMS > 1000 {
			t.Errorf("frame duration %d exceeds the 1000ms cap", f.DurationMS)
		}
	}
	if !capped {
		t.Error("expected a frame capped at the 1000ms idle_time_limit")
	}
}

func TestCoalesce_NoEventsYieldsNoFrames(t *testing.T) {
	frames := coalesce.Coalesce(nil, 0, coalesce.DefaultOptions())
	if frames != nil {
		t.Errorf("expected nil frames, got %v", frames)
	}
}

func TestCoalesce_DropsInputEvents(t *testing.T) {
	evs := []asciicast.Event{
		{Time: 0, Type: asciicast.Output, Data: "a"},
		{Time: 0.1, Type: asciicast.Input, Data: "ignored"},
		{Time: 0.2, Type: asciicast.Output, Data: "b"},
	}

	frames := coalesce.Coalesce(evs, 0, coalesce.Options{MinFrameMS: 1, LastFrameMS: 10})

	for _, f := range frames {
		if f.Chunk == "ignored" {
			t.Fatal("input-tagged event leaked into a frame")
		}
	}
}
