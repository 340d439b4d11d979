package lineevent_test

import (
	"testing"

	"github.com/asciireel/svgcast/pkg/lineevent"
	"github.com/asciireel/svgcast/pkg/terminal"
)

func line(text string) terminal.LineBuffer {
	return terminal.LineBuffer{0: {Text: text}}
}

func TestGenerator_AppearAndErase(t *testing.T) {
	g := lineevent.NewGenerator()

	// Frame 1 (duration 10ms): row 0 appears.
	closed := g.Process(map[int]terminal.LineBuffer{0: line("a")}, 10)
	if len(closed) != 0 {
		t.Fatalf("appearance should not close anything, got %v", closed)
	}

	// Frame 2 (duration 20ms): row 0 untouched, should extend.
	closed = g.Process(map[int]terminal.LineBuffer{}, 20)
	if len(closed) != 0 {
		t.Fatalf("untouched row should not close, got %v", closed)
	}

	// Frame 3 (duration 5ms): row 0 erased.
	closed = g.Process(map[int]terminal.LineBuffer{0: {}}, 5)
	if len(closed) != 1 {
		t.Fatalf("expected exactly one closed event, got %d", len(closed))
	}

	ev := closed[0]
	if ev.Row != 0 || ev.TimeMS != 0 || ev.DurationMS != 30 {
		t.Errorf("got %+v, want row=0 time=0 duration=30 (10+20)", ev)
	}

	if rest := g.Flush(); len(rest) != 0 {
		t.Errorf("nothing should remain pending after erase, got %v", rest)
	}
}

func TestGenerator_ContentChangeClosesAndReopens(t *testing.T) {
	g := lineevent.NewGenerator()

	g.Process(map[int]terminal.LineBuffer{0: line("a")}, 10)
	closed := g.Process(map[int]terminal.LineBuffer{0: line("b")}, 15)

	if len(closed) != 1 {
		t.Fatalf("expected one closed event for the old content, got %d", len(closed))
	}
	if closed[0].Content[0].Text != "a" {
		t.Errorf("closed event carried wrong content: %+v", closed[0].Content)
	}

	final := g.Flush()
	if len(final) != 1 || final[0].TimeMS != 10 || final[0].DurationMS != 15 {
		t.Errorf("got %+v, want one event at time=10 duration=15", final)
	}
}

func TestGenerator_FlushOrdersByTimeThenRow(t *testing.T) {
	g := lineevent.NewGenerator()

	g.Process(map[int]terminal.LineBuffer{1: line("x"), 0: line("y")}, 10)
	events := g.Flush()

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Row != 0 || events[1].Row != 1 {
		t.Errorf("expected row-ascending order within the same (time,duration) group, got rows %d,%d",
			events[0].Row, events[1].Row)
	}
}

func TestGenerator_IntervalsPerRowAreDisjointAndContiguous(t *testing.T) {
	g := lineevent.NewGenerator()

	var all []lineevent.LineEvent
	all = append(all, g.Process(map[int]terminal.LineBuffer{0: line("a")}, 10)...)
	all = append(all, g.Process(map[int]terminal.LineBuffer{0: line("b")}, 20)...)
	all = append(all, g.Process(map[int]terminal.LineBuffer{0: {}}, 5)...)
	all = append(all, g.Flush()...)

	// Row 0 should have exactly two closed intervals: [0,10) and [10,30).
	if len(all) != 2 {
		t.Fatalf("expected 2 events for row 0, got %d: %+v", len(all), all)
	}
	if all[0].TimeMS+all[0].DurationMS != all[1].TimeMS {
		t.Errorf("intervals not contiguous: %+v then %+v", all[0], all[1])
	}
}
