package uniqueid_test

import (
	"testing"

	"github.com/asciireel/svgcast/internal/uniqueid"
)

func TestGenerator_SequenceStartsAtOne(t *testing.T) {
	g := uniqueid.New("g")

	want := []string{"g1", "g2", "g3"}
	for i, w := range want {
		if got := g.Next(); got != w {
			t.Errorf("call %d: got %q, want %q", i, got, w)
		}
	}
}

func TestGenerator_PrefixIsIndependentPerInstance(t *testing.T) {
	a := uniqueid.New("g")
	b := uniqueid.New("a")

	a.Next()
	if got := b.Next(); got != "a1" {
		t.Errorf("got %q, want a1 (independent counters)", got)
	}
}
