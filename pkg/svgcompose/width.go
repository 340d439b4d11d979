package svgcompose

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// visualWidth measures s in display cells rather than code points: wide
// characters count 2, zero-width modifiers count 0. It segments s into
// grapheme clusters with uniseg first so that a cluster like a flag emoji
// or an emoji+ZWJ+variation-selector sequence contributes the width of
// its base rune exactly once, rather than once per combining rune.
func visualWidth(s string) int {
	width := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "" {
			break
		}
		r := []rune(cluster)[0]
		width += runewidth.RuneWidth(r)
	}
	return width
}
