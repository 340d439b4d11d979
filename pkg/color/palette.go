package color

import (
	"image/color"
	"strings"
)

// Palette holds the 256 terminal color slots: 0-15 named ANSI colors,
// 16-231 the 6x6x6 color cube, 232-255 a grayscale ramp.
type Palette [256]color.RGBA

// At returns the color at the given palette slot.
func (p *Palette) At(index uint8) color.RGBA {
	return p[index]
}

// Standard returns the conventional xterm 256-color palette, used as the
// default when a recording's header carries no explicit palette override.
func Standard() Palette {
	var palette Palette

	named := [16]color.RGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 128, G: 0, B: 0, A: 255},
		{R: 0, G: 128, B: 0, A: 255},
		{R: 128, G: 128, B: 0, A: 255},
		{R: 0, G: 0, B: 128, A: 255},
		{R: 128, G: 0, B: 128, A: 255},
		{R: 0, G: 128, B: 128, A: 255},
		{R: 192, G: 192, B: 192, A: 255},
		{R: 128, G: 128, B: 128, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 255, G: 255, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 0, B: 255, A: 255},
		{R: 0, G: 255, B: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	copy(palette[0:16], named[:])

	cubeValue := func(i int) uint8 {
		if i == 0 {
			return 0
		}
		return uint8(55 + i*40) //nolint:gosec // i in [1,5]
	}

	idx := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				palette[idx] = color.RGBA{R: cubeValue(r), G: cubeValue(g), B: cubeValue(b), A: 255}
				idx++
			}
		}
	}

	for i := 0; i < 24; i++ {
		gray := uint8(8 + i*10) //nolint:gosec // i in [0,23]
		palette[idx] = color.RGBA{R: gray, G: gray, B: gray, A: 255}
		idx++
	}

	return palette
}

// OverrideFromColons replaces the first 16 slots with the colon-separated
// list of 6-hex-digit colors found in an asciicast theme header
// ("#c0:#c1:...:#c7" or all 16 entries).
func (p *Palette) OverrideFromColons(spec string) error {
	entries := strings.Split(spec, ":")
	if len(entries) != 8 && len(entries) != 16 {
		return &InvalidColorError{Value: spec, Reason: "palette must have 8 or 16 colon-separated colors"}
	}
	for i, hex := range entries {
		rgba, err := ParseHex(hex)
		if err != nil {
			return err
		}
		p[i] = rgba
	}
	return nil
}
