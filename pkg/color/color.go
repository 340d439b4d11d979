// Package color implements the tagged Color union
// (Foreground/Background/Indexed/Rgb), the 256-slot terminal Palette, and a
// content-addressed ColorCatalog used by the SVG compositor to emit stable
// CSS classes instead of repeating hex literals.
package color

import (
	"fmt"
	"image/color"
)

// Kind tags which variant of Color is populated.
type Kind uint8

const (
	// Foreground is the theme's default text color.
	Foreground Kind = iota
	// Background is the theme's default background color.
	Background
	// Indexed selects a palette slot 0..15.
	Indexed
	// Rgb carries a literal 24-bit color.
	Rgb
)

// Color is a tagged variant. Exactly one of Index/RGBA is meaningful,
// selected by Kind.
type Color struct {
	Kind  Kind
	Index uint8 // valid when Kind == Indexed, 0..15
	RGBA  color.RGBA
}

// FromIndex builds an Indexed color, promoting to the bright slot
// (8..15) when bold is set and the base index isn't already bright.
func FromIndex(index uint8, bold bool) Color {
	if bold && index < 8 {
		index += 8
	}
	return Color{Kind: Indexed, Index: index}
}

// FromHex parses a 6-hex-digit string (optionally "#"-prefixed) into an
// Rgb color. Anything else is InvalidColorError.
func FromHex(s string) (Color, error) {
	rgba, err := ParseHex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{Kind: Rgb, RGBA: rgba}, nil
}

// Swap exchanges a resolved (fg, bg) pair. Reverse-video only swaps
// which slot a color occupies, not its value, and applies after bold
// promotion and palette resolution.
func Swap(fg, bg Color) (Color, Color) {
	return bg, fg
}

// ToRGBA resolves a Color to a concrete RGBA value given the active
// Palette and theme default foreground/background.
func (c Color) ToRGBA(palette *Palette, defaultFG, defaultBG color.RGBA) color.RGBA {
	switch c.Kind {
	case Foreground:
		return defaultFG
	case Background:
		return defaultBG
	case Indexed:
		return palette.At(c.Index)
	case Rgb:
		return c.RGBA
	default:
		return defaultFG
	}
}

// ParseHex parses a 6-hex-digit color string into color.RGBA.
func ParseHex(s string) (color.RGBA, error) {
	if len(s) == 7 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{}, &InvalidColorError{Value: s, Reason: "not a 6-hex-digit color"}
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, &InvalidColorError{Value: s, Reason: "not valid hex", Err: err}
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// RGBAToHex renders an RGBA value as a "#rrggbb" literal, the encoding
// used for Rgb fill attributes and CSS color-class definitions.
func RGBAToHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
