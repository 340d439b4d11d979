// Package theme holds the literal color values a render needs: a
// foreground, a background, and a 256-slot palette. There is no file
// loader and no built-in theme registry; a Theme is always literal color
// values supplied by the caller or read from an asciicast header.
package theme

import (
	"image/color"

	svgcolor "github.com/asciireel/svgcast/pkg/color"
)

// Theme is the literal colorscheme a render is bound to.
type Theme struct {
	Foreground color.RGBA
	Background color.RGBA
	Palette    svgcolor.Palette
}

// FromAsciinemaHeader builds a Theme from the fg/bg/palette strings
// carried by an asciicast v2 header's optional "theme" object, upgrading
// the standard palette's first 8 or 16 slots.
func FromAsciinemaHeader(fg, bg, palette string) (Theme, error) {
	fgColor, err := svgcolor.ParseHex(fg)
	if err != nil {
		return Theme{}, err
	}
	bgColor, err := svgcolor.ParseHex(bg)
	if err != nil {
		return Theme{}, err
	}

	full := svgcolor.Standard()
	if palette != "" {
		if err := full.OverrideFromColons(palette); err != nil {
			return Theme{}, err
		}
	}

	return Theme{Foreground: fgColor, Background: bgColor, Palette: full}, nil
}
