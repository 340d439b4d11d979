package color

import (
	"image/color"
	"strconv"
)

// ClassName is the stable CSS class a catalog assigns to a color:
// "foreground", "background", or a generated "color1", "color2", ...
type ClassName = string

// ColorCatalog deduplicates resolved colors encountered while rendering,
// assigning each a stable class name for the SVG compositor's generated
// stylesheet. It never shrinks within one render.
type ColorCatalog struct {
	palette   Palette
	defaultFG color.RGBA
	defaultBG color.RGBA

	classOf map[colorKey]string
	order   []colorKey
	next    int
}

type colorKey struct{ r, g, b uint8 }

// NewCatalog creates a catalog bound to a resolved theme.
func NewCatalog(palette Palette, defaultFG, defaultBG color.RGBA) *ColorCatalog {
	return &ColorCatalog{
		palette:   palette,
		defaultFG: defaultFG,
		defaultBG: defaultBG,
		classOf:   make(map[colorKey]string),
	}
}

// ClassFor returns the CSS class for c, registering a new "colorN" class
// the first time a given RGBA value is seen. Foreground/Background colors
// always map to the fixed "foreground"/"background" classes.
func (cat *ColorCatalog) ClassFor(c Color) string {
	switch c.Kind {
	case Foreground:
		return "foreground"
	case Background:
		return "background"
	}

	rgba := c.ToRGBA(&cat.palette, cat.defaultFG, cat.defaultBG)
	key := colorKey{rgba.R, rgba.G, rgba.B}

	if class, ok := cat.classOf[key]; ok {
		return class
	}

	cat.next++
	class := classIndexName(cat.next)
	cat.classOf[key] = class
	cat.order = append(cat.order, key)

	return class
}

// Encode returns c's SVG attribute name/value pair: Rgb colors always
// serialize as a literal "fill" hex value, while
// Foreground/Background/Indexed colors serialize as a "class" reference
// into the generated stylesheet.
func (cat *ColorCatalog) Encode(c Color) (attr, value string) {
	if c.Kind == Rgb {
		return "fill", RGBAToHex(c.RGBA)
	}
	return "class", cat.ClassFor(c)
}

// RGBAForClass resolves a previously assigned "colorN" class back to its
// RGBA value, for CSS `<style>` generation.
func (cat *ColorCatalog) RGBAForClass(class string) (color.RGBA, bool) {
	for key, c := range cat.classOf {
		if c == class {
			return color.RGBA{R: key.r, G: key.g, B: key.b, A: 255}, true
		}
	}
	return color.RGBA{}, false
}

// DefaultForeground is the theme's resolved default text color.
func (cat *ColorCatalog) DefaultForeground() color.RGBA { return cat.defaultFG }

// DefaultBackground is the theme's resolved default background color.
func (cat *ColorCatalog) DefaultBackground() color.RGBA { return cat.defaultBG }

// Classes returns the registered non-default classes in assignment order,
// for deterministic stylesheet emission.
func (cat *ColorCatalog) Classes() []string {
	classes := make([]string, 0, len(cat.order))
	for _, key := range cat.order {
		classes = append(classes, cat.classOf[key])
	}
	return classes
}

func classIndexName(n int) string {
	return "color" + strconv.Itoa(n)
}
