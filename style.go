package svgcast

import (
	"fmt"

	svgcolor "github.com/asciireel/svgcast/pkg/color"
	"github.com/asciireel/svgcast/pkg/css"
)

const fontFamily = "Monaco,Consolas,Menlo,'Bitstream Vera Sans Mono','Powerline Symbols',monospace"

// stylesheet builds the generated-style block: the fixed
// font/baseline/whitespace rules, one fill rule per color class the
// render touched, and, for animations, the --animation-duration custom
// property a template's own chrome can key off. Call it only after the
// compositor has rendered, so the catalog holds every class in use.
func stylesheet(catalog *svgcolor.ColorCatalog, durationMS int64) string {
	sheet := css.Sheet{
		{Selector: "#screen", Body: css.CSS{
			"font-family": fontFamily,
			"font-style":  "normal",
			"font-size":   "14px",
		}},
		{Selector: "text", Body: css.CSS{
			"dominant-baseline": "text-before-edge",
			"white-space":       "pre",
		}},
		{Selector: ".background", Body: css.CSS{"fill": svgcolor.RGBAToHex(catalog.DefaultBackground())}},
		{Selector: ".foreground", Body: css.CSS{"fill": svgcolor.RGBAToHex(catalog.DefaultForeground())}},
	}

	for _, class := range catalog.Classes() {
		rgba, ok := catalog.RGBAForClass(class)
		if !ok {
			continue
		}
		sheet = append(sheet, css.Rule{
			Selector: "." + class,
			Body:     css.CSS{"fill": svgcolor.RGBAToHex(rgba)},
		})
	}

	if durationMS > 0 {
		sheet = append(sheet, css.Rule{
			Selector: ":root",
			Body:     css.CSS{"--animation-duration": fmt.Sprintf("%dms", durationMS)},
		})
	}

	return sheet.String()
}
