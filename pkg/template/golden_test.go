package template_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/asciireel/svgcast/pkg/template"
)

// Byte-exact bind output, pinned with a golden file.
func TestBind_Golden(t *testing.T) {
	const doc = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:svgcast="https://github.com/asciireel/svgcast" viewBox="0 0 640 408"><svgcast:template_settings><svgcast:screen_geometry columns="80" rows="24"/><svgcast:animation type="css"/></svgcast:template_settings><defs><style id="generated-style"/></defs><svg id="screen" viewBox="0 0 640 408"/></svg>`

	tpl, err := template.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out, err := tpl.Bind(template.BindAssets{
		Columns: 100, Rows: 30,
		CellWidth: 8, CellHeight: 17,
		Defs:   []string{`<g id="g1"><text x="0">hi</text></g>`},
		Screen: `<g id="screen_view"><use xlink:href="#g1" y="0"/></g>`,
		Style:  ".background{fill:#000000}",
	})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "bind", out)
}
