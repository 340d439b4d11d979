package template_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/asciireel/svgcast/pkg/template"
)

const testTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:svgcast="https://github.com/asciireel/svgcast" viewBox="0 0 640 408" width="640" height="408">
  <svgcast:template_settings>
    <svgcast:screen_geometry columns="80" rows="24"/>
    <svgcast:animation type="css"/>
  </svgcast:template_settings>
  <defs>
    <style id="generated-style"/>
  </defs>
  <svg id="screen" viewBox="0 0 640 408" width="640" height="408" preserveAspectRatio="xMidYMin slice">
    <rect width="10" height="10"/>
  </svg>
</svg>`

func mustParse(t *testing.T, doc string) *template.Template {
	t.Helper()
	tpl, err := template.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tpl
}

func TestParse_ReadsSettings(t *testing.T) {
	tpl := mustParse(t, testTemplate)

	got := tpl.Settings()
	want := template.Settings{Columns: 80, Rows: 24, Animation: template.AnimationCSS}
	if got != want {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
}

func TestParse_MissingAnchorsFail(t *testing.T) {
	tests := map[string]string{
		"empty":       "",
		"not xml":     "hello",
		"no screen":   `<svg viewBox="0 0 1 1"><style id="generated-style"/></svg>`,
		"no settings": `<svg viewBox="0 0 1 1"><svg id="screen" viewBox="0 0 1 1"/><style id="generated-style"/></svg>`,
		"no style": `<svg xmlns:svgcast="https://github.com/asciireel/svgcast" viewBox="0 0 1 1">
			<svgcast:template_settings><svgcast:screen_geometry columns="1" rows="1"/><svgcast:animation type="css"/></svgcast:template_settings>
			<svg id="screen" viewBox="0 0 1 1"/></svg>`,
		"no root viewBox": `<svg><svg id="screen" viewBox="0 0 1 1"/></svg>`,
		"bad animation type": `<svg xmlns:svgcast="https://github.com/asciireel/svgcast" viewBox="0 0 1 1">
			<svgcast:template_settings><svgcast:screen_geometry columns="1" rows="1"/><svgcast:animation type="smil"/></svgcast:template_settings>
			<svg id="screen" viewBox="0 0 1 1"/><style id="generated-style"/></svg>`,
		"zero columns": `<svg xmlns:svgcast="https://github.com/asciireel/svgcast" viewBox="0 0 1 1">
			<svgcast:template_settings><svgcast:screen_geometry columns="0" rows="1"/><svgcast:animation type="css"/></svgcast:template_settings>
			<svg id="screen" viewBox="0 0 1 1"/><style id="generated-style"/></svg>`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := template.Parse([]byte(doc))
			var terr *template.TemplateError
			if !errors.As(err, &terr) {
				t.Errorf("Parse = %v, want TemplateError", err)
			}
		})
	}
}

func TestParse_WaapiRequiresGeneratedJS(t *testing.T) {
	doc := strings.Replace(testTemplate, `type="css"`, `type="waapi"`, 1)

	if _, err := template.Parse([]byte(doc)); err == nil {
		t.Fatal("expected waapi template without generated-js to fail")
	}

	doc = strings.Replace(doc, `<style id="generated-style"/>`,
		`<style id="generated-style"/><script id="generated-js"/>`, 1)
	if _, err := template.Parse([]byte(doc)); err != nil {
		t.Fatalf("Parse with generated-js: %v", err)
	}
}

// Template geometry round-trip: binding an 80x24 template to a 100x30
// recording with 8x17 cells grows the viewBox by (160, 102) and rewrites
// the declared geometry.
func TestBind_RescalesGeometry(t *testing.T) {
	tpl := mustParse(t, testTemplate)

	out, err := tpl.Bind(template.BindAssets{
		Columns: 100, Rows: 30,
		CellWidth: 8, CellHeight: 17,
		Screen: `<g id="screen_view"/>`,
		Style:  "text{fill:red}",
	})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	got := string(out)

	if !strings.Contains(got, `viewBox="0 0 800 510"`) {
		t.Errorf("expected rescaled viewBox 0 0 800 510 in:\n%s", got)
	}
	if !strings.Contains(got, `width="800"`) || !strings.Contains(got, `height="510"`) {
		t.Errorf("expected numeric width/height to scale with the viewBox in:\n%s", got)
	}
	if !strings.Contains(got, `columns="100"`) || !strings.Contains(got, `rows="30"`) {
		t.Errorf("expected rewritten screen_geometry in:\n%s", got)
	}
}

func TestBind_GraftsScreenContent(t *testing.T) {
	tpl := mustParse(t, testTemplate)

	out, err := tpl.Bind(template.BindAssets{
		Columns: 80, Rows: 24,
		CellWidth: 8, CellHeight: 17,
		Defs:   []string{`<g id="g1"><text x="0">hi</text></g>`},
		Screen: `<g id="screen_view"><use xlink:href="#g1" y="0"/></g>`,
		Style:  ".background{fill:#000000}",
	})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	got := string(out)

	if strings.Contains(got, `<rect width="10"`) {
		t.Error("expected the screen element's original children to be cleared")
	}
	if !strings.Contains(got, `<rect class="background" width="100%" height="100%"/>`) {
		t.Errorf("expected a full-size background rect in:\n%s", got)
	}
	if !strings.Contains(got, `<defs><g id="g1">`) {
		t.Errorf("expected grafted defs in:\n%s", got)
	}
	if !strings.Contains(got, `<use xlink:href="#g1" y="0"/>`) {
		t.Errorf("expected the screen view group in:\n%s", got)
	}
	if !strings.Contains(got, `<style id="generated-style">.background{fill:#000000}</style>`) {
		t.Errorf("expected the generated style to be filled in:\n%s", got)
	}
}

func TestBind_LeavesPercentageSizesAlone(t *testing.T) {
	doc := strings.Replace(testTemplate, `viewBox="0 0 640 408" width="640" height="408">`,
		`viewBox="0 0 640 408" width="100%" height="100%">`, 1)
	tpl := mustParse(t, doc)

	out, err := tpl.Bind(template.BindAssets{
		Columns: 100, Rows: 30,
		CellWidth: 8, CellHeight: 17,
		Screen: `<g/>`,
	})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	if !strings.Contains(string(out), `viewBox="0 0 800 510" width="100%" height="100%"`) {
		t.Errorf("percentage width/height must stay as authored, got:\n%s", out)
	}
}

func TestBind_InvalidViewBoxFails(t *testing.T) {
	doc := strings.Replace(testTemplate, `<svg id="screen" viewBox="0 0 640 408"`,
		`<svg id="screen" viewBox="0 0 wide tall"`, 1)
	tpl := mustParse(t, doc)

	_, err := tpl.Bind(template.BindAssets{Columns: 80, Rows: 24, CellWidth: 8, CellHeight: 17})
	var terr *template.TemplateError
	if !errors.As(err, &terr) {
		t.Errorf("Bind = %v, want TemplateError", err)
	}
}
