// Package template binds a rendered animation into a caller-supplied SVG
// template: it rescales the template's screen geometry to match the
// recording, grafts the compositor's defs and animation into the screen
// element, fills the generated style and script blocks, and serializes
// the result.
//
// A template must carry a root <svg> with a viewBox, a child
// <svg id="screen"> with its own viewBox, a private template_settings
// block declaring the template's cell geometry and animation type, a
// <style id="generated-style">, and, in WAAPI mode, a
// <script id="generated-js">.
package template

import (
	"fmt"
	"strconv"
	"strings"
)

// Namespace is the stable URI of the private template_settings block.
const Namespace = "https://github.com/asciireel/svgcast"

// AnimationType selects how the bound animation is driven.
type AnimationType string

const (
	// AnimationCSS drives the animation with SMIL display chains plus
	// generated CSS.
	AnimationCSS AnimationType = "css"
	// AnimationWAAPI emits a keyframe array into the generated script
	// block for a host script to apply via the Web Animations API.
	AnimationWAAPI AnimationType = "waapi"
)

// Settings is the parsed template_settings block.
type Settings struct {
	Columns   int
	Rows      int
	Animation AnimationType
}

// Template is a parsed template document with its required anchors
// located. A Template is bound once; Bind mutates the tree in place.
type Template struct {
	nodes    []*node
	root     *node
	screen   *node
	geometry *node
	style    *node
	script   *node
	settings Settings
}

// Parse reads an SVG template and locates every required anchor, failing
// with TemplateError when one is missing or malformed.
func Parse(data []byte) (*Template, error) {
	if len(data) == 0 {
		return nil, &TemplateError{Reason: "empty template"}
	}

	nodes, err := parseNodes(data)
	if err != nil {
		return nil, &TemplateError{Reason: "unparseable template XML", Err: err}
	}

	t := &Template{nodes: nodes}

	t.root = findElement(nodes, func(n *node) bool { return n.local == "svg" })
	if t.root == nil {
		return nil, &TemplateError{Reason: "no root svg element"}
	}
	if _, ok := t.root.attr("viewBox"); !ok {
		return nil, &TemplateError{Reason: "root svg has no viewBox"}
	}

	t.screen = findElement(t.root.children, func(n *node) bool {
		id, _ := n.attr("id")
		return n.local == "svg" && id == "screen"
	})
	if t.screen == nil {
		return nil, &TemplateError{Reason: `no svg element with id "screen"`}
	}
	if _, ok := t.screen.attr("viewBox"); !ok {
		return nil, &TemplateError{Reason: "screen svg has no viewBox"}
	}

	settings := findElement(nodes, func(n *node) bool {
		return n.local == "template_settings" && n.space == Namespace
	})
	if settings == nil {
		// Be lenient about the namespace URI so templates authored for
		// an earlier URI revision keep working; the local name is the
		// contract.
		settings = findElement(nodes, func(n *node) bool {
			return n.local == "template_settings"
		})
	}
	if settings == nil {
		return nil, &TemplateError{Reason: "no template_settings block"}
	}

	if err := t.readSettings(settings); err != nil {
		return nil, err
	}

	t.style = findElement(nodes, func(n *node) bool {
		id, _ := n.attr("id")
		return n.local == "style" && id == "generated-style"
	})
	if t.style == nil {
		return nil, &TemplateError{Reason: `no style element with id "generated-style"`}
	}

	t.script = findElement(nodes, func(n *node) bool {
		id, _ := n.attr("id")
		return n.local == "script" && id == "generated-js"
	})
	if t.settings.Animation == AnimationWAAPI && t.script == nil {
		return nil, &TemplateError{Reason: `animation type "waapi" requires a script element with id "generated-js"`}
	}

	return t, nil
}

// Settings returns the template's declared geometry and animation type.
func (t *Template) Settings() Settings {
	return t.settings
}

func (t *Template) readSettings(settings *node) error {
	t.geometry = findElement(settings.children, func(n *node) bool {
		return n.local == "screen_geometry"
	})
	if t.geometry == nil {
		return &TemplateError{Reason: "template_settings has no screen_geometry"}
	}

	cols, err := positiveIntAttr(t.geometry, "columns")
	if err != nil {
		return err
	}
	rows, err := positiveIntAttr(t.geometry, "rows")
	if err != nil {
		return err
	}

	anim := findElement(settings.children, func(n *node) bool {
		return n.local == "animation"
	})
	if anim == nil {
		return &TemplateError{Reason: "template_settings has no animation element"}
	}
	animType, _ := anim.attr("type")
	switch AnimationType(animType) {
	case AnimationCSS, AnimationWAAPI:
	default:
		return &TemplateError{Reason: fmt.Sprintf("unknown animation type %q", animType)}
	}

	t.settings = Settings{Columns: cols, Rows: rows, Animation: AnimationType(animType)}
	return nil
}

func positiveIntAttr(n *node, local string) (int, error) {
	s, ok := n.attr(local)
	if !ok {
		return 0, &TemplateError{Reason: fmt.Sprintf("screen_geometry has no %s attribute", local)}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &TemplateError{Reason: fmt.Sprintf("screen_geometry %s=%q is not an integer", local, s), Err: err}
	}
	if v <= 0 {
		return 0, &TemplateError{Reason: fmt.Sprintf("screen_geometry %s=%d must be positive", local, v)}
	}
	return v, nil
}

// BindAssets is everything the compositor hands the binder for one
// render: the recording's cell geometry, the accumulated definitions,
// the screen content group, and the generated style/script bodies.
type BindAssets struct {
	Columns, Rows         int
	CellWidth, CellHeight float64
	// Defs are the definition table's fragments, in first-seen order.
	Defs []string
	// Screen is the serialized screen_view group (animation mode) or
	// still-frame group.
	Screen string
	// Style fills the generated-style element.
	Style string
	// Script fills the generated-js element; ignored outside WAAPI mode.
	Script string
}

// Bind rewrites the template for the recorded geometry and grafts the
// compositor's output, returning the serialized document. Bind mutates
// the parsed tree; a Template binds once.
func (t *Template) Bind(a BindAssets) ([]byte, error) {
	if a.Columns <= 0 || a.Rows <= 0 {
		return nil, &TemplateError{Reason: fmt.Sprintf("recorded geometry %dx%d must be positive", a.Columns, a.Rows)}
	}

	dx := a.CellWidth * float64(a.Columns-t.settings.Columns)
	dy := a.CellHeight * float64(a.Rows-t.settings.Rows)

	for _, el := range []*node{t.root, t.screen} {
		if err := rescale(el, dx, dy); err != nil {
			return nil, err
		}
	}

	t.geometry.setAttr("columns", strconv.Itoa(a.Columns))
	t.geometry.setAttr("rows", strconv.Itoa(a.Rows))

	var defs strings.Builder
	defs.WriteString("<defs>")
	for _, d := range a.Defs {
		defs.WriteString(d)
	}
	defs.WriteString("</defs>")

	t.screen.children = []*node{
		raw(`<rect class="background" width="100%" height="100%"/>`),
		raw(defs.String()),
		raw(a.Screen),
	}

	t.style.children = []*node{raw(a.Style)}
	if t.script != nil && a.Script != "" {
		t.script.children = []*node{raw(a.Script)}
	}

	var sb strings.Builder
	writeNodes(&sb, t.nodes)
	return []byte(sb.String()), nil
}

// rescale shifts el's viewBox by (dx, dy) and applies the same delta to
// numeric width/height attributes, leaving non-numeric ones (percentages)
// untouched.
func rescale(el *node, dx, dy float64) error {
	vb, _ := el.attr("viewBox")
	fields := strings.Fields(vb)
	if len(fields) != 4 {
		return &TemplateError{Reason: fmt.Sprintf("invalid viewBox %q", vb)}
	}

	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return &TemplateError{Reason: fmt.Sprintf("invalid viewBox value %q", f), Err: err}
		}
		vals[i] = v
	}
	vals[2] += dx
	vals[3] += dy
	if vals[2] <= 0 || vals[3] <= 0 {
		return &TemplateError{Reason: fmt.Sprintf("rescaled viewBox %gx%g is not positive", vals[2], vals[3])}
	}

	el.setAttr("viewBox", fmt.Sprintf("%s %s %s %s",
		formatNum(vals[0]), formatNum(vals[1]), formatNum(vals[2]), formatNum(vals[3])))

	for attr, delta := range map[string]float64{"width": dx, "height": dy} {
		s, ok := el.attr(attr)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue // percentages and other units stay as authored
		}
		el.setAttr(attr, formatNum(v+delta))
	}

	return nil
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
