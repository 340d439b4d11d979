// Package css builds small, deterministic CSS rule strings for the
// generated <style> block pkg/template fills.
package css

import (
	"fmt"
	"sort"
	"strings"
)

// CSS is a property->value rule body.
type CSS map[string]string

// Compile renders the rule body as "prop:value;prop:value", with
// properties sorted for deterministic output.
func (c CSS) Compile() string {
	props := make([]string, 0, len(c))
	for p := range c {
		props = append(props, p)
	}
	sort.Strings(props)

	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, fmt.Sprintf("%s:%s", p, c[p]))
	}
	return strings.Join(parts, ";")
}

// Rule pairs a selector with its compiled body: "selector{body}".
type Rule struct {
	Selector string
	Body     CSS
}

func (r Rule) String() string {
	return fmt.Sprintf("%s{%s}", r.Selector, r.Body.Compile())
}

// Sheet concatenates Rules, in order, into one stylesheet string, the
// shape pkg/template uses to fill a template's generated-style element.
type Sheet []Rule

func (s Sheet) String() string {
	var sb strings.Builder
	for _, r := range s {
		sb.WriteString(r.String())
	}
	return sb.String()
}
