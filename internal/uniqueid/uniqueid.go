// Package uniqueid generates short, stable, monotonically increasing
// identifiers for content-addressed SVG elements.
package uniqueid

import "strconv"

// Generator produces IDs shaped "{prefix}{n}" with n starting at 1 and
// incrementing by one on every call to Next, so identifiers come out in
// the order their referents are first encountered.
type Generator struct {
	prefix string
	n      int
}

// New returns a Generator that will produce prefix+"1", prefix+"2", ...
func New(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// Next returns the next id in the sequence.
func (g *Generator) Next() string {
	g.n++
	return g.prefix + strconv.Itoa(g.n)
}
