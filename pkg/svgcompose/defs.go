package svgcompose

import (
	"encoding/xml"

	"github.com/asciireel/svgcast/internal/uniqueid"
)

// definitionTable maps the canonical serialization of a line's text
// group to a stable "g{N}" id, populated monotonically and never
// shrinking within one render.
type definitionTable struct {
	ids   *uniqueid.Generator
	idFor map[string]string
	defs  []*Element // in first-seen order, for <defs> emission
}

func newDefinitionTable() *definitionTable {
	return &definitionTable{
		ids:   uniqueid.New("g"),
		idFor: make(map[string]string),
	}
}

// intern returns the stable id for textGroup, registering it (and
// recording it for <defs> emission) the first time its canonical
// serialization is seen.
func (t *definitionTable) intern(textGroup *Element) string {
	key := textGroup.Canonical()
	if id, ok := t.idFor[key]; ok {
		return id
	}

	id := t.ids.Next()
	t.idFor[key] = id
	textGroup.Attrs = append([]xml.Attr{Attr("id", id)}, textGroup.Attrs...)
	t.defs = append(t.defs, textGroup)
	return id
}
