package svgcompose

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Element is a minimal, order-preserving XML node tree. It keeps Attrs
// and Children as explicit slices, so two structurally identical
// elements always serialize to the byte-identical string the
// content-addressed definition table keys on.
type Element struct {
	Tag      string
	Attrs    []xml.Attr
	Text     string
	Children []*Element
}

// NewElement builds an Element with the given tag and attributes, in the
// order supplied.
func NewElement(tag string, attrs ...xml.Attr) *Element {
	return &Element{Tag: tag, Attrs: attrs}
}

// Attr is a small constructor for xml.Attr with a bare (unprefixed) name.
func Attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// Add appends children in order and returns the receiver for chaining.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// MarshalXML implements xml.Marshaler so Element trees serialize through
// encoding/xml's encoder while keeping this type's own attribute and
// child order rather than encoding/xml's default field-reflection order.
func (e *Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Tag}, Attr: e.Attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, child := range e.Children {
		if err := enc.Encode(child); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Canonical renders the element to its canonical serialization: no
// indentation, attributes and children in the order this tree carries
// them. This is the string the definition table keys on.
func (e *Element) Canonical() string {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(e); err != nil {
		// Element trees built by this package only ever carry valid
		// tag/attribute names, so Encode cannot fail in practice.
		panic(fmt.Sprintf("svgcompose: unexpected encode failure: %v", err))
	}
	return buf.String()
}

// String renders the element the same way Canonical does; it exists so
// Elements satisfy fmt.Stringer for logging.
func (e *Element) String() string {
	return e.Canonical()
}
