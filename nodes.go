// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

import (
	"encoding/json"
	"strings"
)

// NodeKind discriminates the two node variants.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
)

// String implements the fmt.Stringer interface.
func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "ElementNode"
	case TextNode:
		return "TextNode"
	}
	return "InvalidNode"
}

// Node is the interface implemented by all tree nodes. It is sealed:
// the only implementations are *Element and *Text, so a type switch
// over those two cases is exhaustive.
//
// A Text node never has children; that invariant is carried by the
// types themselves, not checked at run time.
type Node interface {
	Kind() NodeKind
	Span() Span

	writeHTML(sb *strings.Builder)
}

// Element is a node with a tag name, an attribute set, and ordered
// children.
//
// The root of a parse is a synthetic Element with an empty tag name
// whose children are the top-level nodes of the source. This lets
// "no top-level element" and "one top-level element" be represented
// uniformly.
type Element struct {
	name        string
	selfClosing bool
	// closed records whether the source contained a matching close tag.
	// Elements recovered by implicit closing keep closed == false so
	// that serialization does not invent close tags the source lacked.
	closed   bool
	attrs    AttributeSet
	children []Node
	span     Span
}

// NewElement creates a detached element with the given tag name.
func NewElement(name string) *Element {
	return &Element{name: name, closed: true}
}

func newRootElement() *Element {
	return &Element{}
}

// Kind returns ElementNode.
func (el *Element) Kind() NodeKind { return ElementNode }

// Span reports where in the source the element's open tag appeared.
func (el *Element) Span() Span { return el.span }

// TagName returns the element's tag name, case-preserved as written in
// the source. The second return is false only for the synthetic root,
// which has no tag name meaningful to the caller.
func (el *Element) TagName() (string, bool) {
	return el.name, el.name != ""
}

// Attributes returns the element's attribute set. The set is shared
// with the element; mutating it mutates the element.
func (el *Element) Attributes() *AttributeSet {
	return &el.attrs
}

// Attr returns the named attribute, if present.
func (el *Element) Attr(name string) (*Attribute, bool) {
	return el.attrs.Get(name)
}

// Children returns the element's children in document order. The slice
// is shared with the element; callers must not modify it.
func (el *Element) Children() []Node {
	return el.children
}

// IsSelfClosing reports whether the element was written with
// self-closing syntax ("<br/>").
func (el *Element) IsSelfClosing() bool {
	return el.selfClosing
}

// AppendChild adds a node at the end of the element's children.
func (el *Element) AppendChild(n Node) {
	el.children = append(el.children, n)
}

// Rename changes the element's tag name. Renaming the synthetic root
// turns it into an ordinary element.
func (el *Element) Rename(name string) {
	el.name = name
}

// SetAttribute stores the attribute, overwriting an existing one with
// the same name.
func (el *Element) SetAttribute(attr Attribute) {
	el.attrs.Set(attr)
}

// PutAttribute stores the attribute only if the name is not already
// present, and reports whether it was added.
func (el *Element) PutAttribute(attr Attribute) bool {
	return el.attrs.Put(attr)
}

// MarshalJSON implements the json.Marshaler interface.
func (el *Element) MarshalJSON() ([]byte, error) {
	type attrJSON struct {
		Name   string   `json:"name"`
		Values []string `json:"values,omitempty"`
	}
	var attrs []attrJSON
	for _, a := range el.attrs.All() {
		attrs = append(attrs, attrJSON{Name: a.Name, Values: a.Values})
	}
	return json.Marshal(struct {
		Tag      string     `json:"tag,omitempty"`
		Attrs    []attrJSON `json:"attrs,omitempty"`
		Children []Node     `json:"children,omitempty"`
	}{
		Tag:      el.name,
		Attrs:    attrs,
		Children: el.children,
	})
}

// Text is a node holding a literal string. It has no tag name, no
// attributes, and no children.
type Text struct {
	value string
	span  Span
}

// NewText creates a detached text node.
func NewText(value string) *Text {
	return &Text{value: value}
}

// Kind returns TextNode.
func (t *Text) Kind() NodeKind { return TextNode }

// Span reports where in the source the text run appeared.
func (t *Text) Span() Span { return t.span }

// Value returns the literal payload.
func (t *Text) Value() string { return t.value }

// MarshalJSON implements the json.Marshaler interface.
func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Text string `json:"text"`
	}{Text: t.value})
}

// TagName returns the tag name of an Element node. For Text nodes
// (and the synthetic root) it returns ("", false).
func TagName(n Node) (string, bool) {
	switch n := n.(type) {
	case *Element:
		return n.TagName()
	case *Text:
		return "", false
	}
	return "", false
}

// TextValue returns the payload of a Text node. For Element nodes it
// returns ("", false); text is only ever visible on Text children,
// never synthesized from descendants.
func TextValue(n Node) (string, bool) {
	switch n := n.(type) {
	case *Element:
		return "", false
	case *Text:
		return n.value, true
	}
	return "", false
}

// Children returns the ordered children of n. Text nodes always yield
// nil.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Element:
		return n.children
	case *Text:
		return nil
	}
	return nil
}

// Attributes returns the attribute set of an Element node, or nil for
// a Text node.
func Attributes(n Node) *AttributeSet {
	switch n := n.(type) {
	case *Element:
		return &n.attrs
	case *Text:
		return nil
	}
	return nil
}
