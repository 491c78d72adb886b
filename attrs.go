// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

import (
	"strings"
)

// Attribute is a single attribute of an element.
//
// Values holds the whitespace-delimited tokens of the raw attribute
// value, in source order. `class="a b c"` yields ["a", "b", "c"].
// A bare attribute with no "=value" part has a nil Values slice.
type Attribute struct {
	Name   string
	Values []string
}

// newAttribute splits the raw value (the span inside the quotes, or the
// unquoted token) on whitespace, discarding empty tokens produced by
// repeated whitespace.
func newAttribute(name, raw string) Attribute {
	return Attribute{Name: name, Values: strings.Fields(raw)}
}

// ValuesString joins the value tokens with single spaces.
func (a *Attribute) ValuesString() string {
	return strings.Join(a.Values, " ")
}

// FirstValue returns the first value token, if any.
func (a *Attribute) FirstValue() (string, bool) {
	if len(a.Values) == 0 {
		return "", false
	}
	return a.Values[0], true
}

// IsBare reports whether the attribute had no "=value" part in the source.
func (a *Attribute) IsBare() bool {
	return a.Values == nil
}

// AttributeSet is the ordered set of attributes on one element.
//
// Names are unique within a set; storing a name that is already present
// replaces the existing values in place, so the last occurrence in the
// source wins while the original position is kept.
type AttributeSet struct {
	attrs []Attribute
}

// Len returns the number of attributes in the set.
func (s *AttributeSet) Len() int {
	return len(s.attrs)
}

// Get returns the attribute with the given name. Lookup is
// case-sensitive; names are stored as written in the source.
func (s *AttributeSet) Get(name string) (*Attribute, bool) {
	for i := range s.attrs {
		if s.attrs[i].Name == name {
			return &s.attrs[i], true
		}
	}
	return nil, false
}

// Set stores the attribute, overwriting any existing values for the
// same name.
func (s *AttributeSet) Set(attr Attribute) {
	for i := range s.attrs {
		if s.attrs[i].Name == attr.Name {
			s.attrs[i].Values = attr.Values
			return
		}
	}
	s.attrs = append(s.attrs, attr)
}

// Put stores the attribute only if its name is not already present.
// It reports whether the attribute was added.
func (s *AttributeSet) Put(attr Attribute) bool {
	if _, ok := s.Get(attr.Name); ok {
		return false
	}
	s.attrs = append(s.attrs, attr)
	return true
}

// All returns the attributes in source order. The slice is shared with
// the set; callers must not modify it.
func (s *AttributeSet) All() []Attribute {
	return s.attrs
}
