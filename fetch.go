// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

import (
	"iter"
	"slices"
)

// Predicate selects elements by tag name and attribute set.
type Predicate func(tag string, attrs *AttributeSet) bool

// Descendants returns a lazy pre-order iteration over the subtree
// rooted at el, starting with el itself. Parents are yielded before
// their children, and children in document order.
func (el *Element) Descendants() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		// explicit stack instead of recursion, so traversal depth is
		// bounded by the heap
		stack := make([]Node, 0, 16)
		stack = append(stack, el)
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n) {
				return
			}
			if e, ok := n.(*Element); ok {
				// reverse iteration so that first child is popped first
				for i := len(e.children) - 1; i >= 0; i-- {
					stack = append(stack, e.children[i])
				}
			}
		}
	}
}

// Search returns a lazy pre-order iteration over the elements of el's
// subtree (el included) for which pred returns true. Text nodes are
// never yielded; the synthetic root is offered to the predicate with an
// empty tag name.
func (el *Element) Search(pred Predicate) iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for n := range el.Descendants() {
			e, ok := n.(*Element)
			if !ok {
				continue
			}
			if pred(e.name, &e.attrs) {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Find returns the first descendant element (el included) with the
// given tag name.
func (el *Element) Find(tag string) (*Element, bool) {
	for e := range el.Search(func(name string, _ *AttributeSet) bool { return name == tag }) {
		return e, true
	}
	return nil, false
}

// FindAll returns every descendant element (el included) with the
// given tag name, in document order.
func (el *Element) FindAll(tag string) []*Element {
	var matches []*Element
	for e := range el.Search(func(name string, _ *AttributeSet) bool { return name == tag }) {
		matches = append(matches, e)
	}
	return matches
}

// Fetch selects descendant elements by attribute criteria. The zero
// criteria match nothing useful; set at least a key or a value.
//
//	// every element with id="mydiv"
//	matches := root.ChildrenFetch().Key("id").Value("mydiv").All()
//
//	// every element whose class attribute contains the token "someclass"
//	matches = root.ChildrenFetch().Key("class").ValuePart("someclass").All()
type Fetch struct {
	node      *Element
	key       string
	value     string
	hasValue  bool
	valuePart string
}

// ChildrenFetch returns a fetcher over el's descendants, el excluded.
func (el *Element) ChildrenFetch() Fetch {
	return Fetch{node: el}
}

// Key restricts matches to elements carrying the named attribute.
func (f Fetch) Key(key string) Fetch {
	f.key = key
	return f
}

// Value requires the attribute's joined value tokens to equal value
// exactly.
func (f Fetch) Value(value string) Fetch {
	f.value, f.hasValue = value, true
	return f
}

// ValuePart requires one of the attribute's value tokens to equal
// part. Ignored when an exact Value is set.
func (f Fetch) ValuePart(part string) Fetch {
	f.valuePart = part
	return f
}

// All walks the subtree in pre-order and returns the matching
// elements in document order.
func (f Fetch) All() []*Element {
	var matches []*Element
	for n := range f.node.Descendants() {
		e, ok := n.(*Element)
		if !ok || e == f.node {
			continue
		}
		if f.matches(e) {
			matches = append(matches, e)
		}
	}
	return matches
}

// First returns the first matching element in document order.
func (f Fetch) First() (*Element, bool) {
	for n := range f.node.Descendants() {
		e, ok := n.(*Element)
		if !ok || e == f.node {
			continue
		}
		if f.matches(e) {
			return e, true
		}
	}
	return nil, false
}

func (f Fetch) matches(e *Element) bool {
	if f.key != "" {
		attr, ok := e.Attr(f.key)
		if !ok {
			return false
		}
		return f.matchValue(attr)
	}
	// no key: any attribute may satisfy the value criteria
	for i := range e.attrs.attrs {
		if f.matchValue(&e.attrs.attrs[i]) {
			return true
		}
	}
	return false
}

func (f Fetch) matchValue(attr *Attribute) bool {
	if f.hasValue {
		return attr.ValuesString() == f.value
	}
	if f.valuePart != "" {
		return slices.Contains(attr.Values, f.valuePart)
	}
	// finding the key alone is enough
	return true
}
