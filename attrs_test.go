// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom_test

import (
	"slices"
	"testing"

	"github.com/mdhender/htmldom"
)

func TestAttributeSplitting(t *testing.T) {
	root := mustParse(t, `<a href="x" class="a b c">`, htmldom.NewLoadSettings())
	a := childElement(t, root, 0)

	href, ok := a.Attr("href")
	if !ok {
		t.Fatalf("href missing")
	}
	if !slices.Equal(href.Values, []string{"x"}) {
		t.Errorf("href values = %v, want [x]", href.Values)
	}

	class, ok := a.Attr("class")
	if !ok {
		t.Fatalf("class missing")
	}
	if !slices.Equal(class.Values, []string{"a", "b", "c"}) {
		t.Errorf("class values = %v, want [a b c]", class.Values)
	}
	if got, want := class.ValuesString(), "a b c"; got != want {
		t.Errorf("ValuesString = %q, want %q", got, want)
	}
	if first, _ := class.FirstValue(); first != "a" {
		t.Errorf("FirstValue = %q, want %q", first, "a")
	}
}

func TestBareAttribute(t *testing.T) {
	root := mustParse(t, `<input type=text required>`, htmldom.NewLoadSettings())
	input := childElement(t, root, 0)

	required, ok := input.Attr("required")
	if !ok {
		t.Fatalf("required missing")
	}
	if !required.IsBare() {
		t.Errorf("required not bare")
	}
	if _, ok := required.FirstValue(); ok {
		t.Errorf("bare attribute has a first value")
	}

	typ, _ := input.Attr("type")
	if typ.IsBare() {
		t.Errorf("type reported bare")
	}
}

func TestAttributeSetOrder(t *testing.T) {
	var set htmldom.AttributeSet
	set.Set(htmldom.Attribute{Name: "a", Values: []string{"1"}})
	set.Set(htmldom.Attribute{Name: "b", Values: []string{"2"}})
	set.Set(htmldom.Attribute{Name: "a", Values: []string{"3"}})

	if set.Len() != 2 {
		t.Fatalf("len = %d, want 2", set.Len())
	}
	// overwriting keeps the original position
	all := set.All()
	if all[0].Name != "a" || all[1].Name != "b" {
		t.Errorf("order = [%s %s], want [a b]", all[0].Name, all[1].Name)
	}
	if got, want := all[0].ValuesString(), "3"; got != want {
		t.Errorf("a = %q, want %q", got, want)
	}

	if set.Put(htmldom.Attribute{Name: "b"}) {
		t.Errorf("Put replaced an existing attribute")
	}
	if !set.Put(htmldom.Attribute{Name: "c"}) {
		t.Errorf("Put failed for a new attribute")
	}
}
