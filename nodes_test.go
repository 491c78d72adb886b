// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mdhender/htmldom"
)

func TestAccessors(t *testing.T) {
	root := mustParse(t, `<div id="main">Text</div>`, htmldom.NewLoadSettings())

	if name, ok := root.TagName(); ok {
		t.Errorf("root tag = %q, want none", name)
	}

	div := childElement(t, root, 0)
	if name, ok := htmldom.TagName(div); !ok || name != "div" {
		t.Errorf("TagName = %q/%v, want div/true", name, ok)
	}
	if _, ok := htmldom.TextValue(div); ok {
		t.Errorf("TextValue on element succeeded; text is never synthesized from descendants")
	}
	if attrs := htmldom.Attributes(div); attrs == nil || attrs.Len() != 1 {
		t.Errorf("Attributes = %v, want one attribute", attrs)
	}

	text := div.Children()[0]
	if _, ok := htmldom.TagName(text); ok {
		t.Errorf("TagName on text node succeeded")
	}
	if v, ok := htmldom.TextValue(text); !ok || v != "Text" {
		t.Errorf("TextValue = %q/%v, want Text/true", v, ok)
	}
	if htmldom.Children(text) != nil {
		t.Errorf("text node has children")
	}
	if htmldom.Attributes(text) != nil {
		t.Errorf("text node has attributes")
	}
}

func TestMutation(t *testing.T) {
	el := htmldom.NewElement("a")
	el.SetAttribute(htmldom.Attribute{Name: "href", Values: []string{"x"}})

	if ok := el.PutAttribute(htmldom.Attribute{Name: "href", Values: []string{"y"}}); ok {
		t.Errorf("PutAttribute overwrote an existing attribute")
	}
	if href, _ := el.Attr("href"); href.ValuesString() != "x" {
		t.Errorf("href = %q, want %q", href.ValuesString(), "x")
	}

	el.SetAttribute(htmldom.Attribute{Name: "href", Values: []string{"y"}})
	if href, _ := el.Attr("href"); href.ValuesString() != "y" {
		t.Errorf("href = %q, want %q", href.ValuesString(), "y")
	}

	el.AppendChild(htmldom.NewText("link"))
	if len(el.Children()) != 1 {
		t.Fatalf("children = %d, want 1", len(el.Children()))
	}

	el.Rename("link")
	if name, _ := el.TagName(); name != "link" {
		t.Errorf("tag = %q, want %q", name, "link")
	}
}

func TestNodeJSON(t *testing.T) {
	root := mustParse(t, `<a href="x">Link</a>`, htmldom.NewLoadSettings())

	data, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"tag":"a"`, `"name":"href"`, `"text":"Link"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("json %s missing %s", data, want)
		}
	}
}

func TestNodeKindString(t *testing.T) {
	if got, want := htmldom.ElementNode.String(), "ElementNode"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := htmldom.TextNode.String(), "TextNode"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
