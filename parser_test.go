// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mdhender/htmldom"
)

func mustParse(t *testing.T, input string, settings htmldom.LoadSettings) *htmldom.Element {
	t.Helper()
	root, err := htmldom.FromHTML(context.Background(), input, settings)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	if root == nil {
		t.Fatalf("parse %q: no tree", input)
	}
	return root
}

func childElement(t *testing.T, el *htmldom.Element, i int) *htmldom.Element {
	t.Helper()
	children := el.Children()
	if i >= len(children) {
		t.Fatalf("child %d out of range, have %d children", i, len(children))
	}
	e, ok := children[i].(*htmldom.Element)
	if !ok {
		t.Fatalf("child %d is %v, want ElementNode", i, children[i].Kind())
	}
	return e
}

func childText(t *testing.T, el *htmldom.Element, i int) string {
	t.Helper()
	children := el.Children()
	if i >= len(children) {
		t.Fatalf("child %d out of range, have %d children", i, len(children))
	}
	text, ok := children[i].(*htmldom.Text)
	if !ok {
		t.Fatalf("child %d is %v, want TextNode", i, children[i].Kind())
	}
	return text.Value()
}

func TestFromHTML(t *testing.T) {
	html := `<p>Some text <img src="a"></p><a>Link</a><br/>`

	root := mustParse(t, html, htmldom.NewLoadSettings())
	if _, ok := root.TagName(); ok {
		t.Errorf("root has a tag name, want synthetic root")
	}
	if len(root.Children()) != 3 {
		t.Fatalf("root children = %d, want 3", len(root.Children()))
	}

	p := childElement(t, root, 0)
	if name, _ := p.TagName(); name != "p" {
		t.Fatalf("first child = %q, want %q", name, "p")
	}
	if got, want := childText(t, p, 0), "Some text "; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	// the img never closes; it is auto-closed when </p> is reached
	img := childElement(t, p, 1)
	if name, _ := img.TagName(); name != "img" {
		t.Errorf("nested child = %q, want %q", name, "img")
	}

	a := childElement(t, root, 1)
	if name, _ := a.TagName(); name != "a" {
		t.Errorf("second child = %q, want %q", name, "a")
	}
	if got, want := childText(t, a, 0), "Link"; got != want {
		t.Errorf("link text = %q, want %q", got, want)
	}

	br := childElement(t, root, 2)
	if name, _ := br.TagName(); name != "br" {
		t.Errorf("third child = %q, want %q", name, "br")
	}
	if !br.IsSelfClosing() {
		t.Errorf("br not marked self-closing")
	}
}

func TestTextSegmentation(t *testing.T) {
	// a tag always terminates the current text run, so text flowing
	// around a nested element is split into separate nodes
	html := `<p>Text <sup>child</sup> more text</p>`

	root := mustParse(t, html, htmldom.NewLoadSettings())
	p := childElement(t, root, 0)
	if len(p.Children()) != 3 {
		t.Fatalf("p children = %d, want 3", len(p.Children()))
	}
	if got, want := childText(t, p, 0), "Text "; got != want {
		t.Errorf("first text = %q, want %q", got, want)
	}
	sup := childElement(t, p, 1)
	if name, _ := sup.TagName(); name != "sup" {
		t.Errorf("middle child = %q, want %q", name, "sup")
	}
	if got, want := childText(t, sup, 0), "child"; got != want {
		t.Errorf("sup text = %q, want %q", got, want)
	}
	if got, want := childText(t, p, 2), " more text"; got != want {
		t.Errorf("last text = %q, want %q", got, want)
	}
}

func TestLenientCloseTagRecovery(t *testing.T) {
	// the missing </p> is auto-closed when </div> is reached
	root := mustParse(t, `<div><p>Text</div>`, htmldom.NewLoadSettings())

	div := childElement(t, root, 0)
	if name, _ := div.TagName(); name != "div" {
		t.Fatalf("tag = %q, want %q", name, "div")
	}
	if len(div.Children()) != 1 {
		t.Fatalf("div children = %d, want 1", len(div.Children()))
	}
	p := childElement(t, div, 0)
	if name, _ := p.TagName(); name != "p" {
		t.Fatalf("tag = %q, want %q", name, "p")
	}
	if got, want := childText(t, p, 0), "Text"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestUnmatchedCloseTagIgnored(t *testing.T) {
	root := mustParse(t, `<div>Text</span> more</div>`, htmldom.NewLoadSettings())
	div := childElement(t, root, 0)
	if len(div.Children()) != 2 {
		t.Fatalf("div children = %d, want 2", len(div.Children()))
	}
	if got, want := childText(t, div, 1), " more"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestUnclosedAtEndOfInput(t *testing.T) {
	// unmatched open tags are tolerated, not rejected
	root := mustParse(t, `<div><p>Text`, htmldom.NewLoadSettings())
	div := childElement(t, root, 0)
	p := childElement(t, div, 0)
	if got, want := childText(t, p, 0), "Text"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestEmptySource(t *testing.T) {
	for _, input := range []string{"", "   ", " \n\t \n"} {
		for _, separately := range []bool{true, false} {
			settings := htmldom.NewLoadSettings().AllTextSeparately(separately)
			root, err := htmldom.FromHTML(context.Background(), input, settings)
			if err != nil {
				t.Errorf("parse %q: unexpected error %v", input, err)
			}
			if root != nil {
				t.Errorf("parse %q: root = %v, want nil", input, root)
			}
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("unterminated tag", func(t *testing.T) {
		root, err := htmldom.FromHTML(context.Background(), `<div`, htmldom.NewLoadSettings())
		var unterminated *htmldom.ErrUnterminatedTag
		if !errors.As(err, &unterminated) {
			t.Fatalf("error = %v, want ErrUnterminatedTag", err)
		}
		if root != nil {
			t.Errorf("got a tree alongside the error")
		}
	})
	t.Run("unterminated attribute value", func(t *testing.T) {
		root, err := htmldom.FromHTML(context.Background(), `<p><a href="x>y</a></p`+`x`, htmldom.NewLoadSettings())
		var unterminated *htmldom.ErrUnterminatedAttributeValue
		if !errors.As(err, &unterminated) {
			t.Fatalf("error = %v, want ErrUnterminatedAttributeValue", err)
		}
		if root != nil {
			t.Errorf("got a tree alongside the error")
		}
	})
}

func TestWhitespaceRuns(t *testing.T) {
	html := "<div> <p>x</p> </div>"

	t.Run("materialized by default", func(t *testing.T) {
		root := mustParse(t, html, htmldom.NewLoadSettings())
		div := childElement(t, root, 0)
		if len(div.Children()) != 3 {
			t.Fatalf("div children = %d, want 3", len(div.Children()))
		}
		if got, want := childText(t, div, 0), " "; got != want {
			t.Errorf("leading run = %q, want %q", got, want)
		}
		if got, want := childText(t, div, 2), " "; got != want {
			t.Errorf("trailing run = %q, want %q", got, want)
		}
	})

	t.Run("dropped when disabled", func(t *testing.T) {
		root := mustParse(t, html, htmldom.NewLoadSettings().AllTextSeparately(false))
		div := childElement(t, root, 0)
		if len(div.Children()) != 1 {
			t.Fatalf("div children = %d, want 1", len(div.Children()))
		}
		p := childElement(t, div, 0)
		if got, want := childText(t, p, 0), "x"; got != want {
			t.Errorf("text = %q, want %q", got, want)
		}
	})
}

func TestCoalesceAcrossComments(t *testing.T) {
	html := `<p>one<!-- between -->two</p>`

	t.Run("separate by default", func(t *testing.T) {
		root := mustParse(t, html, htmldom.NewLoadSettings())
		p := childElement(t, root, 0)
		if len(p.Children()) != 2 {
			t.Fatalf("p children = %d, want 2", len(p.Children()))
		}
		if got, want := childText(t, p, 0), "one"; got != want {
			t.Errorf("first run = %q, want %q", got, want)
		}
		if got, want := childText(t, p, 1), "two"; got != want {
			t.Errorf("second run = %q, want %q", got, want)
		}
	})

	t.Run("coalesced when disabled", func(t *testing.T) {
		root := mustParse(t, html, htmldom.NewLoadSettings().AllTextSeparately(false))
		p := childElement(t, root, 0)
		if len(p.Children()) != 1 {
			t.Fatalf("p children = %d, want 1", len(p.Children()))
		}
		if got, want := childText(t, p, 0), "onetwo"; got != want {
			t.Errorf("coalesced run = %q, want %q", got, want)
		}
	})
}

func TestEmptyElement(t *testing.T) {
	root := mustParse(t, `<div></div>`, htmldom.NewLoadSettings())
	div := childElement(t, root, 0)
	if len(div.Children()) != 0 {
		t.Errorf("div children = %d, want 0", len(div.Children()))
	}
}

func TestRepeatedAttributeLastWins(t *testing.T) {
	root := mustParse(t, `<a id="x" id="y">link</a>`, htmldom.NewLoadSettings())
	a := childElement(t, root, 0)
	if a.Attributes().Len() != 1 {
		t.Fatalf("attr count = %d, want 1", a.Attributes().Len())
	}
	id, ok := a.Attr("id")
	if !ok {
		t.Fatalf("id attribute missing")
	}
	if got, want := id.ValuesString(), "y"; got != want {
		t.Errorf("id = %q, want %q", got, want)
	}
}

func TestNamesCasePreserved(t *testing.T) {
	root := mustParse(t, `<DiV Class="A">text</DiV>`, htmldom.NewLoadSettings())
	div := childElement(t, root, 0)
	if name, _ := div.TagName(); name != "DiV" {
		t.Errorf("tag = %q, want %q", name, "DiV")
	}
	if _, ok := div.Attr("class"); ok {
		t.Errorf("lookup of %q succeeded, names must not be folded", "class")
	}
	if _, ok := div.Attr("Class"); !ok {
		t.Errorf("attribute %q missing", "Class")
	}
	// the matching close tag is case-sensitive, so the element is closed
	if len(div.Children()) != 1 {
		t.Errorf("div children = %d, want 1", len(div.Children()))
	}
}

func TestDoctypeAndCommentsSkipped(t *testing.T) {
	root := mustParse(t, "<!DOCTYPE html>\n<!-- header --><html>x</html>", htmldom.NewLoadSettings())
	if len(root.Children()) != 1 {
		t.Fatalf("root children = %d, want 1", len(root.Children()))
	}
	html := childElement(t, root, 0)
	if name, _ := html.TagName(); name != "html" {
		t.Errorf("tag = %q, want %q", name, "html")
	}
}

func TestEntityDecoding(t *testing.T) {
	html := `<p title="a&amp;b">x &lt;y&gt; &unknown;</p>`

	t.Run("passed through by default", func(t *testing.T) {
		root := mustParse(t, html, htmldom.NewLoadSettings())
		p := childElement(t, root, 0)
		title, _ := p.Attr("title")
		if got, want := title.ValuesString(), "a&amp;b"; got != want {
			t.Errorf("title = %q, want %q", got, want)
		}
		if got, want := childText(t, p, 0), "x &lt;y&gt; &unknown;"; got != want {
			t.Errorf("text = %q, want %q", got, want)
		}
	})

	t.Run("fixed set decoded when enabled", func(t *testing.T) {
		root := mustParse(t, html, htmldom.NewLoadSettings().DecodeEntities(true))
		p := childElement(t, root, 0)
		title, _ := p.Attr("title")
		if got, want := title.ValuesString(), "a&b"; got != want {
			t.Errorf("title = %q, want %q", got, want)
		}
		if got, want := childText(t, p, 0), "x <y> &unknown;"; got != want {
			t.Errorf("text = %q, want %q", got, want)
		}
	})
}

func TestDeepNesting(t *testing.T) {
	// the open-element stack lives on the heap, so pathological nesting
	// depth must not overflow anything
	const depth = 100_000
	var sb []byte
	for range depth {
		sb = append(sb, []byte("<d>")...)
	}

	root := mustParse(t, string(sb), htmldom.NewLoadSettings())
	el, levels := root, 0
	for len(el.Children()) > 0 {
		el = el.Children()[0].(*htmldom.Element)
		levels++
	}
	if levels != depth {
		t.Errorf("nesting depth = %d, want %d", levels, depth)
	}
}

func TestTextNodesHaveNoChildren(t *testing.T) {
	root := mustParse(t, `<div>a<p>b<i>c</i>d</p>e</div>`, htmldom.NewLoadSettings())
	for n := range root.Descendants() {
		if n.Kind() != htmldom.TextNode {
			continue
		}
		if kids := htmldom.Children(n); len(kids) != 0 {
			t.Errorf("text node has %d children, want 0", len(kids))
		}
	}
}
