// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

import (
	"strings"
)

// HTML serializes the subtree rooted at el back to markup.
//
// The output is normalized, not byte-identical to the source: all
// attribute values are double-quoted with their tokens joined by
// single spaces, and intra-tag whitespace collapses. For well-formed
// input (every open tag matched by a close tag, attributes
// well-quoted), re-parsing the output yields a tree equal in tag
// names, attribute sets, and text payloads.
//
// Elements whose close tag was recovered rather than read from the
// source are serialized without a close tag, so leniently parsed
// markup like "<p>Some text<br></p>" reproduces its unclosed "<br>".
// The synthetic root contributes no tags of its own.
func (el *Element) HTML() string {
	var sb strings.Builder
	el.writeHTML(&sb)
	return sb.String()
}

func (el *Element) writeHTML(sb *strings.Builder) {
	if el.name != "" {
		sb.WriteByte('<')
		sb.WriteString(el.name)
		for _, attr := range el.attrs.attrs {
			sb.WriteByte(' ')
			sb.WriteString(attr.Name)
			if attr.IsBare() {
				continue
			}
			sb.WriteString(`="`)
			sb.WriteString(attr.ValuesString())
			sb.WriteByte('"')
		}
		if el.selfClosing {
			sb.WriteString("/>")
			return
		}
		sb.WriteByte('>')
	}

	for _, child := range el.children {
		child.writeHTML(sb)
	}

	if el.name != "" && el.closed {
		sb.WriteString("</")
		sb.WriteString(el.name)
		sb.WriteByte('>')
	}
}

func (t *Text) writeHTML(sb *strings.Builder) {
	sb.WriteString(t.value)
}
