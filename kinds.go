// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

// Kind implements enums for tokens
type Kind int

const (
	UNKNOWN Kind = iota

	// OpenTag is "<name ...>" including its attributes.
	OpenTag
	// CloseTag is "</name>".
	CloseTag
	// SelfClosingTag is "<name .../>".
	SelfClosingTag
	// TextRun is a literal span of characters between constructs.
	TextRun
	// Comment is "<!-- ... -->". Comments never produce tree nodes.
	Comment
	// Doctype is "<!...>" other than a comment, e.g. "<!DOCTYPE html>".
	// Doctypes never produce tree nodes.
	Doctype
	// EndOfInput is the sentinel token returned once the source is exhausted.
	EndOfInput
)

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case OpenTag:
		return "OpenTag"
	case CloseTag:
		return "CloseTag"
	case SelfClosingTag:
		return "SelfClosingTag"
	case TextRun:
		return "TextRun"
	case Comment:
		return "Comment"
	case Doctype:
		return "Doctype"
	case EndOfInput:
		return "EndOfInput"
	}
	return "Unknown"
}
