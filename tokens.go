// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

// Token represents a single markup construct from the input: a tag,
// a run of text, a comment, or a doctype declaration.
type Token struct {
	Position

	// End is the byte offset in the original input.
	// It is exclusive: input[Start:End] is the token's lexeme.
	End int

	Kind Kind

	// Name is the tag name for OpenTag, SelfClosingTag, and CloseTag.
	Name string

	// Text is the literal payload for TextRun.
	Text string

	// Attrs are the attributes of an OpenTag or SelfClosingTag,
	// in source order. Repeated names are resolved by the parser.
	Attrs []Attribute
}

// Is reports whether tok.Kind matches the provided kind.
//
// It returns false if tok is nil.
func (tok *Token) Is(kind Kind) bool {
	if tok == nil {
		return false
	}
	return tok.Kind == kind
}

// Length is the length of the lexeme, in bytes.
func (tok *Token) Length() int {
	return tok.End - tok.Position.Start
}

// Lexeme is a helper to return the original text of the token.
func (tok *Token) Lexeme(input string) string {
	return input[tok.Position.Start:tok.End]
}

// Position represents a position in the original source code.
// All fields are 1-based where applicable.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, character column
	Start  int // byte index into input (0-based); always required
}

// Span is a range of bytes in the original source, carrying the line
// and column of its first byte for diagnostics.
type Span struct {
	Start  int // byte offset, inclusive
	End    int // byte offset, exclusive
	Line   int // 1-based line of Start
	Column int // 1-based column of Start
}

func spanFromToken(tok *Token) Span {
	return Span{
		Start:  tok.Position.Start,
		End:    tok.End,
		Line:   tok.Position.Line,
		Column: tok.Position.Column,
	}
}
