// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Lexer invariants and coordinate system
//
// The lexer treats input as an immutable UTF-8 string.
//
// Fields:
//   input       - the original source
//   length      - len(input)
//
//   r           - the current rune, or EOF when we have read past the end.
//
//   posCurrRune - index into input of the first byte of r,
//                 or length when r == EOF.
//   posNextRune - index into input of the first byte of the *next* rune,
//                 or length when r == EOF.
//   anchorPos   - index into input where the current token starts.
//
// Invariants (must always hold):
//   0 <= posCurrRune <= posNextRune <= length
//
//   r == EOF  <=> posCurrRune == posNextRune == length
//
//   r != EOF  => posCurrRune < length && posNextRune > posCurrRune
//                and input[posCurrRune:posNextRune] encodes exactly r.
//
// Anchors and token spans:
//
//   - setAnchor sets anchorPos = posCurrRune. It MUST be called when
//     r is the first rune of the token.
//
//   - Scanners that produce a token should:
//       1. Call setAnchor().
//       2. Repeatedly call advance() while r belongs to the token.
//          When the loop stops, r is the *first rune after the token*
//          (or EOF), and posCurrRune points at the first byte of that rune.
//       3. Slice the token's lexeme as input[anchorPos:posCurrRune].

type Lexer struct {
	name        string // name of the input source
	r           rune   // current rune
	line        int    // line number of current rune
	column      int    // column number of current rune
	posCurrRune int    // position of current rune
	posNextRune int    // position of next rune
	length      int    // length of input buffer
	input       string

	anchorPos    int
	anchorLine   int
	anchorColumn int

	// returns a canonical end of input token once the source is exhausted
	endToken *Token

	// logging
	ctx        context.Context
	logger     *slog.Logger
	tokenCount int
}

// NewLexer creates a lexer over the supplied markup source. The name
// identifies the source in diagnostics; it may be empty.
func NewLexer(ctx context.Context, name, input string, logger *slog.Logger) *Lexer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Lexer{
		name:   name,
		input:  input,
		length: len(input),
		line:   1,
		column: 1,
		ctx:    ctx,
		logger: logger,
	}
	// read the first character to initialize the lexer.
	if l.length == 0 {
		l.r = EOF
	} else {
		r, w := utf8.DecodeRuneInString(l.input)
		l.r, l.posNextRune = r, w
	}
	return l
}

// Scan returns the next token from the input buffer.
//
// Once we reach end of input, we always return the same EndOfInput token.
// The only failures are the two unterminated-construct conditions; any
// other irregularity is folded into a token and left for the parser's
// recovery rules.
func (l *Lexer) Scan() (*Token, error) {
	if l.iseof() {
		if l.endToken == nil {
			l.setAnchor()
			l.endToken = l.token(EndOfInput)
		}
		return l.endToken, nil
	}

	l.setAnchor()

	var tok *Token
	var err error
	if l.r == '<' && l.startsConstruct() {
		tok, err = l.scanMarkup()
	} else {
		tok = l.scanText()
	}
	if err != nil {
		l.logger.LogAttrs(l.ctx, slog.LevelDebug, "lexer: scan failed",
			slog.String("source", l.name),
			slog.String("error", err.Error()))
		return nil, err
	}
	l.tokenCount++
	return tok, nil
}

func (l *Lexer) iseof() bool {
	return l.r == EOF
}

// advance moves to the next rune, updating the line and column counters
// for the rune being left behind.
func (l *Lexer) advance() {
	if l.r == EOF {
		return
	}
	if l.r == LF {
		l.line, l.column = l.line+1, 1
	} else {
		l.column++
	}
	l.posCurrRune = l.posNextRune
	if l.posCurrRune >= l.length {
		l.r, l.posNextRune = EOF, l.length
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.posCurrRune:])
	l.r, l.posNextRune = r, l.posCurrRune+w
}

func (l *Lexer) setAnchor() {
	l.anchorPos = l.posCurrRune
	l.anchorLine = l.line
	l.anchorColumn = l.column
}

// peekNext returns the rune after the current one without advancing.
func (l *Lexer) peekNext() rune {
	if l.posNextRune >= l.length {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.posNextRune:])
	return r
}

// token builds a token covering the span from the anchor to the
// current position.
func (l *Lexer) token(kind Kind) *Token {
	return &Token{
		Position: Position{
			Line:   l.anchorLine,
			Column: l.anchorColumn,
			Start:  l.anchorPos,
		},
		End:  l.posCurrRune,
		Kind: kind,
	}
}

// anchorSpan is the span from the anchor to the current position, used
// for error reporting.
func (l *Lexer) anchorSpan() Span {
	return Span{
		Start:  l.anchorPos,
		End:    l.posCurrRune,
		Line:   l.anchorLine,
		Column: l.anchorColumn,
	}
}

// startsConstruct reports whether the '<' at the current position
// begins a markup construct. A '<' followed by anything that cannot
// start a tag name, a close tag, a comment, or a doctype is literal
// text; that is the "stray '<'" recovery case.
func (l *Lexer) startsConstruct() bool {
	next := l.peekNext()
	return next == '/' || next == '!' || isNameStart(next)
}

// scanText consumes a literal run up to the next markup construct or
// end of input. The run is never empty.
func (l *Lexer) scanText() *Token {
	for l.r != EOF {
		if l.r == '<' && l.startsConstruct() {
			break
		}
		l.advance()
	}
	tok := l.token(TextRun)
	tok.Text = l.input[tok.Position.Start:tok.End]
	return tok
}

// scanMarkup is called with r on the opening '<' of a construct.
func (l *Lexer) scanMarkup() (*Token, error) {
	l.advance() // consume '<'
	switch {
	case l.r == '!':
		if strings.HasPrefix(l.input[l.posCurrRune:], "!--") {
			return l.scanComment()
		}
		return l.scanDoctype()
	case l.r == '/':
		return l.scanCloseTag()
	default:
		return l.scanOpenTag()
	}
}

// scanComment consumes "<!-- ... -->". The comment body is opaque; a
// comment that never terminates leaves the whole construct open, which
// is the unterminated-tag failure.
func (l *Lexer) scanComment() (*Token, error) {
	end := strings.Index(l.input[l.posCurrRune:], "-->")
	if end < 0 {
		for l.r != EOF {
			l.advance()
		}
		return nil, &ErrUnterminatedTag{Span: l.anchorSpan()}
	}
	target := l.posCurrRune + end + len("-->")
	for l.posCurrRune < target {
		l.advance()
	}
	return l.token(Comment), nil
}

// scanDoctype consumes "<!...>" declarations such as "<!DOCTYPE html>".
func (l *Lexer) scanDoctype() (*Token, error) {
	for l.r != EOF && l.r != '>' {
		l.advance()
	}
	if l.r == EOF {
		return nil, &ErrUnterminatedTag{Span: l.anchorSpan()}
	}
	l.advance() // consume '>'
	return l.token(Doctype), nil
}

// scanCloseTag consumes "</name>". Anything between the name and the
// '>' is tolerated and ignored.
func (l *Lexer) scanCloseTag() (*Token, error) {
	l.advance() // consume '/'
	nameStart := l.posCurrRune
	for isNameRune(l.r) {
		l.advance()
	}
	name := l.input[nameStart:l.posCurrRune]
	for l.r != EOF && l.r != '>' {
		l.advance()
	}
	if l.r == EOF {
		return nil, &ErrUnterminatedTag{Span: l.anchorSpan()}
	}
	l.advance() // consume '>'
	tok := l.token(CloseTag)
	tok.Name = name
	return tok, nil
}

// scanOpenTag consumes "<name ...>" or "<name .../>", collecting the
// attributes in source order.
func (l *Lexer) scanOpenTag() (*Token, error) {
	nameStart := l.posCurrRune
	for isNameRune(l.r) {
		l.advance()
	}
	name := l.input[nameStart:l.posCurrRune]

	var attrs []Attribute
	for {
		for isTagSpace(l.r) {
			l.advance()
		}
		switch {
		case l.r == EOF:
			return nil, &ErrUnterminatedTag{Span: l.anchorSpan()}
		case l.r == '>':
			l.advance()
			tok := l.token(OpenTag)
			tok.Name, tok.Attrs = name, attrs
			return tok, nil
		case l.r == '/':
			l.advance()
			if l.r == '>' {
				l.advance()
				tok := l.token(SelfClosingTag)
				tok.Name, tok.Attrs = name, attrs
				return tok, nil
			}
			// stray '/' inside a tag, ignore it
		default:
			attr, err := l.scanAttribute()
			if err != nil {
				return nil, err
			}
			if attr.Name != "" {
				attrs = append(attrs, attr)
			}
		}
	}
}

// scanAttribute consumes one attribute: a name, optionally followed by
// '=' and a quoted or unquoted value. The quote characters are not part
// of the value.
func (l *Lexer) scanAttribute() (Attribute, error) {
	nameStart := l.posCurrRune
	for l.r != EOF && l.r != '=' && l.r != '>' && l.r != '/' && !isTagSpace(l.r) {
		l.advance()
	}
	name := l.input[nameStart:l.posCurrRune]
	if l.r != '=' {
		// bare attribute, no value tokens
		return Attribute{Name: name}, nil
	}
	l.advance() // consume '='
	for isTagSpace(l.r) {
		l.advance()
	}

	if l.r == '\'' || l.r == '"' {
		quote := l.r
		valueSpan := Span{Start: l.posCurrRune, Line: l.line, Column: l.column}
		l.advance() // consume opening quote
		valueStart := l.posCurrRune
		for l.r != EOF && l.r != quote {
			l.advance()
		}
		if l.r == EOF {
			valueSpan.End = l.posCurrRune
			return Attribute{}, &ErrUnterminatedAttributeValue{Span: valueSpan, Name: name}
		}
		raw := l.input[valueStart:l.posCurrRune]
		l.advance() // consume closing quote
		return newAttribute(name, raw), nil
	}

	valueStart := l.posCurrRune
	for l.r != EOF && l.r != '>' && !isTagSpace(l.r) {
		l.advance()
	}
	return newAttribute(name, l.input[valueStart:l.posCurrRune]), nil
}
