// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

import (
	"context"
	"log/slog"
)

/*
Invariants:
 * The open-element stack
   * open[0] is always the synthetic root; it is never popped.
   * open[len(open)-1] is the element that receives the next child.
   * The stack is an explicit slice of owned elements, so nesting depth
     is bounded by the heap, not the call stack, and children are owned
     by their parent with no back-pointers. Cycles are impossible by
     construction.

 * Child attachment
   * A new element is appended to the current top's children as soon as
     its open tag is consumed, then pushed (unless self-closing, which
     is appended but never pushed).
   * Because attachment happens at open time, implicitly closing the
     elements still open at end of input needs no fixup pass.

 * Recovery rules (never errors)
   * A close tag that matches an element on the stack pops everything
     above it, auto-closing the intervening unclosed descendants. Only
     the matched element is marked as explicitly closed.
   * A close tag whose name matches nothing on the stack is ignored.
   * Comments and doctype declarations are skipped as opaque,
     non-tree-producing spans.
   * Elements still open at end of input are implicitly closed.
   * Close-tag matching is case-sensitive; names are never folded.
*/

type parser struct {
	ctx      context.Context
	logger   *slog.Logger
	lexer    *Lexer
	settings LoadSettings
	root     *Element
	open     []*Element // open-element stack, open[0] is the root
}

func newParser(ctx context.Context, name, input string, settings LoadSettings) *parser {
	logger := settings.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	root := newRootElement()
	return &parser{
		ctx:      ctx,
		logger:   logger,
		lexer:    NewLexer(ctx, name, input, logger),
		settings: settings,
		root:     root,
		open:     []*Element{root},
	}
}

func (p *parser) run() error {
	for {
		tok, err := p.lexer.Scan()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case EndOfInput:
			// elements still open are implicitly closed
			return nil
		case TextRun:
			p.text(tok)
		case OpenTag:
			p.openTag(tok, false)
		case SelfClosingTag:
			p.openTag(tok, true)
		case CloseTag:
			p.closeTag(tok)
		case Comment, Doctype:
			// opaque, non-tree-producing spans
		}
	}
}

func (p *parser) top() *Element {
	return p.open[len(p.open)-1]
}

func (p *parser) text(tok *Token) {
	s := tok.Text
	if p.settings.decodeEntities {
		s = decodeEntities(s)
	}

	parent := p.top()
	if isWhitespaceOnly(s) {
		if parent == p.root {
			// top-level whitespace never materializes; an empty or
			// whitespace-only source produces no tree at all
			return
		}
		if p.settings.dropWhitespaceText {
			return
		}
	}

	if p.settings.dropWhitespaceText {
		// two text runs can only become adjacent across a skipped
		// comment or doctype span; coalesce them
		if n := len(parent.children); n > 0 {
			if prev, ok := parent.children[n-1].(*Text); ok {
				prev.value += s
				prev.span.End = tok.End
				return
			}
		}
	}

	parent.AppendChild(&Text{value: s, span: spanFromToken(tok)})
}

func (p *parser) openTag(tok *Token, selfClosing bool) {
	el := &Element{
		name:        tok.Name,
		selfClosing: selfClosing,
		closed:      selfClosing,
		span:        spanFromToken(tok),
	}
	for _, attr := range tok.Attrs {
		if p.settings.decodeEntities {
			for i, v := range attr.Values {
				attr.Values[i] = decodeEntities(v)
			}
		}
		// last occurrence of a repeated name wins
		el.attrs.Set(attr)
	}
	p.top().AppendChild(el)
	if !selfClosing {
		p.open = append(p.open, el)
	}
}

func (p *parser) closeTag(tok *Token) {
	for i := len(p.open) - 1; i >= 1; i-- {
		if p.open[i].name == tok.Name {
			p.open[i].closed = true
			p.open = p.open[:i]
			return
		}
	}
	p.logger.LogAttrs(p.ctx, slog.LevelDebug, "parser: ignoring unmatched close tag",
		slog.String("name", tok.Name),
		slog.Int("line", tok.Line),
		slog.Int("column", tok.Column))
}
