// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package htmldom converts an HTML (or HTML-like XML) source string
// into an in-memory node tree that can be queried by tag name or
// attribute and serialized back to markup.
//
// The parser is a single-pass, stack-based scanner. It is deliberately
// permissive, targeting hand-authored markup: mismatched close tags,
// unclosed void elements, and stray '<' characters are recovered, not
// rejected. Only an unterminated tag or an unterminated quoted
// attribute value fails the parse.
//
//	root, err := htmldom.FromHTML(ctx, `<div><p>Text</p></div>`, htmldom.NewLoadSettings())
//	if err != nil { ... }
//	div := root.Children()[0].(*htmldom.Element)
//	name, _ := div.TagName() // "div"
//
// A parse call owns its inputs only for the duration of the call and
// returns an exclusively-owned tree, so distinct parses may run
// concurrently without synchronization.
package htmldom

import (
	"context"
)

// FromHTML loads a node tree from the markup source.
//
// The returned element is the synthetic root: it has no tag name, and
// its children are the top-level nodes found in the source. When the
// source contains no top-level constructs at all (it is empty, or
// whitespace-only under default settings), FromHTML returns (nil, nil).
//
// The error is non-nil only for structurally unrecoverable input: an
// unterminated tag (*ErrUnterminatedTag) or an unterminated quoted
// attribute value (*ErrUnterminatedAttributeValue). No partial tree is
// returned alongside an error.
func FromHTML(ctx context.Context, html string, settings LoadSettings) (*Element, error) {
	p := newParser(ctx, "", html, settings)
	if err := p.run(); err != nil {
		return nil, err
	}
	if len(p.root.children) == 0 {
		return nil, nil
	}
	return p.root, nil
}
