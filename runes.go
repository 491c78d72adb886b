// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

import (
	"unicode"
)

const (
	// CR and LF are control characters, respectively coded 0x0D (13 decimal) and 0x0A (10 decimal).
	// Line endings are left untouched; text payloads reproduce the source byte for byte.

	// CR is 0x0D or '\r'
	CR rune = rune(13)

	// LF is 0x0A or '\n'
	LF rune = rune(10)

	// EOF is a sentinel for end of input
	EOF rune = rune(-1)
)

// isNameStart reports whether ch may begin a tag or attribute name.
// Names are case-preserved; the lexer never folds them.
func isNameStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

// isNameRune reports whether ch may continue a tag or attribute name.
// The set is permissive enough for namespaced names ("svg:path") and
// data attributes ("data-replace").
func isNameRune(ch rune) bool {
	switch ch {
	case '-', '_', '.', ':':
		return true
	}
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// isTagSpace reports whether ch is whitespace inside a tag, where line
// breaks separate attributes just like spaces do.
func isTagSpace(ch rune) bool {
	return unicode.IsSpace(ch)
}

// isWhitespaceOnly reports whether s contains nothing but whitespace.
// The empty string is whitespace-only.
func isWhitespaceOnly(s string) bool {
	for _, ch := range s {
		if !unicode.IsSpace(ch) {
			return false
		}
	}
	return true
}
