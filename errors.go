// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

import "fmt"

// Parsing is deliberately permissive: mismatched close tags, unclosed
// void elements, and stray '<' characters in text are recovered, never
// surfaced as errors. The two conditions below are the only
// structurally unrecoverable inputs, and both are fatal to the whole
// parse call; there is no partial tree returned alongside an error.

// ErrUnterminatedTag is returned when an opening "<..." construct
// reaches end of input before its closing '>'.
type ErrUnterminatedTag struct {
	Span Span
}

func (e *ErrUnterminatedTag) Error() string {
	return fmt.Sprintf("%d:%d: unterminated tag", e.Span.Line, e.Span.Column)
}

// ErrUnterminatedAttributeValue is returned when a quoted attribute
// value reaches end of input before its closing quote.
type ErrUnterminatedAttributeValue struct {
	Span Span
	Name string // attribute name, when known
}

func (e *ErrUnterminatedAttributeValue) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%d:%d: unterminated value for attribute %q", e.Span.Line, e.Span.Column, e.Name)
	}
	return fmt.Sprintf("%d:%d: unterminated attribute value", e.Span.Line, e.Span.Column)
}

// Error code constants for database storage.
const (
	ErrCodeUnterminatedTag       = "UNTERMINATED_TAG"
	ErrCodeUnterminatedAttrValue = "UNTERMINATED_ATTR_VALUE"
	ErrCodeUnknown               = "UNKNOWN"
)

// ErrorCode returns the error code string for a given error.
func ErrorCode(err error) string {
	switch err.(type) {
	case *ErrUnterminatedTag:
		return ErrCodeUnterminatedTag
	case *ErrUnterminatedAttributeValue:
		return ErrCodeUnterminatedAttrValue
	default:
		return ErrCodeUnknown
	}
}
