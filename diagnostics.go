// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Diagnostic represents a parse failure with a span in the original
// source, suitable for caret-style reporting.
type Diagnostic struct {
	Severity slog.Level // Error, Warning, Info
	Message  string     // "unterminated tag"
	Span     Span       // where in the source it occurred
	Notes    []string   // optional additional help messages
}

// DiagnoseError converts a parse error into a Diagnostic. It returns
// false for errors that carry no span.
func DiagnoseError(err error) (Diagnostic, bool) {
	var unterminatedTag *ErrUnterminatedTag
	if errors.As(err, &unterminatedTag) {
		return Diagnostic{
			Severity: slog.LevelError,
			Message:  "unterminated tag",
			Span:     unterminatedTag.Span,
			Notes:    []string{"the construct reaches end of input before its closing '>'"},
		}, true
	}
	var unterminatedValue *ErrUnterminatedAttributeValue
	if errors.As(err, &unterminatedValue) {
		message := "unterminated attribute value"
		if unterminatedValue.Name != "" {
			message = fmt.Sprintf("unterminated value for attribute %q", unterminatedValue.Name)
		}
		return Diagnostic{
			Severity: slog.LevelError,
			Message:  message,
			Span:     unterminatedValue.Span,
			Notes:    []string{"the opening quote has no matching closing quote before end of input"},
		}, true
	}
	return Diagnostic{}, false
}

// PrintDiagnostic writes a compiler-style report: a header line, the
// offending source line, and a caret under the start of the span.
func PrintDiagnostic(w io.Writer, diag Diagnostic, filename string, src string) {
	// Header: file:line:column: severity: message
	span := diag.Span
	_, _ = fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
		filename, span.Line, span.Column,
		strings.ToLower(diag.Severity.String()), diag.Message)

	line := findLine(src, span.Start)
	_, _ = fmt.Fprintf(w, "    %s\n", line)

	// caret underline
	_, _ = fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", runeColumnOffset(span.Column, line)))

	for _, note := range diag.Notes {
		_, _ = fmt.Fprintf(w, "    note: %s\n", note)
	}
}

// findLine returns the line containing the start byte, without its
// line break. It searches backwards from start for the beginning of
// the line, then forward for the next new-line.
func findLine(src string, start int) string {
	if start > len(src) {
		start = len(src)
	}
	lineStart := strings.LastIndexByte(src[:start], '\n') + 1
	lineEnd := strings.IndexByte(src[lineStart:], '\n')
	if lineEnd < 0 {
		return strings.TrimSuffix(src[lineStart:], "\r")
	}
	return strings.TrimSuffix(src[lineStart:lineStart+lineEnd], "\r")
}

// runeColumnOffset converts a 1-based character column into the number
// of characters to skip in line, clamped to the line's length.
func runeColumnOffset(column int, line string) int {
	offset := column - 1
	if offset < 0 {
		offset = 0
	}
	if n := utf8.RuneCountInString(line); offset > n {
		offset = n
	}
	return offset
}
