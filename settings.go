// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

import (
	"log/slog"
)

// LoadSettings configures a single parse call. The zero value carries
// the documented defaults, and the builder methods return updated
// copies, so a settings value is immutable once handed to FromHTML.
//
//	settings := htmldom.NewLoadSettings().AllTextSeparately(false)
type LoadSettings struct {
	// dropWhitespaceText is the negation of AllTextSeparately so that
	// the zero value means "materialize whitespace-only runs", which is
	// the default.
	dropWhitespaceText bool
	decodeEntities     bool
	logger             *slog.Logger
}

// NewLoadSettings returns the default settings: whitespace-only text
// runs between sibling elements are materialized as Text nodes, and
// entity references are passed through literally.
func NewLoadSettings() LoadSettings {
	return LoadSettings{}
}

// AllTextSeparately controls text-node materialization. Every run of
// text is always its own Text node; a tag, whether it opens a child or
// closes the current element, terminates the run. The flag governs the
// whitespace-only runs between sibling elements:
//
//   - true (the default): whitespace-only runs inside an element are
//     materialized as Text nodes, and runs separated only by comments
//     or doctype declarations stay separate nodes.
//   - false: whitespace-only runs are silently dropped, and adjacent
//     runs with no intervening tag (possible only across skipped
//     comment/doctype spans) are coalesced into one Text node.
//
// Whitespace-only runs at the top level, outside any element, are
// never materialized; an empty or whitespace-only source produces no
// tree at all.
func (s LoadSettings) AllTextSeparately(b bool) LoadSettings {
	s.dropWhitespaceText = !b
	return s
}

// DecodeEntities enables decoding of the fixed minimal entity set
// {&amp; &lt; &gt; &quot; &#39;} in text runs and attribute values.
// This is an extension; by default entity references are passed
// through literally. Decoding is not reversed by serialization, so
// exact round trips are only guaranteed with decoding off.
func (s LoadSettings) DecodeEntities(b bool) LoadSettings {
	s.decodeEntities = b
	return s
}

// WithLogger attaches a logger for scan/parse debug output. When nil,
// logging is discarded.
func (s LoadSettings) WithLogger(logger *slog.Logger) LoadSettings {
	s.logger = logger
	return s
}
