// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package htmldom

import "strings"

// entityReplacer decodes the fixed minimal entity set. The single-pass
// replacement never rescans produced text, so "&amp;lt;" decodes to
// the literal "&lt;".
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// decodeEntities decodes the fixed set {&amp; &lt; &gt; &quot; &#39;}.
// Unknown entities are passed through literally.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityReplacer.Replace(s)
}
