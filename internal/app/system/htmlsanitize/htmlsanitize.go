// Package htmlsanitize cleans user-authored rich text before storage.
// Note bodies and knowledge articles accept a limited HTML subset; anything
// scriptable is stripped here, once, on the write path.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize returns the input with unsafe HTML removed. Safe formatting
// (paragraphs, emphasis, links with http/https hrefs) passes through.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// StripTags removes all HTML, leaving plain text. Used for titles and other
// fields that must never carry markup.
func StripTags(s string) string {
	return strict.Sanitize(s)
}
