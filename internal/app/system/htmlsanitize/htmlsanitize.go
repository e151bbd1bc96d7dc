// internal/app/system/htmlsanitize/htmlsanitize.go
//
// Package htmlsanitize strips dangerous markup from user-supplied text
// before it is stored. Comment bodies and descriptions keep basic
// formatting; titles and names are reduced to plain text.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps user-generated-content formatting (links, emphasis,
// lists) and removes everything executable.
func Sanitize(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}

// PlainText strips all markup, leaving text only.
func PlainText(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
