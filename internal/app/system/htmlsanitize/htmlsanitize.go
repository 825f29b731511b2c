// Package htmlsanitize cleans text that arrives from public forms and admin
// uploads before it is stored or placed into outgoing mail.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// StripTags removes all markup from s and trims surrounding space.
// Entities produced by the policy are unescaped again so stored text stays
// plain ("Tom & Jerry", not "Tom &amp; Jerry").
func StripTags(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Sanitize keeps safe user-generated HTML and drops everything else.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// PlainTextToHTML escapes s and turns line breaks into <br> so a message
// keeps its shape inside an HTML email.
func PlainTextToHTML(s string) template.HTML {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
}
