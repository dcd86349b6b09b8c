package blog

import (
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const excerptLength = 200

var (
	policyOnce sync.Once
	ugc        *bluemonday.Policy
	strict     *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		ugc = bluemonday.UGCPolicy()
		strict = bluemonday.StrictPolicy()
	})
	return ugc, strict
}

// SanitizeContent keeps the formatting a rich-text editor produces and drops
// scripts, handlers and other active content.
func SanitizeContent(raw string) string {
	p, _ := policies()
	return p.Sanitize(raw)
}

// PlainText strips every tag and collapses whitespace.
func PlainText(content string) string {
	_, p := policies()
	text := html.UnescapeString(p.Sanitize(content))
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt is the first 200 characters of the plain text, with "..." when cut.
func Excerpt(content string) string {
	text := PlainText(content)
	if utf8.RuneCountInString(text) <= excerptLength {
		return text
	}
	return string([]rune(text)[:excerptLength]) + "..."
}
