package helpers

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// StrictHTMLPolicy returns a singleton bluemonday policy that strips every
// HTML element and attribute, including the contents of script and style
// blocks. The output is safe to treat as plain text.
func StrictHTMLPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// StripMarkup reduces raw markup to plain text: script/style contents and all
// tags are removed, runs of whitespace collapse to a single space, and the
// ends are trimmed. Empty input yields an empty string.
func StripMarkup(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = StrictHTMLPolicy().Sanitize(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CollapseWhitespace normalises whitespace in already-plain text without
// touching markup.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
