// Package format renders user data safely inside Telegram markdown.
package format

import "regexp"

var mdV1Re = regexp.MustCompile("([_*`\\[])")

// EscapeV1 escapes the characters legacy Markdown treats as entity markers.
func EscapeV1(text string) string {
	return mdV1Re.ReplaceAllString(text, `\${1}`)
}
