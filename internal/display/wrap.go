package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultWidth = 80

// WrapWidth word-wraps every line of text to width, preserving ANSI escape
// sequences. A width below one disables wrapping.
func WrapWidth(text string, width int) string {
	if width < 1 {
		return text
	}
	return wordwrap.String(text, width)
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Title title-cases every word of s.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}
