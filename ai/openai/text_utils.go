package openai

import (
	"strings"
	"unicode/utf8"
)

// maxContentRunes bounds how much of a single message is sent to the model.
const maxContentRunes = 1500

// compactText collapses runs of whitespace and trims the result.
func compactText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// clipText compacts s and cuts it to at most max runes, marking the cut.
func clipText(s string, max int) string {
	s = compactText(s)
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
