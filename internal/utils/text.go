package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanText strips NUL bytes and invalid UTF-8 from free text and trims it.
// Postgres text columns reject both.
func CleanText(input string) string {
	if strings.Contains(input, "\x00") || !utf8.ValidString(input) {
		input = strings.ToValidUTF8(input, "")
		input = strings.ReplaceAll(input, "\x00", "")
	}
	return strings.TrimSpace(input)
}

// CleanNote applies CleanText to an optional note. Blank notes become nil.
func CleanNote(input *string) *string {
	if input == nil {
		return nil
	}
	cleaned := CleanText(*input)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
