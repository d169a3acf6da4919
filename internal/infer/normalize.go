package infer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Punctuation that counts as an already-terminated prompt.
const terminalPunct = ".!?:"

// NormalizePrompt appends a period unless the prompt already ends in
// terminal punctuation, ignoring trailing whitespace. Applied exactly
// once before backend dispatch, and idempotent: normalizing twice
// yields the same string as normalizing once.
func NormalizePrompt(prompt string) string {
	trimmed := strings.TrimRightFunc(prompt, unicode.IsSpace)
	r, _ := utf8.DecodeLastRuneInString(trimmed)
	if r == utf8.RuneError || !strings.ContainsRune(terminalPunct, r) {
		return prompt + "."
	}
	return prompt
}
