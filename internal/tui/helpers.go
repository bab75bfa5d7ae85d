package tui

import (
	"strings"
	"unicode/utf8"
)

// pageSize is the default number of items fetched per API call.
const pageSize = 50

// maxFieldLen is the maximum number of runes allowed in a form field.
const maxFieldLen = 256

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters; other
// keys (enter, esc, arrows) leave the text unchanged. Input is clamped to
// maxFieldLen runes.
func editRune(text, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxFieldLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// truncateToHeight limits output to maxLines newline-delimited lines.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// maskDots renders a password field as one dot per rune.
func maskDots(s string) string {
	return strings.Repeat("•", utf8.RuneCountInString(s))
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
