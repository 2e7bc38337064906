package chunk

import (
	"strings"
	"unicode/utf8"
)

// Split breaks text into lines of at most maxLen bytes.
//
// Words are packed greedily: each whitespace-delimited word is appended
// to the current line while it fits, and a new line starts at the word
// that would overflow. A single word longer than maxLen is hard-split
// at rune boundaries rather than dropped. Newlines in the input are
// hard break points, so lines the author separated are never merged.
// Empty or whitespace-only input yields no lines.
//
// Split is pure and deterministic. Joining the output with spaces
// reproduces the input's word sequence, with hard-split words appearing
// as consecutive fragments.
//
// The byte limit can be exceeded only when a single rune is wider than
// maxLen itself; the rune is then emitted whole so the split always
// terminates and never produces invalid UTF-8.
func Split(text string, maxLen int) []string {
	if maxLen < 1 {
		maxLen = 1
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, source := range strings.Split(text, "\n") {
		words := strings.Fields(source)
		if len(words) == 0 {
			continue
		}

		var current strings.Builder
		for _, word := range words {
			for len(word) > maxLen {
				if current.Len() > 0 {
					lines = append(lines, current.String())
					current.Reset()
				}
				head, tail := cutAt(word, maxLen)
				lines = append(lines, head)
				word = tail
			}
			if word == "" {
				continue
			}

			switch {
			case current.Len() == 0:
				current.WriteString(word)
			case current.Len()+1+len(word) <= maxLen:
				current.WriteByte(' ')
				current.WriteString(word)
			default:
				lines = append(lines, current.String())
				current.Reset()
				current.WriteString(word)
			}
		}

		if current.Len() > 0 {
			lines = append(lines, current.String())
		}
	}

	return lines
}

// cutAt splits word at the last rune boundary at or below max bytes.
// When the first rune alone is wider than max it is taken whole so the
// caller always makes progress.
func cutAt(word string, max int) (head, tail string) {
	cut := 0
	for i := range word {
		if i > max {
			break
		}
		cut = i
	}

	if cut == 0 {
		_, size := utf8.DecodeRuneInString(word)
		return word[:size], word[size:]
	}
	return word[:cut], word[cut:]
}
