// Package wrap breaks caption text into lines bounded by a rune count.
package wrap

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrTooLong reports that no breaking strategy can satisfy the line budget.
var ErrTooLong = errors.New("text too long")

// Words wraps s greedily at whitespace boundaries. Words are never split;
// a word longer than maxLen ends up alone on an over-long line, which Fit
// treats as grounds for falling back to Chunks. Empty input yields no lines.
func Words(s string, maxLen int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	width := utf8.RuneCountInString(words[0])
	for _, word := range words[1:] {
		wordLen := utf8.RuneCountInString(word)
		if width+1+wordLen <= maxLen {
			current += " " + word
			width += 1 + wordLen
			continue
		}
		lines = append(lines, current)
		current = word
		width = wordLen
	}
	return append(lines, current)
}

// Chunks cuts s every maxLen runes regardless of word boundaries. Each chunk
// is right-trimmed, and chunks after the first drop leading spaces so a cut
// landing inside whitespace does not surface as a visible blank. Chunks that
// trim down to nothing are dropped. A string of exactly maxLen runes comes
// back as a single untouched chunk.
func Chunks(s string, maxLen int) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(runes); i += maxLen {
		end := i + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimRightFunc(string(runes[i:end]), unicode.IsSpace)
		if i > 0 {
			chunk = strings.TrimLeft(chunk, " ")
		}
		if chunk == "" {
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// Fit applies the breaking policy to explicit paragraph fragments: every
// fragment is wrapped independently and the results are concatenated in
// order. The word-preserving attempt is abandoned — and the hard break rerun
// on the original fragments, not on the wrapped output — when it produces
// too many lines or a line over maxLen (an unsplittable word). hardOnly
// skips the word-preserving attempt entirely. When even the hard break
// exceeds maxLines, Fit returns ErrTooLong.
func Fit(fragments []string, maxLen, maxLines int, hardOnly bool) ([]string, error) {
	if !hardOnly {
		if lines, ok := fitWords(fragments, maxLen); ok && len(lines) <= maxLines {
			return lines, nil
		}
	}

	var lines []string
	for _, frag := range fragments {
		lines = append(lines, Chunks(frag, maxLen)...)
	}
	if len(lines) > maxLines {
		return nil, ErrTooLong
	}
	return lines, nil
}

// fitWords word-wraps every fragment; ok is false when some line exceeds
// maxLen, i.e. a single word did not fit.
func fitWords(fragments []string, maxLen int) ([]string, bool) {
	var lines []string
	for _, frag := range fragments {
		for _, line := range Words(frag, maxLen) {
			if utf8.RuneCountInString(line) > maxLen {
				return nil, false
			}
			lines = append(lines, line)
		}
	}
	return lines, true
}
