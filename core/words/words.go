// Package words provides word counting over book text.
//
// A word is a maximal run of letters, digits and underscores. A hyphen
// directly between two such runs joins them into a single word, so
// "self-development" counts once while "well - made" counts as two words
// plus nothing for the spaced hyphen.
package words

import (
	"unicode"
	"unicode/utf8"
)

// isWordRune reports whether r can appear inside a word.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Count returns the number of words in text.
// It is a pure function of its input.
func Count(text string) int {
	sc := NewScanner(text)
	n := 0
	for {
		if _, _, ok := sc.Next(); !ok {
			return n
		}
		n++
	}
}

// Scanner iterates the words of a text span, exposing the byte offsets of
// each word. The portion packer uses it to accumulate counts incrementally
// without re-counting from the start of the text.
type Scanner struct {
	text string
	pos  int
}

// NewScanner returns a Scanner over text starting at offset 0.
func NewScanner(text string) *Scanner {
	return &Scanner{text: text}
}

// NewScannerAt returns a Scanner over text starting at the given byte offset.
func NewScannerAt(text string, offset int) *Scanner {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	return &Scanner{text: text, pos: offset}
}

// Next advances to the next word and returns its byte span [start, end).
// ok is false once the text is exhausted.
func (s *Scanner) Next() (start, end int, ok bool) {
	n := len(s.text)

	// Skip to the start of the next word.
	for s.pos < n {
		r, size := utf8.DecodeRuneInString(s.text[s.pos:])
		if isWordRune(r) {
			break
		}
		s.pos += size
	}
	if s.pos >= n {
		return 0, 0, false
	}

	start = s.pos
	for s.pos < n {
		r, size := utf8.DecodeRuneInString(s.text[s.pos:])
		if isWordRune(r) {
			s.pos += size
			continue
		}
		if r == '-' {
			// An internal hyphen continues the word only when a word rune
			// follows immediately, with no intervening whitespace.
			next := s.pos + size
			if next < n {
				nr, _ := utf8.DecodeRuneInString(s.text[next:])
				if isWordRune(nr) {
					s.pos = next
					continue
				}
			}
		}
		break
	}
	return start, s.pos, true
}
