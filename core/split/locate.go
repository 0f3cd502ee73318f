package split

import (
	"unicode"
	"unicode/utf8"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
)

// Locate returns the byte offset of the first occurrence of phrase in text,
// matched case-insensitively. An empty phrase means "start from the
// beginning" and returns 0. A non-empty phrase that never occurs returns
// ErrPhraseNotFound (wrapped); the caller decides whether to retry or fall
// back, the locator itself does not guess.
func Locate(text, phrase string) (int, error) {
	if phrase == "" {
		return 0, nil
	}
	for i := range text {
		if hasPrefixFold(text[i:], phrase) {
			return i, nil
		}
	}
	return 0, kerrors.NewPhrase(phrase)
}

// hasPrefixFold reports whether s starts with prefix under Unicode case
// folding. Folding rune by rune keeps byte offsets valid for runes whose
// lowercase form has a different encoded length.
func hasPrefixFold(s, prefix string) bool {
	for _, pr := range prefix {
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 {
			return false
		}
		if r != pr && unicode.ToLower(r) != unicode.ToLower(pr) {
			return false
		}
		s = s[size:]
	}
	return true
}
