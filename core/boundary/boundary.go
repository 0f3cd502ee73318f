// Package boundary detects candidate split points in normalized book text.
//
// Two kinds of boundaries are produced: paragraph breaks (at the canonical
// "\n\n" marker) and sentence breaks (after terminal punctuation). Sentence
// detection is a punctuation heuristic, not a grammar: a terminator must be
// followed by whitespace and a non-lowercase token start, and an allow-list
// of abbreviations suppresses the common false positives.
package boundary

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/OlyoshaOlyosha/Speedread-Splitter/core/textnorm"
)

// Kind classifies a boundary by strength.
type Kind int

const (
	// SentenceBreak is a split point after sentence-terminal punctuation.
	SentenceBreak Kind = iota
	// ParagraphBreak is a split point after the paragraph separator.
	// It is the stronger of the two kinds.
	ParagraphBreak
)

// String returns the boundary kind name.
func (k Kind) String() string {
	if k == ParagraphBreak {
		return "paragraph"
	}
	return "sentence"
}

// Boundary is a candidate split point. Offset is the byte index of the first
// character after the break, so cutting at Offset leaves the separator with
// the preceding span. Offsets 0 and len(text) are implicit and never emitted.
type Boundary struct {
	Offset int
	Kind   Kind
}

// Rules is the configuration data driving sentence detection. Representing
// the punctuation set and abbreviation exceptions as data keeps the
// algorithm identical across languages.
type Rules struct {
	// Terminators are sentence-ending punctuation marks.
	Terminators []rune
	// Abbreviations suppress sentence breaks after their trailing period.
	// Matching is case-insensitive and includes the final dot ("e.g.").
	Abbreviations []string
}

// RulesFor returns the detection rules for a language code.
// Unknown languages fall back to the English rules.
func RulesFor(lang string) Rules {
	switch strings.ToLower(lang) {
	case "ru":
		return Rules{
			Terminators: []rune{'.', '!', '?', '…'},
			Abbreviations: []string{
				"г.", "гг.", "в.", "вв.", "т.", "т.д.", "т.п.", "т.е.",
				"др.", "пр.", "см.", "стр.", "рис.", "табл.", "гл.",
				"им.", "ул.", "обл.", "кн.",
			},
		}
	default:
		return Rules{
			Terminators: []rune{'.', '!', '?', '…'},
			Abbreviations: []string{
				"mr.", "mrs.", "ms.", "dr.", "prof.", "st.", "jr.", "sr.",
				"vs.", "etc.", "e.g.", "i.e.", "cf.", "no.", "vol.",
				"ch.", "fig.", "approx.",
			},
		}
	}
}

// Detect scans normalized text and returns its boundaries in strictly
// increasing offset order. When a paragraph and a sentence break coincide at
// the same offset only the paragraph boundary is kept.
func Detect(text string, rules Rules) []Boundary {
	found := make(map[int]Kind)

	for _, off := range paragraphOffsets(text) {
		found[off] = ParagraphBreak
	}

	terms := make(map[rune]bool, len(rules.Terminators))
	for _, r := range rules.Terminators {
		terms[r] = true
	}
	abbrevs := make(map[string]bool, len(rules.Abbreviations))
	for _, a := range rules.Abbreviations {
		abbrevs[strings.ToLower(a)] = true
	}

	for i, r := range text {
		if !terms[r] {
			continue
		}
		off, ok := sentenceOffset(text, i, r, abbrevs)
		if !ok {
			continue
		}
		if _, exists := found[off]; !exists {
			found[off] = SentenceBreak
		}
	}

	boundaries := make([]Boundary, 0, len(found))
	for off, kind := range found {
		if off <= 0 || off >= len(text) {
			continue
		}
		boundaries = append(boundaries, Boundary{Offset: off, Kind: kind})
	}
	sort.Slice(boundaries, func(a, b int) bool {
		return boundaries[a].Offset < boundaries[b].Offset
	})
	return boundaries
}

// paragraphOffsets returns the offset just past each paragraph separator.
func paragraphOffsets(text string) []int {
	var offs []int
	for i := 0; ; {
		j := strings.Index(text[i:], textnorm.ParagraphSep)
		if j < 0 {
			return offs
		}
		i += j + len(textnorm.ParagraphSep)
		offs = append(offs, i)
	}
}

// sentenceOffset validates the terminator at byte index i and returns the
// boundary offset (the start of the next token). ok is false when the
// heuristic rejects the position.
func sentenceOffset(text string, i int, term rune, abbrevs map[string]bool) (int, bool) {
	j := i + utf8.RuneLen(term)

	// Closing quotes and brackets stay with the sentence they end.
	for j < len(text) {
		r, size := utf8.DecodeRuneInString(text[j:])
		if !isCloser(r) {
			break
		}
		j += size
	}

	// Whitespace must follow; this alone rejects decimals like "3.14".
	wsStart := j
	for j < len(text) {
		r, size := utf8.DecodeRuneInString(text[j:])
		if !unicode.IsSpace(r) {
			break
		}
		j += size
	}
	if j == wsStart || j >= len(text) {
		return 0, false
	}

	// The next token must not start lowercase (abbreviation/mid-sentence guard).
	next, _ := utf8.DecodeRuneInString(text[j:])
	if unicode.IsLower(next) {
		return 0, false
	}

	if term == '.' && isAbbreviation(text, i, abbrevs) {
		return 0, false
	}
	return j, true
}

// isAbbreviation checks the token ending at the period at byte index i
// against the allow-list. Single-letter tokens ("A.") are treated as
// initials and always suppressed.
func isAbbreviation(text string, i int, abbrevs map[string]bool) bool {
	start := i
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsSpace(r) {
			break
		}
		start -= size
	}
	tok := text[start : i+1]

	// Trim leading punctuation such as an opening parenthesis or quote.
	for len(tok) > 0 {
		r, size := utf8.DecodeRuneInString(tok)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		tok = tok[size:]
	}
	if tok == "" {
		return false
	}
	if abbrevs[strings.ToLower(tok)] {
		return true
	}

	// "A." style initials.
	body := tok[:len(tok)-1]
	if r, size := utf8.DecodeRuneInString(body); size == len(body) && unicode.IsLetter(r) {
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '»', '”', '’':
		return true
	}
	return false
}
