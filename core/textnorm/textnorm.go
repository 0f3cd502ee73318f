// Package textnorm normalizes decoded book text before segmentation.
//
// Normalization collapses whitespace runs to single spaces, canonicalizes
// paragraph separation to a single "\n\n" marker, and optionally strips
// footnote and caption noise. The output is the only text representation
// the rest of the pipeline sees.
package textnorm

import (
	"regexp"
	"strings"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/core/words"
)

// ParagraphSep is the canonical paragraph separator in normalized text.
const ParagraphSep = "\n\n"

// DefaultCaptionPrefixes lists caption markers stripped by default when
// cleanup is requested. Localized prefixes are injected via Options rather
// than hard-coded so the normalizer stays language-agnostic.
var DefaultCaptionPrefixes = []string{"Figure", "Table", "Fig.", "Рис.", "Таблица"}

var (
	footnoteMarkerRe = regexp.MustCompile(`\[\d+\]`)
	superscriptRe    = regexp.MustCompile(`[⁰¹²³⁴⁵⁶⁷⁸⁹]+`)
	paragraphGapRe   = regexp.MustCompile(`\n[ \t\r]*\n\s*`)
)

// Options controls normalization behavior.
type Options struct {
	// StripNoise removes bracketed footnote markers, superscript footnote
	// references and caption lines.
	StripNoise bool
	// CaptionPrefixes overrides DefaultCaptionPrefixes when non-nil.
	CaptionPrefixes []string
	// Source names where the text came from, for error context only.
	Source string
}

// Text is normalized book text plus its total word count.
type Text struct {
	Body      string
	WordCount int
}

// Normalize cleans raw decoded text into the canonical form consumed by the
// boundary detector and portion packer. It returns ErrEmptyInput (wrapped)
// when nothing splittable remains.
func Normalize(raw string, opts Options) (Text, error) {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	if opts.StripNoise {
		s = stripNoise(s, opts.captionPrefixes())
	}

	var paragraphs []string
	for _, para := range paragraphGapRe.Split(s, -1) {
		fields := strings.Fields(para)
		if len(fields) == 0 {
			continue
		}
		paragraphs = append(paragraphs, strings.Join(fields, " "))
	}
	body := strings.Join(paragraphs, ParagraphSep)

	count := words.Count(body)
	if body == "" || count == 0 {
		reason := "no words after normalization"
		if opts.StripNoise {
			reason = "no words after cleanup"
		}
		return Text{}, kerrors.NewEmptyInput(opts.Source, reason)
	}
	return Text{Body: body, WordCount: count}, nil
}

func (o Options) captionPrefixes() []string {
	if o.CaptionPrefixes != nil {
		return o.CaptionPrefixes
	}
	return DefaultCaptionPrefixes
}

// stripNoise removes footnote markers, superscript references, and caption
// content for the given prefixes. Caption lines ("Figure 3: ..." on a line of
// its own) are dropped whole; inline caption markers ("Рис. 2. ") are removed
// in place, matching how scanned books embed them mid-paragraph.
func stripNoise(s string, captionPrefixes []string) string {
	s = footnoteMarkerRe.ReplaceAllString(s, "")
	s = superscriptRe.ReplaceAllString(s, "")
	for _, prefix := range captionPrefixes {
		q := regexp.QuoteMeta(prefix)
		lineRe := regexp.MustCompile(`(?m)^[ \t]*` + q + `\s+\d+[.:]?.*$`)
		s = lineRe.ReplaceAllString(s, "")
		inlineRe := regexp.MustCompile(q + `\s+\d+\.\s`)
		s = inlineRe.ReplaceAllString(s, "")
	}
	return s
}
