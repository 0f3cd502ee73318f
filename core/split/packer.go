package split

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/OlyoshaOlyosha/Speedread-Splitter/core/boundary"
	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/core/words"
)

// DefaultLookAheadFrac sizes the boundary search window as a fraction of
// the portion budget, in words. The same window is used looking back.
const DefaultLookAheadFrac = 0.2

// Packer partitions normalized text into portions. All inputs are explicit;
// packing is a pure function of them, so identical inputs always produce
// identical portion sequences.
type Packer struct {
	// Text is the normalized book text.
	Text string
	// Boundaries is the detected boundary sequence for Text, sorted by offset.
	Boundaries []boundary.Boundary
	// Start is the byte offset packing begins from, usually 0 or the
	// located start-phrase offset.
	Start int
	// WordsPerPortion is the per-portion word budget, >= 1.
	WordsPerPortion int
	// LookAheadFrac overrides DefaultLookAheadFrac when positive.
	LookAheadFrac float64
	// Progress, when set, is called after each portion is emitted. It is a
	// side-channel notification, not a concurrency primitive.
	Progress func(Portion)
}

// Pack runs the segmentation. The context is checked only between portions:
// cancellation means "do not start the next portion" and returns the
// portions produced so far along with the context error.
//
// A Start equal to len(Text) yields an empty portion sequence and no error.
func (p *Packer) Pack(ctx context.Context) (*Result, error) {
	if p.WordsPerPortion < 1 {
		return nil, kerrors.NewPlan("words_per_portion",
			fmt.Sprint(p.WordsPerPortion), "must be at least 1")
	}

	start := p.Start
	if start < 0 {
		start = 0
	}
	if start > len(p.Text) {
		start = len(p.Text)
	}

	frac := p.LookAheadFrac
	if frac <= 0 {
		frac = DefaultLookAheadFrac
	}
	window := int(math.Round(frac * float64(p.WordsPerPortion)))
	if window < 1 {
		window = 1
	}

	res := &Result{TotalWords: words.Count(p.Text[start:])}

	cursor := start
	index := 1
	for cursor < len(p.Text) {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		cut, forced := p.selectCut(cursor, window)
		portion := Portion{
			Index:       index,
			Text:        p.Text[cursor:cut],
			WordCount:   words.Count(p.Text[cursor:cut]),
			StartOffset: cursor,
			EndOffset:   cut,
			ForcedCut:   forced,
		}
		res.Portions = append(res.Portions, portion)
		if forced {
			res.ForcedCuts++
		}
		if p.Progress != nil {
			p.Progress(portion)
		}

		cursor = cut
		index++
	}
	return res, nil
}

// selectCut scans forward from cursor and picks the end offset of the next
// portion, applying the boundary tie-break policy. forced reports a
// mid-sentence cut.
func (p *Packer) selectCut(cursor, window int) (cut int, forced bool) {
	wpp := p.WordsPerPortion

	// One forward scan records the three offsets the policy needs: the
	// start of the earliest acceptable undersized cut, the end of the word
	// that reaches the budget, and the end of the look-ahead window.
	backStart := cursor
	budgetEnd := -1
	aheadEnd := -1
	lowMark := wpp - window
	if lowMark < 1 {
		lowMark = 1
	}

	sc := words.NewScannerAt(p.Text, cursor)
	count := 0
	for {
		ws, we, ok := sc.Next()
		if !ok {
			break
		}
		count++
		if count == lowMark {
			backStart = ws
		}
		if count == wpp {
			budgetEnd = we
		}
		if count == wpp+window {
			aheadEnd = we
			break
		}
	}

	// Fewer words than the budget: the remainder is the final portion.
	if budgetEnd < 0 {
		return len(p.Text), false
	}

	aheadLimit := aheadEnd
	if aheadLimit < 0 {
		aheadLimit = len(p.Text)
	}

	// a. Nearest paragraph break at/after the budget point, inside the window.
	if off, ok := p.firstInRange(budgetEnd, aheadLimit, boundary.ParagraphBreak); ok {
		return off, false
	}
	// The end of text is an implicit paragraph-grade boundary; when it falls
	// inside the window, absorbing the tail beats emitting a stub portion.
	if aheadLimit == len(p.Text) {
		return len(p.Text), false
	}
	// b. Nearest sentence break at/after the budget point, inside the window.
	if off, ok := p.firstInRange(budgetEnd, aheadLimit, boundary.SentenceBreak); ok {
		return off, false
	}
	// c. Latest boundary of either kind shortly before the budget point,
	// accepting an undersized portion.
	lo := backStart
	if lo <= cursor {
		lo = cursor + 1
	}
	if off, ok := p.lastInRange(lo, budgetEnd); ok {
		return off, false
	}
	// d. Forced mid-sentence cut exactly at the budget point.
	return budgetEnd, true
}

// firstInRange returns the smallest boundary offset in [lo, hi] of the given
// kind.
func (p *Packer) firstInRange(lo, hi int, kind boundary.Kind) (int, bool) {
	i := sort.Search(len(p.Boundaries), func(k int) bool {
		return p.Boundaries[k].Offset >= lo
	})
	for ; i < len(p.Boundaries); i++ {
		b := p.Boundaries[i]
		if b.Offset > hi {
			break
		}
		if b.Kind == kind {
			return b.Offset, true
		}
	}
	return 0, false
}

// lastInRange returns the largest boundary offset in [lo, hi) of any kind.
func (p *Packer) lastInRange(lo, hi int) (int, bool) {
	i := sort.Search(len(p.Boundaries), func(k int) bool {
		return p.Boundaries[k].Offset >= hi
	})
	if i == 0 {
		return 0, false
	}
	b := p.Boundaries[i-1]
	if b.Offset < lo {
		return 0, false
	}
	return b.Offset, true
}
