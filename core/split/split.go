// Package split turns normalized book text into an ordered sequence of daily
// reading portions.
//
// The packer greedily accumulates words up to a per-portion budget derived
// from the reading plan, then cuts at the most natural boundary it can find
// inside a bounded search window: a paragraph break at or after the budget
// point, else a sentence break there, else a boundary shortly before the
// budget point, else a forced mid-sentence cut as a last resort.
package split

// Portion is one day's worth of reading: a contiguous span of the
// normalized text. Index is 1-based. Portions are contiguous and
// non-overlapping, covering [start offset, end of text) exactly.
type Portion struct {
	Index       int    `json:"index"`
	Text        string `json:"text"`
	WordCount   int    `json:"word_count"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	// ForcedCut marks the degraded case where no boundary fell inside the
	// search window and the portion was cut mid-sentence. This is a
	// warning, never a failure.
	ForcedCut bool `json:"forced_cut,omitempty"`
}

// Result is the output of a packing run.
type Result struct {
	Portions []Portion
	// TotalWords counts the words from the start offset to the end of text.
	TotalWords int
	// ForcedCuts counts portions that ended with a mid-sentence cut.
	ForcedCuts int
}

// EstimatePortions returns ceil(totalWords / wordsPerPortion).
func EstimatePortions(totalWords, wordsPerPortion int) int {
	if totalWords <= 0 || wordsPerPortion <= 0 {
		return 0
	}
	return (totalWords + wordsPerPortion - 1) / wordsPerPortion
}
