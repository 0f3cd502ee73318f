package split

import (
	"fmt"
	"math"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
)

// Plan is the reader's explicit reading plan. It is always passed in as a
// parameter; the packer never reads saved settings implicitly.
type Plan struct {
	// SpeedWPM is the target reading speed in words per minute.
	SpeedWPM float64
	// MinutesPerDay is the daily time budget in minutes.
	MinutesPerDay float64
}

// WordsPerPortion derives the per-portion word budget,
// round(SpeedWPM * MinutesPerDay). It returns ErrInvalidPlan (wrapped) when
// either input is non-positive or the budget rounds to zero.
func (p Plan) WordsPerPortion() (int, error) {
	if p.SpeedWPM <= 0 {
		return 0, kerrors.NewPlan("speed_wpm", fmt.Sprint(p.SpeedWPM), "must be positive")
	}
	if p.MinutesPerDay <= 0 {
		return 0, kerrors.NewPlan("minutes_per_day", fmt.Sprint(p.MinutesPerDay), "must be positive")
	}
	wpp := int(math.Round(p.SpeedWPM * p.MinutesPerDay))
	if wpp < 1 {
		return 0, kerrors.NewPlan("words_per_portion",
			fmt.Sprintf("%g*%g", p.SpeedWPM, p.MinutesPerDay), "rounds to zero")
	}
	return wpp, nil
}

// TotalHours estimates the total reading time for a word count at this
// plan's speed.
func (p Plan) TotalHours(totalWords int) float64 {
	if p.SpeedWPM <= 0 {
		return 0
	}
	return float64(totalWords) / p.SpeedWPM / 60
}
