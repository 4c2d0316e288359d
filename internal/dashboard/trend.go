package dashboard

import "math"

// Trend is the week-over-week movement of a daily series.
type Trend struct {
	Percent  float64
	Positive bool
}

// WeekOverWeek compares the recent half of a most-recent-first daily series
// against the remainder before it. The middle element of an odd-length
// series counts toward the older window. Fewer than eight points is treated
// as flat, and so is an older window that sums to zero.
func WeekOverWeek(counts []int) Trend {
	if len(counts) < 8 {
		return Trend{Percent: 0, Positive: true}
	}
	half := len(counts) / 2

	var recent, older int
	for _, v := range counts[:half] {
		recent += v
	}
	for _, v := range counts[half:] {
		older += v
	}

	if older == 0 {
		return Trend{Percent: 0, Positive: true}
	}

	delta := float64(recent - older)
	pct := math.Abs(delta) / float64(older) * 100
	return Trend{
		Percent:  math.Round(pct*10) / 10,
		Positive: recent >= older,
	}
}
