package metrics

import "time"

// Year-over-year comparisons look back exactly 52 weeks. Reporting cadence is
// weekly but not perfectly periodic (holidays shift week-ending dates), so a
// small window around the lookback target is tolerated.
const (
	yoyLookbackDays = 364
	alignWindowDays = 7
)

// AlignYearPrior finds, among candidates, the date closest to 364 days before
// date, within ±7 days of that target. ok is false when no candidate falls in
// the window, which is the expected case for datasets with under a year of
// history. Ties on distance go to the earliest candidate.
func AlignYearPrior(date time.Time, candidates []time.Time) (time.Time, bool) {
	target := date.AddDate(0, 0, -yoyLookbackDays)
	return closestWithin(target, candidates, alignWindowDays)
}

func closestWithin(target time.Time, candidates []time.Time, windowDays int) (time.Time, bool) {
	var best time.Time
	bestDist := windowDays + 1
	found := false
	for _, c := range candidates {
		dist := absDays(c, target)
		if dist > windowDays {
			continue
		}
		if !found || dist < bestDist || (dist == bestDist && c.Before(best)) {
			best = c
			bestDist = dist
			found = true
		}
	}
	return best, found
}

func absDays(a, b time.Time) int {
	d := int(a.Sub(b) / (24 * time.Hour))
	if d < 0 {
		return -d
	}
	return d
}
