package aggregate

import "math"

// Percentages formats a tally for display: each bucket becomes a whole
// percent of the total, rounded half-up. A zero total yields 0 for every
// bucket rather than dividing by zero, so an un-voted question renders as
// all-zero bars. Buckets round independently and are not forced to sum to
// 100.
func Percentages(t Tally) map[string]int {
	out := make(map[string]int, len(t.Counts))
	for answer, count := range t.Counts {
		if t.Total == 0 {
			out[answer] = 0
			continue
		}
		out[answer] = int(math.Floor(100*float64(count)/float64(t.Total) + 0.5))
	}
	return out
}
