package recommend

import "sort"

// Rank orders recommendations by priority (critical first), then by signal
// magnitude descending. The sort is stable, so recommendations that tie on
// both keys keep their rule insertion order and reports stay reproducible.
func Rank(recs []Recommendation) []Recommendation {
	sorted := make([]Recommendation, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].Signal > sorted[j].Signal
	})
	return sorted
}
