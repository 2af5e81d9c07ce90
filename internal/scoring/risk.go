package scoring

// Classify maps an overall score to a risk level via ordered-threshold
// lookup. Bounds are inclusive on the upper end: a score exactly at a
// boundary belongs to the lower-risk bucket. Pure function of its inputs.
func Classify(score float64, t RiskThresholds) RiskLevel {
	switch {
	case score <= t.Low:
		return RiskLow
	case score <= t.Medium:
		return RiskMedium
	case score <= t.High:
		return RiskHigh
	default:
		return RiskCritical
	}
}
