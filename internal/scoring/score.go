package scoring

import (
	"math"

	"github.com/blackwell-systems/debtscan/internal/metrics"
)

// CategoryScore combines one category's normalized indicators into a single
// score in [0,MaxScore]: the sub-weighted mean of the [0,1] indicators scaled
// by 4. When every indicator was defaulted (the analyzers produced nothing
// usable for this category) the score is NeutralScore, not 0 -- total absence
// of data must not look like the absence of debt.
func CategoryScore(values []metrics.IndicatorValue) float64 {
	anyReal := false
	sum, weight := 0.0, 0.0
	for _, v := range values {
		if !v.Defaulted {
			anyReal = true
		}
		sum += v.Value * v.Weight
		weight += v.Weight
	}
	if !anyReal || weight == 0 {
		return NeutralScore
	}
	return clampScore(sum / weight * MaxScore)
}

// Compute scores all four categories of raw and aggregates the overall
// weighted score. The weight vector must already be validated.
func Compute(raw *metrics.RawMetrics, w WeightVector) *DebtMetrics {
	m := &DebtMetrics{Raw: raw}
	for _, c := range metrics.Categories {
		score := CategoryScore(metrics.Normalize(c, raw.ForCategory(c)))
		switch c {
		case metrics.CategoryCodeQuality:
			m.CodeQualityScore = score
		case metrics.CategoryArchitecture:
			m.ArchitectureScore = score
		case metrics.CategoryInfrastructure:
			m.InfrastructureScore = score
		case metrics.CategoryOperations:
			m.OperationsScore = score
		}
	}
	m.OverallScore = Overall(m, w)
	return m
}

// Overall is the weighted sum of the four category scores, clamped to
// [0,MaxScore]. The result is unrounded; use Round1 for display.
func Overall(m *DebtMetrics, w WeightVector) float64 {
	sum := 0.0
	for _, c := range metrics.Categories {
		sum += m.Score(c) * w.For(c)
	}
	return clampScore(sum)
}

// Round1 rounds to one decimal, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
