package report

import (
	"time"

	"github.com/blackwell-systems/debtscan/internal/metrics"
	"github.com/blackwell-systems/debtscan/internal/scan"
)

// TrendPoint is one dated fleet-wide score snapshot. Points are derived
// purely from their own batch's successful results and appended to the
// series; past points are never recomputed.
type TrendPoint struct {
	Date           time.Time `json:"date"`
	OverallScore   float64   `json:"overall_score"`
	CodeQuality    float64   `json:"code_quality"`
	Architecture   float64   `json:"architecture"`
	Infrastructure float64   `json:"infrastructure"`
	Operations     float64   `json:"operations"`
}

// BuildTrendPoint derives a trend point from the batch's successful
// results: the fleet mean overall score and per-category means, unrounded.
// ok is false when the batch had no successful scans; nothing should be
// appended to the series in that case.
func BuildTrendPoint(results []scan.ScanResult, date time.Time) (tp TrendPoint, ok bool) {
	tp.Date = date
	n := 0
	for _, r := range results {
		if r.Failed() {
			continue
		}
		n++
		tp.OverallScore += r.Metrics.OverallScore
		tp.CodeQuality += r.Metrics.CodeQualityScore
		tp.Architecture += r.Metrics.ArchitectureScore
		tp.Infrastructure += r.Metrics.InfrastructureScore
		tp.Operations += r.Metrics.OperationsScore
	}
	if n == 0 {
		return TrendPoint{Date: date}, false
	}
	f := float64(n)
	tp.OverallScore /= f
	tp.CodeQuality /= f
	tp.Architecture /= f
	tp.Infrastructure /= f
	tp.Operations /= f
	return tp, true
}

// Score returns the trend point's mean for a category.
func (tp TrendPoint) Score(c metrics.Category) float64 {
	switch c {
	case metrics.CategoryCodeQuality:
		return tp.CodeQuality
	case metrics.CategoryArchitecture:
		return tp.Architecture
	case metrics.CategoryInfrastructure:
		return tp.Infrastructure
	case metrics.CategoryOperations:
		return tp.Operations
	}
	return 0
}
