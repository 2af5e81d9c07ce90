// Package scoring combines normalized debt indicators into category scores,
// an overall weighted score, and a discrete risk level.
package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/blackwell-systems/debtscan/internal/metrics"
)

// Scores span [0,4]; higher is worse.
const MaxScore = 4.0

// NeutralScore is the category score assigned when no indicator data is
// available at all. Total absence of data is not evidence of low debt.
const NeutralScore = 2.0

// weightTolerance is the allowed floating error on the weight vector sum.
const weightTolerance = 1e-6

// ErrBadWeights and ErrBadThresholds are configuration errors. They fail a
// whole batch before any project scan starts.
var (
	ErrBadWeights    = errors.New("scoring: weight vector must be non-negative and sum to 1.0")
	ErrBadThresholds = errors.New("scoring: risk thresholds must be strictly increasing")
)

// RiskLevel is the discrete classification of an overall debt score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// RiskLevels lists all levels from best to worst.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}

// WeightVector assigns one non-negative weight per category. A valid vector
// sums to 1.0 within floating tolerance.
type WeightVector struct {
	CodeQuality    float64 `json:"code_quality"`
	Architecture   float64 `json:"architecture"`
	Infrastructure float64 `json:"infrastructure"`
	Operations     float64 `json:"operations"`
}

// Validate reports ErrBadWeights if any weight is negative or the sum is
// outside 1.0 ± 1e-6.
func (w WeightVector) Validate() error {
	if w.CodeQuality < 0 || w.Architecture < 0 || w.Infrastructure < 0 || w.Operations < 0 {
		return fmt.Errorf("%w: negative weight", ErrBadWeights)
	}
	sum := w.CodeQuality + w.Architecture + w.Infrastructure + w.Operations
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%w: sum is %v", ErrBadWeights, sum)
	}
	return nil
}

// For returns the weight for a category.
func (w WeightVector) For(c metrics.Category) float64 {
	switch c {
	case metrics.CategoryCodeQuality:
		return w.CodeQuality
	case metrics.CategoryArchitecture:
		return w.Architecture
	case metrics.CategoryInfrastructure:
		return w.Infrastructure
	case metrics.CategoryOperations:
		return w.Operations
	}
	return 0
}

// RiskThresholds are ordered upper bounds on the overall score, inclusive.
type RiskThresholds struct {
	Low      float64 `json:"low"`
	Medium   float64 `json:"medium"`
	High     float64 `json:"high"`
	Critical float64 `json:"critical"`
}

// Validate reports ErrBadThresholds unless low < medium < high < critical.
func (t RiskThresholds) Validate() error {
	if !(t.Low < t.Medium && t.Medium < t.High && t.High < t.Critical) {
		return fmt.Errorf("%w: got %v/%v/%v/%v", ErrBadThresholds, t.Low, t.Medium, t.High, t.Critical)
	}
	return nil
}

// DebtMetrics holds the computed scores for one project. OverallScore is the
// unrounded weighted sum, kept exact so ranking and trend math never tie on
// display rounding; serialization rounds to one decimal.
type DebtMetrics struct {
	CodeQualityScore    float64
	ArchitectureScore   float64
	InfrastructureScore float64
	OperationsScore     float64
	OverallScore        float64
	Raw                 *metrics.RawMetrics
}

// Score returns the category score for c.
func (m *DebtMetrics) Score(c metrics.Category) float64 {
	switch c {
	case metrics.CategoryCodeQuality:
		return m.CodeQualityScore
	case metrics.CategoryArchitecture:
		return m.ArchitectureScore
	case metrics.CategoryInfrastructure:
		return m.InfrastructureScore
	case metrics.CategoryOperations:
		return m.OperationsScore
	}
	return 0
}

// debtMetricsJSON is the wire shape for DebtMetrics.
type debtMetricsJSON struct {
	CodeQualityScore    float64             `json:"code_quality_score"`
	ArchitectureScore   float64             `json:"architecture_score"`
	InfrastructureScore float64             `json:"infrastructure_score"`
	OperationsScore     float64             `json:"operations_score"`
	OverallScore        float64             `json:"overall_score"`
	RawMetrics          *metrics.RawMetrics `json:"raw_metrics"`
}

// MarshalJSON emits scores rounded to one decimal for display.
func (m DebtMetrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(debtMetricsJSON{
		CodeQualityScore:    Round1(m.CodeQualityScore),
		ArchitectureScore:   Round1(m.ArchitectureScore),
		InfrastructureScore: Round1(m.InfrastructureScore),
		OperationsScore:     Round1(m.OperationsScore),
		OverallScore:        Round1(m.OverallScore),
		RawMetrics:          m.Raw,
	})
}

// UnmarshalJSON restores DebtMetrics from the wire shape.
func (m *DebtMetrics) UnmarshalJSON(data []byte) error {
	var w debtMetricsJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m.CodeQualityScore = w.CodeQualityScore
	m.ArchitectureScore = w.ArchitectureScore
	m.InfrastructureScore = w.InfrastructureScore
	m.OperationsScore = w.OperationsScore
	m.OverallScore = w.OverallScore
	m.Raw = w.RawMetrics
	return nil
}
