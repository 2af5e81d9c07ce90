// Package recommend derives prioritized, human-readable action items from a
// project's category scores and raw metric signals, and aggregates them
// fleet-wide for the scan summary.
package recommend

import (
	"github.com/blackwell-systems/debtscan/internal/metrics"
	"github.com/blackwell-systems/debtscan/internal/scoring"
)

// Priority levels for recommendations. Lower ordinal sorts first.
type Priority int

const (
	PriorityCritical Priority = 1
	PriorityHigh     Priority = 2
	PriorityMedium   Priority = 3
	PriorityLow      Priority = 4
)

// String returns the lowercase tag used in recommendation text.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return "unknown"
}

// Recommendation is one actionable finding for a project. Signal is the
// magnitude of the underlying raw metric past its cutoff; it breaks ties
// between recommendations of equal priority. RuleID identifies the rule
// that fired, used for fleet-wide aggregation.
type Recommendation struct {
	RuleID   string
	Category metrics.Category
	Priority Priority
	Message  string
	Signal   float64
}

// ProjectContext is the per-project input to the rule engine: the computed
// debt metrics plus the project name for message formatting. Rules read the
// raw metric maps through it; they never mutate anything.
type ProjectContext struct {
	Name string
	Debt *scoring.DebtMetrics
}

// rawValue fetches a numeric raw metric, reporting false when missing or
// malformed. Booleans coerce to 1/0.
func (pc *ProjectContext) rawValue(c metrics.Category, key string) (float64, bool) {
	if pc.Debt == nil || pc.Debt.Raw == nil {
		return 0, false
	}
	v, ok := pc.Debt.Raw.ForCategory(c)[key]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	return 0, false
}

// Rule examines one project and produces zero or more recommendations.
type Rule struct {
	ID    string
	Apply func(pc *ProjectContext) []Recommendation
}
