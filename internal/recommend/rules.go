package recommend

import (
	"fmt"

	"github.com/blackwell-systems/debtscan/internal/metrics"
)

// ActionableCutoff is the category score above which a category earns a
// recommendation of its own.
const ActionableCutoff = 2.0

// categoryAdvice gives the remediation sentence per category, in the same
// declaration order as metrics.Categories.
var categoryAdvice = map[metrics.Category]string{
	metrics.CategoryCodeQuality:    "Reduce code quality debt: raise test coverage, split oversized files, and work down the lint backlog",
	metrics.CategoryArchitecture:   "Review architecture: establish a recognizable structure, document APIs, and expand the README",
	metrics.CategoryInfrastructure: "Harden infrastructure: add CI/CD, remove hardcoded secrets, and containerize the service",
	metrics.CategoryOperations:     "Improve operational health: increase deployment cadence and spread ownership beyond a single contributor",
}

// CategoryDebt emits one recommendation for every category whose score
// exceeds the actionable cutoff. Priority scales with how far the score
// exceeds the cutoff.
var CategoryDebt = Rule{
	ID: "category_debt",
	Apply: func(pc *ProjectContext) []Recommendation {
		var recs []Recommendation
		for _, c := range metrics.Categories {
			score := pc.Debt.Score(c)
			if score <= ActionableCutoff {
				continue
			}
			recs = append(recs, Recommendation{
				RuleID:   "category_debt_" + string(c),
				Category: c,
				Priority: priorityForScore(score),
				Message:  fmt.Sprintf("[%s] %s (score %.1f)", priorityForScore(score), categoryAdvice[c], score),
				Signal:   score,
			})
		}
		return recs
	},
}

// priorityForScore maps a category score past the cutoff to a priority.
func priorityForScore(score float64) Priority {
	switch {
	case score >= 3.5:
		return PriorityCritical
	case score >= 3.0:
		return PriorityHigh
	case score >= 2.5:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// MissingCICD fires when the project has no CI/CD configuration at all.
var MissingCICD = Rule{
	ID: "missing_cicd",
	Apply: func(pc *ProjectContext) []Recommendation {
		v, ok := pc.rawValue(metrics.CategoryInfrastructure, "has_cicd_config")
		if !ok || v >= 1 {
			return nil
		}
		return []Recommendation{{
			RuleID:   "missing_cicd",
			Category: metrics.CategoryInfrastructure,
			Priority: PriorityHigh,
			Message:  fmt.Sprintf("[high] %s has no CI/CD configuration. Add a pipeline so every change is built and tested", pc.Name),
			Signal:   1,
		}}
	},
}

// HardcodedSecrets fires when the secret scan found candidate secrets.
// Three or more findings escalate to critical.
var HardcodedSecrets = Rule{
	ID: "hardcoded_secrets",
	Apply: func(pc *ProjectContext) []Recommendation {
		n, ok := pc.rawValue(metrics.CategoryInfrastructure, "potential_hardcoded_secrets")
		if !ok || n <= 0 {
			return nil
		}
		prio := PriorityHigh
		if n >= 3 {
			prio = PriorityCritical
		}
		return []Recommendation{{
			RuleID:   "hardcoded_secrets",
			Category: metrics.CategoryInfrastructure,
			Priority: prio,
			Message:  fmt.Sprintf("[%s] %s has %d potential hardcoded secret(s). Move them to a secret manager and rotate the exposed values", prio, pc.Name, int(n)),
			Signal:   n,
		}}
	},
}

// LowTestCoverage fires below a 0.3 test-to-code ratio; below 0.1 it is
// high priority.
var LowTestCoverage = Rule{
	ID: "low_test_coverage",
	Apply: func(pc *ProjectContext) []Recommendation {
		ratio, ok := pc.rawValue(metrics.CategoryCodeQuality, "test_to_code_ratio")
		if !ok || ratio >= 0.3 {
			return nil
		}
		prio := PriorityMedium
		if ratio < 0.1 {
			prio = PriorityHigh
		}
		return []Recommendation{{
			RuleID:   "low_test_coverage",
			Category: metrics.CategoryCodeQuality,
			Priority: prio,
			Message:  fmt.Sprintf("[%s] %s has a test-to-code ratio of %.2f. Establish a testing baseline before adding features", prio, pc.Name, ratio),
			Signal:   0.3 - ratio,
		}}
	},
}

// NotContainerized fires when neither a Dockerfile nor a compose file exists.
var NotContainerized = Rule{
	ID: "not_containerized",
	Apply: func(pc *ProjectContext) []Recommendation {
		v, ok := pc.rawValue(metrics.CategoryInfrastructure, "is_containerized")
		if !ok || v >= 1 {
			return nil
		}
		return []Recommendation{{
			RuleID:   "not_containerized",
			Category: metrics.CategoryInfrastructure,
			Priority: PriorityMedium,
			Message:  fmt.Sprintf("[medium] %s is not containerized. Add a Dockerfile to make builds reproducible", pc.Name),
			Signal:   1,
		}}
	},
}

// MissingReadme fires when the repository has no README.
var MissingReadme = Rule{
	ID: "missing_readme",
	Apply: func(pc *ProjectContext) []Recommendation {
		v, ok := pc.rawValue(metrics.CategoryArchitecture, "has_readme")
		if !ok || v >= 1 {
			return nil
		}
		return []Recommendation{{
			RuleID:   "missing_readme",
			Category: metrics.CategoryArchitecture,
			Priority: PriorityMedium,
			Message:  fmt.Sprintf("[medium] %s has no README. Document purpose, setup, and ownership", pc.Name),
			Signal:   1,
		}}
	},
}

// SingleContributor flags bus-factor risk.
var SingleContributor = Rule{
	ID: "single_contributor",
	Apply: func(pc *ProjectContext) []Recommendation {
		n, ok := pc.rawValue(metrics.CategoryOperations, "unique_contributors")
		if !ok || n != 1 {
			return nil
		}
		return []Recommendation{{
			RuleID:   "single_contributor",
			Category: metrics.CategoryOperations,
			Priority: PriorityLow,
			Message:  fmt.Sprintf("[low] %s has a single contributor. Spread knowledge through reviews or pairing", pc.Name),
			Signal:   1,
		}}
	},
}

// LintBacklog fires when the linter reports a large issue count.
var LintBacklog = Rule{
	ID: "lint_backlog",
	Apply: func(pc *ProjectContext) []Recommendation {
		n, ok := pc.rawValue(metrics.CategoryCodeQuality, "python_flake8_issues")
		if !ok || n < 50 {
			return nil
		}
		return []Recommendation{{
			RuleID:   "lint_backlog",
			Category: metrics.CategoryCodeQuality,
			Priority: PriorityMedium,
			Message:  fmt.Sprintf("[medium] %s carries %d open lint findings. Burn the backlog down and gate new ones in CI", pc.Name, int(n)),
			Signal:   n,
		}}
	},
}
