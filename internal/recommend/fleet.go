package recommend

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/debtscan/internal/metrics"
)

// fleetRule pairs a per-project rule ID with the sentence emitted when at
// least one project trips it. Declaration order is the tie-break when two
// rules affect the same fraction of the fleet.
type fleetRule struct {
	id       string
	sentence func(n, total int) string
}

var fleetRules = buildFleetRules()

func buildFleetRules() []fleetRule {
	rules := make([]fleetRule, 0, len(metrics.Categories)+6)
	for _, c := range metrics.Categories {
		cat := c
		rules = append(rules, fleetRule{
			id: "category_debt_" + string(cat),
			sentence: func(n, total int) string {
				return fmt.Sprintf("%d/%d projects carry actionable %s debt. Schedule remediation for this category.", n, total, cat)
			},
		})
	}
	rules = append(rules,
		fleetRule{"missing_cicd", func(n, total int) string {
			return fmt.Sprintf("Critical: %d/%d projects lack CI/CD configuration. Roll out pipeline templates.", n, total)
		}},
		fleetRule{"hardcoded_secrets", func(n, total int) string {
			return fmt.Sprintf("Critical: %d/%d projects show potential hardcoded secrets. Adopt a secret manager and rotate credentials.", n, total)
		}},
		fleetRule{"low_test_coverage", func(n, total int) string {
			return fmt.Sprintf("High priority: %d/%d projects have insufficient test coverage. Establish fleet-wide testing standards.", n, total)
		}},
		fleetRule{"not_containerized", func(n, total int) string {
			return fmt.Sprintf("Medium priority: %d/%d projects are not containerized. Provide a shared Dockerfile baseline.", n, total)
		}},
		fleetRule{"missing_readme", func(n, total int) string {
			return fmt.Sprintf("Medium priority: %d/%d projects lack README documentation. Publish a documentation template.", n, total)
		}},
		fleetRule{"single_contributor", func(n, total int) string {
			return fmt.Sprintf("%d/%d projects depend on a single contributor. Review ownership and on-call coverage.", n, total)
		}},
	)
	return rules
}

// FleetCounts tallies, across all successful scans in a batch, how many
// projects tripped each recommendation rule.
type FleetCounts struct {
	trips map[string]int
	total int
}

// NewFleetCounts creates a tally over a fleet of total successfully scanned
// projects.
func NewFleetCounts(total int) *FleetCounts {
	return &FleetCounts{trips: make(map[string]int), total: total}
}

// Add records one project's recommendations. A rule counts at most once per
// project however many recommendations it emitted.
func (f *FleetCounts) Add(recs []Recommendation) {
	seen := make(map[string]bool, len(recs))
	for _, r := range recs {
		if !seen[r.RuleID] {
			seen[r.RuleID] = true
			f.trips[r.RuleID]++
		}
	}
}

// Sentences renders the fleet-level recommendations for every rule tripped
// by at least one project, sorted by the fraction of the fleet affected,
// descending. Stable with respect to rule declaration order.
func (f *FleetCounts) Sentences() []string {
	if f.total == 0 {
		return nil
	}
	type hit struct {
		n        int
		sentence string
	}
	var hits []hit
	for _, rule := range fleetRules {
		if n := f.trips[rule.id]; n > 0 {
			hits = append(hits, hit{n, rule.sentence(n, f.total)})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].n > hits[j].n
	})
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.sentence
	}
	return out
}
