// Package report turns a batch of scan results into the fleet summary and
// trend snapshots consumed by the CLI, exports, and dashboards.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/blackwell-systems/debtscan/internal/config"
	"github.com/blackwell-systems/debtscan/internal/recommend"
	"github.com/blackwell-systems/debtscan/internal/scan"
	"github.com/blackwell-systems/debtscan/internal/scoring"
)

// RankedProject is one entry in the top-debt ranking. It serializes as the
// [name, overall_score, risk_level] triple of the report format.
type RankedProject struct {
	Name         string
	OverallScore float64
	RiskLevel    scoring.RiskLevel
}

// MarshalJSON emits the triple form with the score rounded for display.
func (r RankedProject) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Name, scoring.Round1(r.OverallScore), r.RiskLevel})
}

// UnmarshalJSON restores a RankedProject from its triple form.
func (r *RankedProject) UnmarshalJSON(data []byte) error {
	var triple []json.RawMessage
	if err := json.Unmarshal(data, &triple); err != nil {
		return err
	}
	if len(triple) != 3 {
		return fmt.Errorf("report: ranked project has %d elements, want 3", len(triple))
	}
	if err := json.Unmarshal(triple[0], &r.Name); err != nil {
		return err
	}
	if err := json.Unmarshal(triple[1], &r.OverallScore); err != nil {
		return err
	}
	return json.Unmarshal(triple[2], &r.RiskLevel)
}

// Summary is the fleet-wide roll-up of one scan batch.
type Summary struct {
	TotalProjects   int                       `json:"total_projects"`
	SuccessfulScans int                       `json:"successful_scans"`
	FailedScans     int                       `json:"failed_scans"`
	ScanDate        time.Time                 `json:"scan_date"`
	RiskDistribution map[scoring.RiskLevel]int `json:"risk_distribution"`
	TopDebtProjects []RankedProject           `json:"top_debt_projects"`
	Recommendations []string                  `json:"recommendations"`
	Filters         *config.Filters           `json:"filters,omitempty"`
}

// BuildSummary rolls one batch of results into a Summary. Failed scans are
// counted but excluded from the risk distribution and the ranking. topN
// caps the top-debt list; filters, when given, are passed through untouched
// as report metadata.
func BuildSummary(results []scan.ScanResult, topN int, filters *config.Filters) Summary {
	if topN <= 0 {
		topN = config.DefaultTopDebt
	}

	s := Summary{
		TotalProjects:    len(results),
		ScanDate:         time.Now().UTC(),
		RiskDistribution: make(map[scoring.RiskLevel]int, len(scoring.RiskLevels)),
		Filters:          filters,
	}
	for _, level := range scoring.RiskLevels {
		s.RiskDistribution[level] = 0
	}

	var ranked []RankedProject
	criticalRisk := 0

	for _, r := range results {
		if r.Failed() {
			s.FailedScans++
			continue
		}
		s.SuccessfulScans++
		s.RiskDistribution[r.RiskLevel]++
		if r.RiskLevel == scoring.RiskCritical {
			criticalRisk++
		}
		ranked = append(ranked, RankedProject{
			Name:         r.Project.Name,
			OverallScore: r.Metrics.OverallScore,
			RiskLevel:    r.RiskLevel,
		})
	}

	fleet := recommend.NewFleetCounts(s.SuccessfulScans)
	for _, r := range results {
		if !r.Failed() {
			fleet.Add(r.Findings)
		}
	}

	// Worst first; equal scores rank alphabetically so reruns are stable.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].OverallScore != ranked[j].OverallScore {
			return ranked[i].OverallScore > ranked[j].OverallScore
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	s.TopDebtProjects = ranked

	s.Recommendations = fleet.Sentences()
	if criticalRisk > 0 {
		s.Recommendations = append(s.Recommendations, fmt.Sprintf(
			"Immediate action: %d project(s) are at critical risk and need urgent remediation.", criticalRisk))
	}
	return s
}
