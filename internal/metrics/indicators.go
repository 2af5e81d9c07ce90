package metrics

// Indicator describes how one raw metric maps to a bounded debt signal.
// Normalize must be monotone in the debt direction of the source metric and
// return a value in [0,1]. Neutral is substituted when the raw value is
// missing or malformed: boolean presence checks default to the worst case
// (absence of CI/CD config is debt, not unknown), ratio and count metrics
// default to the 0.5 midpoint.
type Indicator struct {
	Key       string
	Weight    float64
	Neutral   float64
	Normalize func(v float64) float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// debtAbove builds a curve for metrics where more is worse: no signal at or
// below lo, full signal at or above hi, linear between.
func debtAbove(lo, hi float64) func(float64) float64 {
	return func(v float64) float64 {
		return clamp01((v - lo) / (hi - lo))
	}
}

// debtBelow builds a curve for metrics where more is better: full signal at
// or below lo, no signal at or above hi.
func debtBelow(lo, hi float64) func(float64) float64 {
	return func(v float64) float64 {
		return 1 - clamp01((v-lo)/(hi-lo))
	}
}

// presence is the curve for booleans where having the thing clears the
// signal: true (coerced to 1) scores 0 debt, false scores full debt.
func presence() func(float64) float64 {
	return func(v float64) float64 {
		if v >= 1 {
			return 0
		}
		return 1
	}
}

// Indicator sub-weights within each category sum to 1.0. The relative sizes
// follow the penalty sizes of the original heuristics: missing tests and
// missing documentation dominate code quality, missing CI/CD dominates
// infrastructure, and so on. Curve breakpoints reuse the same thresholds
// (test ratio 0.1/0.5, avg file length 300/500, pipeline success 0.7/0.95,
// maintenance share 40/70...).
var codeQualityIndicators = []Indicator{
	{Key: "test_to_code_ratio", Weight: 0.25, Neutral: 0.5, Normalize: debtBelow(0.1, 0.5)},
	{Key: "avg_lines_per_file", Weight: 0.15, Neutral: 0.5, Normalize: debtAbove(300, 500)},
	{Key: "large_files_count", Weight: 0.15, Neutral: 0.5, Normalize: debtAbove(1, 10)},
	{Key: "deep_nesting_files", Weight: 0.10, Neutral: 0.5, Normalize: debtAbove(0, 10)},
	{Key: "python_flake8_issues", Weight: 0.15, Neutral: 0.5, Normalize: debtAbove(10, 100)},
	{Key: "code_documentation_ratio", Weight: 0.20, Neutral: 0.5, Normalize: debtBelow(0.2, 0.5)},
}

var architectureIndicators = []Indicator{
	{Key: "max_directory_depth", Weight: 0.15, Neutral: 0.5, Normalize: debtAbove(6, 10)},
	{Key: "has_mvc_pattern", Weight: 0.06, Neutral: 1, Normalize: presence()},
	{Key: "has_layered_pattern", Weight: 0.06, Neutral: 1, Normalize: presence()},
	{Key: "has_microservices_pattern", Weight: 0.06, Neutral: 1, Normalize: presence()},
	{Key: "has_clean_architecture_pattern", Weight: 0.06, Neutral: 1, Normalize: presence()},
	{Key: "has_api_specifications", Weight: 0.10, Neutral: 1, Normalize: presence()},
	{Key: "has_readme", Weight: 0.20, Neutral: 1, Normalize: presence()},
	{Key: "readme_length", Weight: 0.10, Neutral: 0.5, Normalize: debtBelow(100, 500)},
	{Key: "documentation_files", Weight: 0.10, Neutral: 0.5, Normalize: debtBelow(1, 3)},
	{Key: "has_docker_config", Weight: 0.05, Neutral: 1, Normalize: presence()},
	{Key: "has_kubernetes_config", Weight: 0.06, Neutral: 1, Normalize: presence()},
}

var infrastructureIndicators = []Indicator{
	{Key: "has_cicd_config", Weight: 0.30, Neutral: 1, Normalize: presence()},
	{Key: "pipeline_success_rate", Weight: 0.15, Neutral: 0.5, Normalize: debtBelow(0.7, 0.95)},
	{Key: "potential_hardcoded_secrets", Weight: 0.20, Neutral: 0.5, Normalize: debtAbove(0, 4)},
	{Key: "has_gitignore", Weight: 0.05, Neutral: 1, Normalize: presence()},
	{Key: "is_containerized", Weight: 0.15, Neutral: 1, Normalize: presence()},
	{Key: "has_prometheus_config", Weight: 0.05, Neutral: 1, Normalize: presence()},
	{Key: "has_grafana_config", Weight: 0.05, Neutral: 1, Normalize: presence()},
	{Key: "logging_usage_ratio", Weight: 0.05, Neutral: 0.5, Normalize: debtBelow(0.1, 0.5)},
}

var operationsIndicators = []Indicator{
	{Key: "commits_per_week", Weight: 0.20, Neutral: 0.5, Normalize: debtBelow(1, 3)},
	{Key: "deployments_per_week", Weight: 0.20, Neutral: 0.5, Normalize: debtBelow(0.25, 1)},
	{Key: "maintenance_commit_percentage", Weight: 0.20, Neutral: 0.5, Normalize: debtAbove(40, 70)},
	{Key: "unique_contributors", Weight: 0.15, Neutral: 0.5, Normalize: debtBelow(1, 3)},
	{Key: "contribution_gini_coefficient", Weight: 0.10, Neutral: 0.5, Normalize: debtAbove(0.6, 0.9)},
	{Key: "deployment_regularity", Weight: 0.15, Neutral: 0.5, Normalize: debtAbove(7, 21)},
}

var indicatorTables = map[Category][]Indicator{
	CategoryCodeQuality:    codeQualityIndicators,
	CategoryArchitecture:   architectureIndicators,
	CategoryInfrastructure: infrastructureIndicators,
	CategoryOperations:     operationsIndicators,
}

// IndicatorsFor returns the indicator table for a category, in declaration
// order. The returned slice is shared and must not be mutated.
func IndicatorsFor(c Category) []Indicator {
	return indicatorTables[c]
}
