package recommend

// Engine runs all registered rules against a project context and collects
// the resulting recommendations in ranked order.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with all built-in rules registered. Rule
// order is the declared order; it is the final tie-break in ranking, so it
// must stay stable across runs.
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			CategoryDebt,
			MissingCICD,
			HardcodedSecrets,
			LowTestCoverage,
			NotContainerized,
			MissingReadme,
			SingleContributor,
			LintBacklog,
		},
	}
}

// Run executes all rules against the project and returns the collected
// recommendations sorted by priority, then signal magnitude.
func (e *Engine) Run(pc *ProjectContext) []Recommendation {
	var all []Recommendation
	for _, rule := range e.rules {
		all = append(all, rule.Apply(pc)...)
	}
	return Rank(all)
}

// Messages flattens recommendations to their display strings, order kept.
func Messages(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Message
	}
	return out
}
