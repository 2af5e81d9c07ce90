package metrics

import "testing"

func valueFor(t *testing.T, values []IndicatorValue, key string) IndicatorValue {
	t.Helper()
	for _, v := range values {
		if v.Key == key {
			return v
		}
	}
	t.Fatalf("indicator %q not found", key)
	return IndicatorValue{}
}

func TestNormalize_BoundedOutput(t *testing.T) {
	raw := map[string]any{
		"test_to_code_ratio":       -5.0,
		"avg_lines_per_file":       1e9,
		"large_files_count":        10000,
		"deep_nesting_files":       -1,
		"python_flake8_issues":     0,
		"code_documentation_ratio": 2.0,
	}
	for _, v := range Normalize(CategoryCodeQuality, raw) {
		if v.Value < 0 || v.Value > 1 {
			t.Errorf("%s = %v, want within [0,1]", v.Key, v.Value)
		}
	}
}

func TestNormalize_UnknownKeysIgnored(t *testing.T) {
	raw := map[string]any{
		"some_future_metric": 42,
		"has_cicd_config":    true,
	}
	values := Normalize(CategoryInfrastructure, raw)
	if len(values) != len(IndicatorsFor(CategoryInfrastructure)) {
		t.Errorf("got %d indicators, want %d", len(values), len(IndicatorsFor(CategoryInfrastructure)))
	}
	for _, v := range values {
		if v.Key == "some_future_metric" {
			t.Error("unknown key leaked into normalized output")
		}
	}
}

func TestNormalize_MissingKeyUsesNeutralDefault(t *testing.T) {
	values := Normalize(CategoryInfrastructure, map[string]any{})

	// Boolean presence indicators default to the worst case.
	cicd := valueFor(t, values, "has_cicd_config")
	if !cicd.Defaulted || cicd.Value != 1 {
		t.Errorf("has_cicd_config default = %+v, want defaulted worst-case 1", cicd)
	}

	// Ratio indicators default to the midpoint.
	rate := valueFor(t, values, "pipeline_success_rate")
	if !rate.Defaulted || rate.Value != 0.5 {
		t.Errorf("pipeline_success_rate default = %+v, want defaulted 0.5", rate)
	}
}

func TestNormalize_MalformedValueTreatedAsMissing(t *testing.T) {
	raw := map[string]any{
		"has_cicd_config":       "yes please",
		"pipeline_success_rate": []int{1, 2},
	}
	values := Normalize(CategoryInfrastructure, raw)
	if v := valueFor(t, values, "has_cicd_config"); !v.Defaulted {
		t.Error("string value should fall back to the default")
	}
	if v := valueFor(t, values, "pipeline_success_rate"); !v.Defaulted {
		t.Error("slice value should fall back to the default")
	}
}

func TestNormalize_MonotoneInDebtDirection(t *testing.T) {
	low := Normalize(CategoryCodeQuality, map[string]any{"python_flake8_issues": 20})
	high := Normalize(CategoryCodeQuality, map[string]any{"python_flake8_issues": 80})
	if valueFor(t, high, "python_flake8_issues").Value <= valueFor(t, low, "python_flake8_issues").Value {
		t.Error("more lint issues should mean a higher debt signal")
	}

	sparse := Normalize(CategoryCodeQuality, map[string]any{"test_to_code_ratio": 0.15})
	dense := Normalize(CategoryCodeQuality, map[string]any{"test_to_code_ratio": 0.45})
	if valueFor(t, dense, "test_to_code_ratio").Value >= valueFor(t, sparse, "test_to_code_ratio").Value {
		t.Error("a higher test ratio should mean a lower debt signal")
	}
}

func TestNormalize_BooleanCoercion(t *testing.T) {
	values := Normalize(CategoryInfrastructure, map[string]any{
		"has_cicd_config": true,
		"has_gitignore":   false,
	})
	if v := valueFor(t, values, "has_cicd_config"); v.Value != 0 || v.Defaulted {
		t.Errorf("has_cicd_config = %+v, want 0 debt signal", v)
	}
	if v := valueFor(t, values, "has_gitignore"); v.Value != 1 || v.Defaulted {
		t.Errorf("has_gitignore = %+v, want full debt signal", v)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	raw := map[string]any{
		"commits_per_week":              2.5,
		"unique_contributors":           1,
		"maintenance_commit_percentage": 55.0,
	}
	a := Normalize(CategoryOperations, raw)
	b := Normalize(CategoryOperations, raw)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("index %d: %+v != %+v", i, a[i], b[i])
		}
	}
}

func TestIndicatorWeightsSumToOne(t *testing.T) {
	for _, c := range Categories {
		sum := 0.0
		for _, ind := range IndicatorsFor(c) {
			sum += ind.Weight
		}
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("category %s: sub-weights sum to %v, want 1.0", c, sum)
		}
	}
}
