// Package metrics defines the raw analyzer output model and the
// normalization step that converts heterogeneous metric values into
// bounded debt indicators.
package metrics

// Category identifies one of the four debt dimensions.
type Category string

const (
	CategoryCodeQuality    Category = "code_quality"
	CategoryArchitecture   Category = "architecture"
	CategoryInfrastructure Category = "infrastructure"
	CategoryOperations     Category = "operations"
)

// Categories lists all categories in declaration order. This order is the
// tie-break order used by recommendation ranking and report rendering.
var Categories = []Category{
	CategoryCodeQuality,
	CategoryArchitecture,
	CategoryInfrastructure,
	CategoryOperations,
}

// RawMetrics holds the unprocessed analyzer output for one project, one
// sub-mapping per category. Values are numeric or boolean; the normalizer
// validates shape per key and everything else is passed through opaquely.
type RawMetrics struct {
	CodeAnalysis           map[string]any `json:"code_analysis"`
	ArchitectureAnalysis   map[string]any `json:"architecture_analysis"`
	InfrastructureAnalysis map[string]any `json:"infrastructure_analysis"`
	OperationsAnalysis     map[string]any `json:"operations_analysis"`
}

// ForCategory returns the raw sub-mapping for the given category.
// A nil map is returned for categories the analyzers did not populate.
func (r *RawMetrics) ForCategory(c Category) map[string]any {
	if r == nil {
		return nil
	}
	switch c {
	case CategoryCodeQuality:
		return r.CodeAnalysis
	case CategoryArchitecture:
		return r.ArchitectureAnalysis
	case CategoryInfrastructure:
		return r.InfrastructureAnalysis
	case CategoryOperations:
		return r.OperationsAnalysis
	}
	return nil
}

// IndicatorValue is one normalized debt indicator: 0 means no debt signal,
// 1 means the maximum debt signal for that metric. Defaulted marks values
// substituted because the raw metric was missing or malformed.
type IndicatorValue struct {
	Key       string
	Value     float64
	Weight    float64
	Defaulted bool
}
