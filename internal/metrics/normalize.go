package metrics

// Normalize converts one category's raw metric mapping into bounded debt
// indicators. Unknown keys in raw are ignored so analyzers can add metrics
// without breaking older scorers. Missing keys and values of an unexpected
// shape fall back to the indicator's neutral default; neither case is an
// error. Pure function: identical input always yields identical output.
func Normalize(c Category, raw map[string]any) []IndicatorValue {
	table := IndicatorsFor(c)
	values := make([]IndicatorValue, 0, len(table))
	for _, ind := range table {
		v, ok := coerce(raw[ind.Key])
		if !ok {
			values = append(values, IndicatorValue{
				Key:       ind.Key,
				Value:     ind.Neutral,
				Weight:    ind.Weight,
				Defaulted: true,
			})
			continue
		}
		values = append(values, IndicatorValue{
			Key:    ind.Key,
			Value:  ind.Normalize(v),
			Weight: ind.Weight,
		})
	}
	return values
}

// coerce converts a raw metric value to a float64. Booleans map to 1/0 so
// presence curves can treat them uniformly. Anything non-numeric reports
// false and is handled as missing by the caller.
func coerce(v any) (float64, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	}
	return 0, false
}
