package normalize

import "strconv"

// StoryPoints resolves the estimate from the issue's field map. Precedence:
// both fields set, the primary wins; exactly one set, that one; neither set,
// nil.
func StoryPoints(fields map[string]any, primary, secondary string) *float64 {
	if v, ok := fields[primary].(float64); ok { return &v }
	if v, ok := fields[secondary].(float64); ok { return &v }
	return nil
}

// StoryPointsOrZero coerces an absent estimate to 0 for aggregation contexts.
func StoryPointsOrZero(fields map[string]any, primary, secondary string) float64 {
	if p := StoryPoints(fields, primary, secondary); p != nil { return *p }
	return 0
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
