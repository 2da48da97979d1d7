package domain

// metricLabels maps the human-readable labels used by upload forms onto
// canonical keys. Canonical snake_case keys are accepted as-is.
var metricLabels = map[string]string{
	"Hunger Levels":   "hunger_levels",
	"Gym Performance": "gym_performance",
	"Soreness":        "soreness",
	"Sex Drive":       "sex_drive",
	"Mood":            "mood",
	"Digestion":       "digestion",
	"Sleep Quality":   "sleep_quality",
	"Energy":          "energy",
	"Cravings":        "cravings",
}

// NormalizeMetrics maps a loosely keyed metric submission onto the canonical
// nine-metric schema. Keys may be display labels or canonical keys;
// unrecognised keys are dropped, absent metrics default to score 0 with
// empty notes. Always produces a complete set.
func NormalizeMetrics(raw map[string]Metric) MetricSet {
	var out MetricSet
	for key, metric := range raw {
		canonical, ok := metricLabels[key]
		if !ok {
			canonical = key
		}
		if slot := out.ByKey(canonical); slot != nil {
			slot.Score = metric.Score
			slot.Notes = metric.Notes
		}
	}
	return out
}
