// Package domain contains the core business entities and interfaces.
package domain

// Metric is a single tracked biofeedback dimension within one entry or
// aggregate. A score of 0 means "not reported" and is excluded from
// averaging; valid reported scores are 1-5.
type Metric struct {
	Score          float64 `json:"score"`
	Notes          string  `json:"notes"`
	AggregatedNote string  `json:"aggregated_note,omitempty"`
}

// MetricSet is the closed set of the nine tracked metrics. Keeping it a
// struct rather than a map makes the canonical schema a compile-time
// invariant: an entry always carries all nine keys.
type MetricSet struct {
	SexDrive       Metric `json:"sex_drive"`
	Mood           Metric `json:"mood"`
	Digestion      Metric `json:"digestion"`
	Soreness       Metric `json:"soreness"`
	GymPerformance Metric `json:"gym_performance"`
	SleepQuality   Metric `json:"sleep_quality"`
	Energy         Metric `json:"energy"`
	HungerLevels   Metric `json:"hunger_levels"`
	Cravings       Metric `json:"cravings"`
}

// MetricKeys is the canonical iteration order for the nine metrics.
var MetricKeys = []string{
	"hunger_levels",
	"gym_performance",
	"soreness",
	"sex_drive",
	"mood",
	"digestion",
	"sleep_quality",
	"energy",
	"cravings",
}

// ByKey returns a pointer to the metric for a canonical key, or nil for an
// unknown key.
func (m *MetricSet) ByKey(key string) *Metric {
	switch key {
	case "hunger_levels":
		return &m.HungerLevels
	case "gym_performance":
		return &m.GymPerformance
	case "soreness":
		return &m.Soreness
	case "sex_drive":
		return &m.SexDrive
	case "mood":
		return &m.Mood
	case "digestion":
		return &m.Digestion
	case "sleep_quality":
		return &m.SleepQuality
	case "energy":
		return &m.Energy
	case "cravings":
		return &m.Cravings
	}
	return nil
}
