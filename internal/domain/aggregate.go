package domain

import (
	"context"
	"time"
)

// DailyAggregation is the derived summary row for one user and one calendar
// day, recomputed from the complete entry set for that day. Exactly one row
// exists per (user, day).
type DailyAggregation struct {
	UserID          int64     `json:"userId"`
	Day             string    `json:"date"`
	EntryTimestamp  time.Time `json:"entry_timestamp"`
	Metrics         MetricSet `json:"metrics"`
	AdditionalNotes []string  `json:"additional_notes"`
	Summary         string    `json:"summary"`
}

// AggregationRepository is the port for aggregate persistence. Upsert
// replaces the (user, day) row in full; readers never write.
type AggregationRepository interface {
	UpsertAggregation(ctx context.Context, a DailyAggregation) error
	GetAggregation(ctx context.Context, userID int64, day string) (*DailyAggregation, error)
	ListAggregations(ctx context.Context, userID int64, startDay, endDay string) ([]DailyAggregation, error)
}
