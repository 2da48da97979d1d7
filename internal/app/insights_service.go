package app

import (
	"context"
	"errors"
	"time"

	"biofeedback/internal/domain"
)

// InsightsService computes per-metric insights over daily aggregates.
type InsightsService struct {
	aggs domain.AggregationRepository
}

// NewInsightsService creates an InsightsService backed by the given
// repository.
func NewInsightsService(ar domain.AggregationRepository) *InsightsService {
	return &InsightsService{aggs: ar}
}

// Insight summarizes one metric across a date window.
type Insight struct {
	Metric  string  `json:"metric"`
	Average float64 `json:"average"`
	Days    int     `json:"days"`
	Change  string  `json:"change"`
}

// GetRange returns one insight per canonical metric for aggregates within
// [startDay, endDay]. Days where a metric was not reported (score 0) do not
// count toward its average. Change compares the last reported score against
// the first.
func (s *InsightsService) GetRange(ctx context.Context, userID int64, startDay, endDay string) ([]Insight, error) {
	if _, err := time.Parse("2006-01-02", startDay); err != nil {
		return nil, errors.New("start must be formatted YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", endDay); err != nil {
		return nil, errors.New("end must be formatted YYYY-MM-DD")
	}

	aggs, err := s.aggs.ListAggregations(ctx, userID, startDay, endDay)
	if err != nil {
		return nil, err
	}

	insights := make([]Insight, 0, len(domain.MetricKeys))
	for _, key := range domain.MetricKeys {
		var total, first, last float64
		var count int

		for i := range aggs {
			score := aggs[i].Metrics.ByKey(key).Score
			if score <= 0 {
				continue
			}
			if count == 0 {
				first = score
			}
			last = score
			total += score
			count++
		}

		in := Insight{Metric: key, Change: "neutral"}
		if count > 0 {
			in.Average = total / float64(count)
			in.Days = count
			if last > first {
				in.Change = "positive"
			} else if last < first {
				in.Change = "negative"
			}
		}
		insights = append(insights, in)
	}
	return insights, nil
}
