package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"biofeedback/internal/domain"
)

var (
	// ErrNoEntries indicates there are no raw entries for the requested day.
	ErrNoEntries = errors.New("no entries for day")
	// ErrAggregationFailed indicates the raw entry was stored but the daily
	// aggregate could not be recomputed. The entry is durable; the aggregate
	// is stale until the next successful aggregation for that day.
	ErrAggregationFailed = errors.New("entry stored but aggregation failed")
)

// BiofeedbackService encapsulates entry submission and daily aggregation
// use cases.
type BiofeedbackService struct {
	entries domain.EntryRepository
	aggs    domain.AggregationRepository
}

// NewBiofeedbackService creates a BiofeedbackService backed by the given
// repositories.
func NewBiofeedbackService(er domain.EntryRepository, ar domain.AggregationRepository) *BiofeedbackService {
	return &BiofeedbackService{entries: er, aggs: ar}
}

// EntryInput is a raw client submission before normalization. Metric keys
// may be display labels or canonical keys.
type EntryInput struct {
	Day             string
	Time            string
	Metrics         map[string]domain.Metric
	AdditionalNotes []string
	Summary         string
}

// Submit validates and stores a raw entry, then recomputes the daily
// aggregate for that day. Aggregation is a separate step after the insert:
// if it fails the entry id is still returned together with
// ErrAggregationFailed, since raw data preservation takes priority over
// aggregate freshness.
func (s *BiofeedbackService) Submit(ctx context.Context, userID int64, in EntryInput) (int64, *domain.DailyAggregation, error) {
	if _, err := time.Parse("2006-01-02", in.Day); err != nil {
		return 0, nil, errors.New("date must be formatted YYYY-MM-DD")
	}
	if in.Time == "" {
		return 0, nil, errors.New("time is required")
	}
	for key, m := range in.Metrics {
		if m.Score < 0 || m.Score > 5 {
			return 0, nil, fmt.Errorf("metric %q score must be within [0, 5]", key)
		}
	}

	entry := domain.Entry{
		UserID:          userID,
		Day:             in.Day,
		Time:            in.Time,
		EntryTimestamp:  time.Now().UTC(),
		Metrics:         domain.NormalizeMetrics(in.Metrics),
		AdditionalNotes: in.AdditionalNotes,
		Summary:         in.Summary,
	}
	if entry.AdditionalNotes == nil {
		entry.AdditionalNotes = []string{}
	}

	id, err := s.entries.InsertEntry(ctx, entry)
	if err != nil {
		return 0, nil, fmt.Errorf("insert entry: %w", err)
	}

	agg, err := s.Aggregate(ctx, userID, in.Day)
	if err != nil {
		return id, nil, fmt.Errorf("%w: %v", ErrAggregationFailed, err)
	}
	return id, agg, nil
}

// Aggregate recomputes the daily aggregate for (userID, day) from the
// complete current set of raw entries and upserts it, replacing any prior
// aggregate row in full. Re-running with no new entries yields an identical
// result; a lost race between two concurrent recomputes costs at most one
// recompute of staleness and self-heals on the next submission.
func (s *BiofeedbackService) Aggregate(ctx context.Context, userID int64, day string) (*domain.DailyAggregation, error) {
	entries, err := s.entries.ListEntriesForDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("fetch entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	agg := aggregateEntries(userID, day, entries)
	if err := s.aggs.UpsertAggregation(ctx, *agg); err != nil {
		return nil, fmt.Errorf("upsert aggregation: %w", err)
	}
	return agg, nil
}

// GetDay returns the aggregate for a single day, or nil if none exists.
func (s *BiofeedbackService) GetDay(ctx context.Context, userID int64, day string) (*domain.DailyAggregation, error) {
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, errors.New("date must be formatted YYYY-MM-DD")
	}
	return s.aggs.GetAggregation(ctx, userID, day)
}

// ListRange returns aggregates within [startDay, endDay], ascending by day.
func (s *BiofeedbackService) ListRange(ctx context.Context, userID int64, startDay, endDay string) ([]domain.DailyAggregation, error) {
	start, err := time.Parse("2006-01-02", startDay)
	if err != nil {
		return nil, errors.New("start must be formatted YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", endDay)
	if err != nil {
		return nil, errors.New("end must be formatted YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, errors.New("end must not precede start")
	}
	return s.aggs.ListAggregations(ctx, userID, startDay, endDay)
}

// ListRecentEntries returns the most recent raw entries up to limit.
func (s *BiofeedbackService) ListRecentEntries(ctx context.Context, userID int64, limit int) ([]domain.Entry, error) {
	return s.entries.ListRecentEntries(ctx, userID, limit)
}

// aggregateEntries derives the daily aggregate purely from the entry set,
// so the result is reproducible by re-aggregating from scratch.
func aggregateEntries(userID int64, day string, entries []domain.Entry) *domain.DailyAggregation {
	agg := &domain.DailyAggregation{
		UserID:          userID,
		Day:             day,
		AdditionalNotes: []string{},
	}

	// Stamp with the newest entry's submission instant rather than the
	// clock, so re-aggregating an unchanged day is byte-identical.
	for _, e := range entries {
		if e.EntryTimestamp.After(agg.EntryTimestamp) {
			agg.EntryTimestamp = e.EntryTimestamp
		}
	}

	for _, key := range domain.MetricKeys {
		var total float64
		var count int
		var notes []string
		seen := make(map[string]bool)

		for _, e := range entries {
			m := e.Metrics.ByKey(key)
			if m.Score <= 0 {
				// score 0 means "not reported"; it must not pull the
				// average toward zero
				continue
			}
			total += m.Score
			count++
			if m.Notes != "" && !seen[m.Notes] {
				seen[m.Notes] = true
				notes = append(notes, m.Notes)
			}
		}

		out := agg.Metrics.ByKey(key)
		if count > 0 {
			out.Score = total / float64(count)
			out.Notes = strings.Join(notes, " ")
		}
		out.AggregatedNote = fmt.Sprintf("Average score: %.2f. Notes: %s", out.Score, out.Notes)
	}

	seenNotes := make(map[string]bool)
	var summaries []string
	for _, e := range entries {
		for _, n := range e.AdditionalNotes {
			if n == "" || seenNotes[n] {
				continue
			}
			seenNotes[n] = true
			agg.AdditionalNotes = append(agg.AdditionalNotes, n)
		}
		if sum := strings.TrimSpace(e.Summary); sum != "" {
			summaries = append(summaries, sum)
		}
	}
	agg.Summary = strings.Join(summaries, " ")

	return agg
}
