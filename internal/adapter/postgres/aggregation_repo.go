package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"biofeedback/internal/domain"

	"github.com/lib/pq"
)

// UpsertAggregation writes the daily aggregate for (user_id, day),
// replacing any existing row wholesale. Last writer wins; the aggregate is
// always recomputed from scratch so a lost race is only stale, never
// corrupt.
func (d *DB) UpsertAggregation(ctx context.Context, a domain.DailyAggregation) error {
	metrics, err := json.Marshal(a.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO daily_aggregations(user_id, day, entry_timestamp, metrics, additional_notes, summary)
		 VALUES($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, day) DO UPDATE SET
		   entry_timestamp = EXCLUDED.entry_timestamp,
		   metrics = EXCLUDED.metrics,
		   additional_notes = EXCLUDED.additional_notes,
		   summary = EXCLUDED.summary;`,
		a.UserID, a.Day, a.EntryTimestamp.UTC(), metrics, pq.Array(a.AdditionalNotes), a.Summary,
	)
	return err
}

// GetAggregation returns the aggregate for a single day, or nil if none
// exists.
func (d *DB) GetAggregation(ctx context.Context, userID int64, day string) (*domain.DailyAggregation, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT day, entry_timestamp, metrics, additional_notes, summary FROM daily_aggregations WHERE user_id=$1 AND day=$2;",
		userID, day)

	a, err := scanAggregation(row, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

// ListAggregations returns aggregates within [startDay, endDay], ascending
// by day. Day strings are ISO dates, so lexicographic comparison matches
// chronological order.
func (d *DB) ListAggregations(ctx context.Context, userID int64, startDay, endDay string) ([]domain.DailyAggregation, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT day, entry_timestamp, metrics, additional_notes, summary FROM daily_aggregations WHERE user_id=$1 AND day >= $2 AND day <= $3 ORDER BY day;",
		userID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.DailyAggregation, 0)
	for rows.Next() {
		a, err := scanAggregation(rows, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAggregation(row scanner, userID int64) (*domain.DailyAggregation, error) {
	var a domain.DailyAggregation
	var metrics []byte
	var notes pq.StringArray
	if err := row.Scan(&a.Day, &a.EntryTimestamp, &metrics, &notes, &a.Summary); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metrics, &a.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}
	a.UserID = userID
	a.AdditionalNotes = notes
	if a.AdditionalNotes == nil {
		a.AdditionalNotes = []string{}
	}
	return &a, nil
}
