package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"biofeedback/internal/domain"

	"github.com/lib/pq"
)

// InsertEntry appends a new biofeedback entry. Entries are never updated or
// deleted.
func (d *DB) InsertEntry(ctx context.Context, e domain.Entry) (int64, error) {
	metrics, err := json.Marshal(e.Metrics)
	if err != nil {
		return 0, fmt.Errorf("marshal metrics: %w", err)
	}

	var id int64
	err = d.sql.QueryRowContext(ctx,
		"INSERT INTO biofeedback_entries(user_id, day, entry_time, entry_timestamp, metrics, additional_notes, summary) VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING id;",
		e.UserID, e.Day, e.Time, e.EntryTimestamp.UTC(), metrics, pq.Array(e.AdditionalNotes), e.Summary,
	).Scan(&id)
	return id, err
}

// ListEntriesForDay returns every entry for a user and calendar day,
// oldest first.
func (d *DB) ListEntriesForDay(ctx context.Context, userID int64, day string) ([]domain.Entry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, day, entry_time, entry_timestamp, metrics, additional_notes, summary FROM biofeedback_entries WHERE user_id=$1 AND day=$2 ORDER BY entry_timestamp, id;",
		userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	return scanEntries(rows, userID)
}

// ListRecentEntries returns the most recent entries up to limit, newest
// first.
func (d *DB) ListRecentEntries(ctx context.Context, userID int64, limit int) ([]domain.Entry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, day, entry_time, entry_timestamp, metrics, additional_notes, summary FROM biofeedback_entries WHERE user_id=$1 ORDER BY entry_timestamp DESC, id DESC LIMIT $2;",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	return scanEntries(rows, userID)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEntries(rows rowScanner, userID int64) ([]domain.Entry, error) {
	var out []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var metrics []byte
		var notes pq.StringArray
		if err := rows.Scan(&e.ID, &e.Day, &e.Time, &e.EntryTimestamp, &metrics, &notes, &e.Summary); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(metrics, &e.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshal metrics: %w", err)
		}
		e.UserID = userID
		e.AdditionalNotes = notes
		if e.AdditionalNotes == nil {
			e.AdditionalNotes = []string{}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
