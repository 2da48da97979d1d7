package domain

import (
	"context"
	"time"
)

// Entry is one immutable biofeedback submission: all nine metrics captured
// at a point in time, plus free-text notes. A user may submit several
// entries for the same day.
type Entry struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Day             string    `json:"date"`
	Time            string    `json:"time"`
	EntryTimestamp  time.Time `json:"entry_timestamp"`
	Metrics         MetricSet `json:"metrics"`
	AdditionalNotes []string  `json:"additional_notes"`
	Summary         string    `json:"summary"`
}

// EntryRepository is the port for raw entry persistence. Entries are
// append-only; nothing in the system updates or deletes them.
type EntryRepository interface {
	InsertEntry(ctx context.Context, e Entry) (int64, error)
	ListEntriesForDay(ctx context.Context, userID int64, day string) ([]Entry, error)
	ListRecentEntries(ctx context.Context, userID int64, limit int) ([]Entry, error)
}
