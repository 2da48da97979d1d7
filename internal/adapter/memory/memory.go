// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"biofeedback/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu         sync.Mutex
	entries    []domain.Entry
	aggregates map[string]domain.DailyAggregation
	users      []*domain.User
	sessions   map[string]*domain.Session

	entryIDCounter int64
	userIDCounter  int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		aggregates: make(map[string]domain.DailyAggregation),
		sessions:   make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.EntryRepository = (*DB)(nil)
var _ domain.AggregationRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

func aggKey(userID int64, day string) string {
	return fmt.Sprintf("%d/%s", userID, day)
}

// --- EntryRepository ---

// InsertEntry appends a biofeedback entry.
func (db *DB) InsertEntry(ctx context.Context, e domain.Entry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.entryIDCounter++
	e.ID = db.entryIDCounter
	e.EntryTimestamp = e.EntryTimestamp.UTC()
	if e.AdditionalNotes == nil {
		e.AdditionalNotes = []string{}
	}
	db.entries = append(db.entries, e)
	return e.ID, nil
}

// ListEntriesForDay returns all entries for a user and day, oldest first.
func (db *DB) ListEntriesForDay(ctx context.Context, userID int64, day string) ([]domain.Entry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Entry
	for _, e := range db.entries {
		if e.UserID == userID && e.Day == day {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EntryTimestamp.Before(result[j].EntryTimestamp)
	})
	return result, nil
}

// ListRecentEntries lists the most recent entries, newest first.
func (db *DB) ListRecentEntries(ctx context.Context, userID int64, limit int) ([]domain.Entry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Entry
	for _, e := range db.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EntryTimestamp.After(result[j].EntryTimestamp)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- AggregationRepository ---

// UpsertAggregation replaces the aggregate for (user, day) in full.
func (db *DB) UpsertAggregation(ctx context.Context, a domain.DailyAggregation) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if a.AdditionalNotes == nil {
		a.AdditionalNotes = []string{}
	}
	db.aggregates[aggKey(a.UserID, a.Day)] = a
	return nil
}

// GetAggregation returns the aggregate for a day, or nil if none exists.
func (db *DB) GetAggregation(ctx context.Context, userID int64, day string) (*domain.DailyAggregation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if a, ok := db.aggregates[aggKey(userID, day)]; ok {
		ret := a
		return &ret, nil
	}
	return nil, nil
}

// ListAggregations returns aggregates within the day range, ascending.
func (db *DB) ListAggregations(ctx context.Context, userID int64, startDay, endDay string) ([]domain.DailyAggregation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.DailyAggregation, 0)
	for _, a := range db.aggregates {
		// ISO dates compare lexicographically
		if a.UserID == userID && a.Day >= startDay && a.Day <= endDay {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Day < result[j].Day
	})
	return result, nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
