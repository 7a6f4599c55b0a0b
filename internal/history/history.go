// Package history persists per-session navigation history in SQLite so a
// reconnecting session can restore the page it was on.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/pageshell/internal/db"
	"github.com/ziadkadry99/pageshell/internal/router"
)

// ErrUnknownSession is returned for a session id that was never created.
var ErrUnknownSession = errors.New("history: unknown session")

// Entry is one recorded visit.
type Entry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Route     string    `json:"route"`
	VisitedAt time.Time `json:"visited_at"`
}

// Store provides access to sessions and their navigation history.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// CreateSession registers a new session and returns its id.
func (s *Store) CreateSession(ctx context.Context) (string, error) {
	id := uuid.New().String()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO sessions (id) VALUES (?)`, id); err != nil {
		return "", fmt.Errorf("inserting session: %w", err)
	}
	return id, nil
}

// Resume returns id when it names a stored session, or creates a new session
// otherwise. The second result reports whether an existing session resumed.
func (s *Store) Resume(ctx context.Context, id string) (string, bool, error) {
	if id != "" {
		exists, err := s.sessionExists(ctx, id)
		if err != nil {
			return "", false, err
		}
		if exists {
			return id, true, nil
		}
	}
	newID, err := s.CreateSession(ctx)
	return newID, false, err
}

func (s *Store) sessionExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("looking up session: %w", err)
	}
	return n > 0, nil
}

// Push records a visit to route.
func (s *Store) Push(ctx context.Context, sessionID, route string) error {
	exists, err := s.sessionExists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO navigation_history (session_id, route, visited_at) VALUES (?, ?, ?)`,
		sessionID, route, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// Current returns the most recently recorded route, or "" when the session
// has no history.
func (s *Store) Current(ctx context.Context, sessionID string) (string, error) {
	var route string
	err := s.db.QueryRowContext(ctx, `
		SELECT route FROM navigation_history
		WHERE session_id = ?
		ORDER BY id DESC LIMIT 1`, sessionID).Scan(&route)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying current route: %w", err)
	}
	return route, nil
}

// List returns the newest entries of a session, newest first. A limit of
// zero or less returns every entry.
func (s *Store) List(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	query := `
		SELECT id, session_id, route, visited_at FROM navigation_history
		WHERE session_id = ?
		ORDER BY id DESC`
	args := []any{sessionID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Route, &e.VisitedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Theme returns the stored theme of a session.
func (s *Store) Theme(ctx context.Context, sessionID string) (router.Theme, error) {
	var theme string
	err := s.db.QueryRowContext(ctx, `SELECT theme FROM sessions WHERE id = ?`, sessionID).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	if err != nil {
		return "", fmt.Errorf("querying theme: %w", err)
	}
	return router.Theme(theme), nil
}

// SetTheme stores the theme of a session.
func (s *Store) SetTheme(ctx context.Context, sessionID string, theme router.Theme) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET theme = ? WHERE id = ?`, string(theme), sessionID)
	if err != nil {
		return fmt.Errorf("updating theme: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	return nil
}

// Location returns a router.Location that reads and records the history of
// one session.
func (s *Store) Location(sessionID string) router.Location {
	return &sessionLocation{store: s, sessionID: sessionID}
}

type sessionLocation struct {
	store     *Store
	sessionID string
}

func (l *sessionLocation) Fragment(ctx context.Context) (string, error) {
	return l.store.Current(ctx, l.sessionID)
}

func (l *sessionLocation) Push(ctx context.Context, route string) error {
	return l.store.Push(ctx, l.sessionID, route)
}
