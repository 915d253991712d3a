package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmartyn/giftwise/internal/scoring"
	"github.com/jmartyn/giftwise/internal/session"
)

// SessionRepo is the SQLite implementation of session.SessionRepo.
type SessionRepo struct {
	db *sql.DB
}

// Save inserts or updates a session row. The profile column is written
// only by Complete, so an in-progress update can never leave a reader
// seeing a completed session without its profile. Completed rows are
// terminal: the upsert's state guard refuses to revert one even when a
// stale writer in another process races past the manager's locks.
func (r *SessionRepo) Save(ctx context.Context, s *session.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, assessment_id, state, cultural_context, started_at, completion_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state = excluded.state,
			completion_pct = excluded.completion_pct
		WHERE sessions.state != ?`,
		s.ID, s.UserID, s.AssessmentID, string(s.State), s.CulturalContext,
		s.StartedAt.UTC().Format(time.RFC3339Nano), s.CompletionPct,
		string(session.StateCompleted),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Complete performs the compare-and-swap transition to Completed. The
// state guard in the WHERE clause makes the write atomic with respect
// to concurrent completers: exactly one wins, the rest observe
// session.ErrAlreadyCompleted.
func (r *SessionRepo) Complete(ctx context.Context, s *session.Session) error {
	if s.Profile == nil || s.CompletedAt == nil {
		return fmt.Errorf("complete session %s: missing profile or completion time", s.ID)
	}
	profileJSON, err := json.Marshal(s.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET state = ?, completed_at = ?, completion_pct = ?, profile_json = ?
		WHERE id = ? AND state = ?`,
		string(session.StateCompleted), s.CompletedAt.UTC().Format(time.RFC3339Nano),
		s.CompletionPct, string(profileJSON),
		s.ID, string(session.StateInProgress),
	)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if n == 0 {
		// Either the session never existed or someone else won the race.
		if _, err := r.Get(ctx, s.ID); err != nil {
			return err
		}
		return session.ErrAlreadyCompleted
	}
	return nil
}

// Get loads a session by id.
func (r *SessionRepo) Get(ctx context.Context, id string) (*session.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, assessment_id, state, cultural_context,
		       started_at, completed_at, completion_pct, profile_json
		FROM sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	return s, err
}

// FindInProgress returns the live session for a (user, assessment)
// pair, or nil when none exists.
func (r *SessionRepo) FindInProgress(ctx context.Context, userID, assessmentID string) (*session.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, assessment_id, state, cultural_context,
		       started_at, completed_at, completion_pct, profile_json
		FROM sessions
		WHERE user_id = ? AND assessment_id = ? AND state = ?`,
		userID, assessmentID, string(session.StateInProgress))
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// ListByAssessment returns every session for an assessment, in any
// state, ordered by start time for stable output.
func (r *SessionRepo) ListByAssessment(ctx context.Context, assessmentID string) ([]*session.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, assessment_id, state, cultural_context,
		       started_at, completed_at, completion_pct, profile_json
		FROM sessions WHERE assessment_id = ?
		ORDER BY started_at, id`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []*session.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*session.Session, error) {
	var (
		s           session.Session
		state       string
		startedAt   string
		completedAt sql.NullString
		profileJSON sql.NullString
	)
	err := row.Scan(&s.ID, &s.UserID, &s.AssessmentID, &state, &s.CulturalContext,
		&startedAt, &completedAt, &s.CompletionPct, &profileJSON)
	if err != nil {
		return nil, err
	}

	s.State = session.State(state)
	if s.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		s.CompletedAt = &t
	}
	if profileJSON.Valid && profileJSON.String != "" {
		var p scoring.Profile
		if err := json.Unmarshal([]byte(profileJSON.String), &p); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		s.Profile = &p
	}
	return &s, nil
}
