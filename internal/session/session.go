// Package session governs one user's attempt at one assessment: the
// NotStarted -> InProgress -> Completed state machine, the guards on
// when responses may be written, and the single point where a score
// profile is computed and fixed.
package session

import (
	"errors"
	"time"

	"github.com/jmartyn/giftwise/internal/scoring"
)

// State is a session's lifecycle state. Completed is terminal.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

var (
	// ErrAlreadyInProgress means the user already has a live session
	// for this assessment; at most one is allowed per pair.
	ErrAlreadyInProgress = errors.New("an assessment session is already in progress")

	// ErrAlreadyCompleted means the session was submitted; its profile
	// is permanently fixed and no further writes are accepted.
	ErrAlreadyCompleted = errors.New("this assessment was already submitted")

	// ErrInvalidSession means the session is not in a state that
	// accepts the attempted operation.
	ErrInvalidSession = errors.New("session is not accepting responses")

	// ErrIncompleteRequired means required questions remain unanswered
	// and the caller did not allow partial completion.
	ErrIncompleteRequired = errors.New("required questions remain unanswered")

	// ErrNotFound means no session exists with the given id.
	ErrNotFound = errors.New("session not found")
)

// Session is one attempt by one user at one assessment.
type Session struct {
	ID              string
	UserID          string
	AssessmentID    string
	State           State
	CulturalContext string
	StartedAt       time.Time
	CompletedAt     *time.Time
	CompletionPct   float64

	// Profile is nil until the session completes, then immutable.
	Profile *scoring.Profile
}
