package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmartyn/giftwise/internal/calibrate"
	"github.com/jmartyn/giftwise/internal/catalog"
	"github.com/jmartyn/giftwise/internal/ledger"
	"github.com/jmartyn/giftwise/internal/scoring"
)

// SessionRepo persists sessions. Complete must be a compare-and-swap on
// session state so a race between two completers resolves to exactly
// one stored profile.
type SessionRepo interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	FindInProgress(ctx context.Context, userID, assessmentID string) (*Session, error)
	ListByAssessment(ctx context.Context, assessmentID string) ([]*Session, error)

	// Complete atomically transitions s from InProgress to Completed,
	// persisting profile and timestamps in the same write. It returns
	// ErrAlreadyCompleted when the session is no longer InProgress.
	Complete(ctx context.Context, s *Session) error
}

// ResponseRepo persists the response ledger.
type ResponseRepo interface {
	UpsertAll(ctx context.Context, sessionID string, records []ledger.Record) error
	ListBySession(ctx context.Context, sessionID string) ([]ledger.Record, error)
}

// CatalogReader supplies a consistent question-catalog snapshot for an
// assessment. One scoring computation sees exactly one snapshot.
type CatalogReader interface {
	CatalogFor(assessmentID string) (*catalog.Catalog, error)
}

// Manager runs the session state machine. It is the only component that
// persists session state, and it does so only after the scoring engine
// has returned success.
type Manager struct {
	sessions  SessionRepo
	responses ResponseRepo
	catalogs  CatalogReader
	factors   calibrate.Source

	now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager wires a manager from its collaborators. factors may be nil
// when no cultural calibration is configured.
func NewManager(sessions SessionRepo, responses ResponseRepo, catalogs CatalogReader, factors calibrate.Source) *Manager {
	return &Manager{
		sessions:  sessions,
		responses: responses,
		catalogs:  catalogs,
		factors:   factors,
		now:       time.Now,
		locks:     make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing work on key, creating it on
// first use. Start keys on (user, assessment); everything else keys on
// session id. There is no global write lock.
func (m *Manager) lockFor(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

// Start opens a new InProgress session for the user and assessment.
// At most one InProgress session may exist per (user, assessment) pair;
// a second concurrent Start loses with ErrAlreadyInProgress.
func (m *Manager) Start(ctx context.Context, userID, assessmentID, culturalContext string) (*Session, error) {
	l := m.lockFor(userID + "\x00" + assessmentID)
	l.Lock()
	defer l.Unlock()

	existing, err := m.sessions.FindInProgress(ctx, userID, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("find in-progress session: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyInProgress
	}

	// A broken catalog halts session creation rather than surfacing at
	// scoring time.
	cat, err := m.catalogs.CatalogFor(assessmentID)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		ID:              uuid.New().String(),
		UserID:          userID,
		AssessmentID:    assessmentID,
		State:           StateInProgress,
		CulturalContext: culturalContext,
		StartedAt:       m.now(),
	}
	if err := m.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// SaveProgress validates and upserts a batch of responses, then
// recomputes the session's completion percentage. The batch is
// all-or-nothing: one invalid answer rejects the whole submission
// before anything is written. Identical resubmissions are idempotent.
func (m *Manager) SaveProgress(ctx context.Context, sessionID string, subs []ledger.Submission) (*Session, error) {
	l := m.lockFor(sessionID)
	l.Lock()
	defer l.Unlock()

	s, cat, err := m.loadInProgress(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	records, err := ledger.CheckBatch(cat, sessionID, subs, m.now())
	if err != nil {
		return nil, err
	}
	if err := m.responses.UpsertAll(ctx, sessionID, records); err != nil {
		return nil, fmt.Errorf("upsert responses: %w", err)
	}

	all, err := m.responses.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	s.CompletionPct = ledger.Completion(cat, all)
	if err := m.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// CompleteOptions controls the completion guards.
type CompleteOptions struct {
	// AllowPartial permits completion with required questions still
	// unanswered. The scoring engine's own insufficient-data floor
	// still applies.
	AllowPartial bool
}

// Complete runs the scoring engine over the full ledger and, on
// success, atomically fixes the session as Completed with its profile.
// Once completed, every further SaveProgress or Complete call fails
// with ErrAlreadyCompleted and the stored profile never changes.
func (m *Manager) Complete(ctx context.Context, sessionID string, opts CompleteOptions) (*Session, error) {
	l := m.lockFor(sessionID)
	l.Lock()
	defer l.Unlock()

	s, cat, err := m.loadInProgress(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	records, err := m.responses.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	completion := ledger.Completion(cat, records)
	if !opts.AllowPartial && completion < 100 {
		return nil, ErrIncompleteRequired
	}

	sopts := scoring.DefaultOptions()
	sopts.Adjustment = calibrate.FactorsFor(m.factors, s.CulturalContext)
	profile, err := scoring.Score(cat, records, sopts)
	if err != nil {
		// No partial side effects: the session is untouched on any
		// engine failure, including insufficient data.
		return nil, err
	}

	completedAt := m.now()
	s.State = StateCompleted
	s.CompletedAt = &completedAt
	s.CompletionPct = completion
	s.Profile = profile

	if err := m.sessions.Complete(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns a session by id.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	return m.sessions.Get(ctx, sessionID)
}

// loadInProgress fetches a session and enforces the InProgress guard
// shared by SaveProgress and Complete.
func (m *Manager) loadInProgress(ctx context.Context, sessionID string) (*Session, *catalog.Catalog, error) {
	s, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	switch s.State {
	case StateCompleted:
		return nil, nil, ErrAlreadyCompleted
	case StateInProgress:
	default:
		return nil, nil, ErrInvalidSession
	}

	cat, err := m.catalogs.CatalogFor(s.AssessmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	return s, cat, nil
}
