// Package ledger accumulates a session's answers. Records are upserted
// by (session, question), so revisiting a question overwrites the prior
// answer, and are never deleted.
package ledger

import (
	"sort"
	"time"

	"github.com/jmartyn/giftwise/internal/catalog"
)

// Record is one live answer to one question within a session.
type Record struct {
	SessionID      string
	QuestionID     string
	Value          *float64 // nil when skipped or non-numeric
	Text           string   // free-text answers only
	Skipped        bool
	ResponseTimeMs int // 0 when not reported
	Confidence     int // optional 1-5 self-report, 0 when absent
	UpdatedAt      time.Time
}

// Answered reports whether the record carries a usable answer. Free-text
// answers count as answered for completion purposes even though they
// never contribute to numeric scores.
func (r Record) Answered() bool {
	return !r.Skipped && (r.Value != nil || r.Text != "")
}

// Ledger is the in-memory view of one session's records.
type Ledger struct {
	sessionID string
	records   map[string]Record
}

// New creates an empty ledger for a session.
func New(sessionID string) *Ledger {
	return &Ledger{
		sessionID: sessionID,
		records:   make(map[string]Record),
	}
}

// FromRecords rebuilds a ledger from persisted records.
func FromRecords(sessionID string, records []Record) *Ledger {
	l := New(sessionID)
	for _, r := range records {
		l.records[r.QuestionID] = r
	}
	return l
}

// Put upserts a record, overwriting any prior answer to the same
// question. Last write wins.
func (l *Ledger) Put(r Record) {
	r.SessionID = l.sessionID
	l.records[r.QuestionID] = r
}

// Get returns the live record for a question, if any.
func (l *Ledger) Get(questionID string) (Record, bool) {
	r, ok := l.records[questionID]
	return r, ok
}

// Len returns the number of questions with a live record.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a snapshot of all records in question-id order, so
// downstream computation over the ledger is deterministic.
func (l *Ledger) Records() []Record {
	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// Completion returns the required-question completion percentage for
// records against cat: answered required / total required * 100. Skipped
// answers count toward the denominator but never the numerator. A
// catalog with no required questions is always 100% complete: nothing
// required means nothing outstanding. The value is always derived from
// the records, never cached.
func Completion(cat *catalog.Catalog, records []Record) float64 {
	total := cat.RequiredCount()
	if total == 0 {
		return 100
	}

	byQuestion := make(map[string]Record, len(records))
	for _, r := range records {
		byQuestion[r.QuestionID] = r
	}

	answered := 0
	for i := range cat.Questions {
		q := &cat.Questions[i]
		if !q.Required {
			continue
		}
		if r, ok := byQuestion[q.ID]; ok && r.Answered() {
			answered++
		}
	}
	return float64(answered) / float64(total) * 100
}
