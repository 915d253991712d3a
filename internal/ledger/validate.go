package ledger

import (
	"fmt"
	"time"

	"github.com/jmartyn/giftwise/internal/catalog"
)

// ValidationError reports a bad submission. It is always the caller's
// fault and always recoverable by re-submitting a corrected answer.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %s: %s", e.QuestionID, e.Reason)
}

// Submission is one incoming answer before validation.
type Submission struct {
	QuestionID     string
	Value          *float64
	Text           string
	Skipped        bool
	ResponseTimeMs int
	Confidence     int
}

// Check validates a submission against the catalog and returns the
// record to store. Validation is shape-only; no derivation happens here.
func Check(cat *catalog.Catalog, sessionID string, sub Submission, now time.Time) (Record, error) {
	q := cat.Question(sub.QuestionID)
	if q == nil {
		return Record{}, &ValidationError{QuestionID: sub.QuestionID, Reason: "unknown question"}
	}

	rec := Record{
		SessionID:      sessionID,
		QuestionID:     sub.QuestionID,
		Skipped:        sub.Skipped,
		ResponseTimeMs: sub.ResponseTimeMs,
		Confidence:     sub.Confidence,
		UpdatedAt:      now,
	}

	if sub.Skipped {
		// A skip carries no answer payload.
		return rec, nil
	}

	switch q.Type {
	case catalog.TypeScale, catalog.TypeBinary:
		if sub.Value == nil {
			return Record{}, &ValidationError{QuestionID: sub.QuestionID, Reason: "numeric question answered without a value"}
		}
		if !q.Domain.Contains(*sub.Value) {
			return Record{}, &ValidationError{
				QuestionID: sub.QuestionID,
				Reason:     fmt.Sprintf("value %g outside domain [%g,%g]", *sub.Value, q.Domain.Min, q.Domain.Max),
			}
		}
		v := *sub.Value
		rec.Value = &v
	case catalog.TypeFreeText:
		if sub.Value != nil {
			return Record{}, &ValidationError{QuestionID: sub.QuestionID, Reason: "free-text question answered with a numeric value"}
		}
		if sub.Text == "" {
			return Record{}, &ValidationError{QuestionID: sub.QuestionID, Reason: "free-text question answered without text"}
		}
		rec.Text = sub.Text
	case catalog.TypeRanking:
		if sub.Text == "" {
			return Record{}, &ValidationError{QuestionID: sub.QuestionID, Reason: "ranking question answered without an ordering"}
		}
		rec.Text = sub.Text
	default:
		return Record{}, &ValidationError{QuestionID: sub.QuestionID, Reason: fmt.Sprintf("unsupported question type %q", q.Type)}
	}

	return rec, nil
}

// CheckBatch validates every submission before any is accepted. On the
// first failure the whole batch is rejected, so a partially-corrupt save
// can never happen.
func CheckBatch(cat *catalog.Catalog, sessionID string, subs []Submission, now time.Time) ([]Record, error) {
	records := make([]Record, 0, len(subs))
	for _, sub := range subs {
		rec, err := Check(cat, sessionID, sub, now)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
