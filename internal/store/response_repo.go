package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmartyn/giftwise/internal/ledger"
)

// ResponseRepo is the SQLite implementation of session.ResponseRepo.
// Responses are upserted by (session, question); a revisit overwrites
// the prior row.
type ResponseRepo struct {
	db *sql.DB
}

// UpsertAll writes a validated batch inside one transaction, so a batch
// is all-or-nothing at the storage layer too.
func (r *ResponseRepo) UpsertAll(ctx context.Context, sessionID string, records []ledger.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO responses (session_id, question_id, value, text, skipped, response_time_ms, confidence, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, question_id) DO UPDATE SET
			value = excluded.value,
			text = excluded.text,
			skipped = excluded.skipped,
			response_time_ms = excluded.response_time_ms,
			confidence = excluded.confidence,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var value any
		if rec.Value != nil {
			value = *rec.Value
		}
		_, err := stmt.ExecContext(ctx, sessionID, rec.QuestionID, value, rec.Text,
			boolToInt(rec.Skipped), rec.ResponseTimeMs, rec.Confidence,
			rec.UpdatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("upsert response %s: %w", rec.QuestionID, err)
		}
	}
	return tx.Commit()
}

// ListBySession returns every response for a session in question-id
// order.
func (r *ResponseRepo) ListBySession(ctx context.Context, sessionID string) ([]ledger.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT question_id, value, text, skipped, response_time_ms, confidence, updated_at
		FROM responses WHERE session_id = ?
		ORDER BY question_id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var out []ledger.Record
	for rows.Next() {
		var (
			rec       ledger.Record
			value     sql.NullFloat64
			skipped   int
			updatedAt string
		)
		if err := rows.Scan(&rec.QuestionID, &value, &rec.Text, &skipped,
			&rec.ResponseTimeMs, &rec.Confidence, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		rec.SessionID = sessionID
		rec.Skipped = skipped != 0
		if value.Valid {
			v := value.Float64
			rec.Value = &v
		}
		if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
