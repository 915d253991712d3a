package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/jmartyn/giftwise/internal/apest"
	"github.com/jmartyn/giftwise/internal/catalog"
)

var now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func fv(v float64) *float64 { return &v }

func TestCheckScaleValue(t *testing.T) {
	cat := catalog.Builtin()
	qID := cat.Questions[0].ID

	tests := []struct {
		name    string
		sub     Submission
		wantErr bool
	}{
		{"in domain", Submission{QuestionID: qID, Value: fv(3)}, false},
		{"domain minimum", Submission{QuestionID: qID, Value: fv(1)}, false},
		{"domain maximum", Submission{QuestionID: qID, Value: fv(5)}, false},
		{"below domain", Submission{QuestionID: qID, Value: fv(0)}, true},
		{"above domain", Submission{QuestionID: qID, Value: fv(6)}, true},
		{"missing value", Submission{QuestionID: qID}, true},
		{"unknown question", Submission{QuestionID: "nope", Value: fv(3)}, true},
		{"skip", Submission{QuestionID: qID, Skipped: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Check(cat, "s1", tt.sub, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("error type %T, want *ValidationError", err)
				}
			}
		})
	}
}

func TestCheckBatchAllOrNothing(t *testing.T) {
	cat := catalog.Builtin()
	subs := []Submission{
		{QuestionID: cat.Questions[0].ID, Value: fv(4)},
		{QuestionID: cat.Questions[1].ID, Value: fv(99)}, // invalid
		{QuestionID: cat.Questions[2].ID, Value: fv(2)},
	}

	records, err := CheckBatch(cat, "s1", subs, now)
	if err == nil {
		t.Fatal("CheckBatch succeeded with an invalid submission")
	}
	if records != nil {
		t.Fatalf("CheckBatch returned %d records alongside an error", len(records))
	}
}

func TestPutIsIdempotentUpsert(t *testing.T) {
	cat := catalog.Builtin()
	l := New("s1")
	qID := cat.Questions[0].ID

	rec, err := Check(cat, "s1", Submission{QuestionID: qID, Value: fv(4)}, now)
	if err != nil {
		t.Fatal(err)
	}
	l.Put(rec)
	first := Completion(cat, l.Records())

	l.Put(rec)
	if l.Len() != 1 {
		t.Fatalf("ledger has %d records after duplicate Put, want 1", l.Len())
	}
	if got := Completion(cat, l.Records()); got != first {
		t.Errorf("completion drifted after identical resubmit: %g -> %g", first, got)
	}

	// Revisiting overwrites: last write wins.
	rec2, _ := Check(cat, "s1", Submission{QuestionID: qID, Value: fv(2)}, now)
	l.Put(rec2)
	if got, _ := l.Get(qID); *got.Value != 2 {
		t.Errorf("revisited answer = %g, want 2", *got.Value)
	}
	if l.Len() != 1 {
		t.Fatalf("upsert grew the ledger to %d records", l.Len())
	}
}

func TestCompletionAllOptionalCatalog(t *testing.T) {
	var qs []catalog.Question
	for i, d := range []string{"apostolic", "prophetic", "evangelistic", "shepherding", "teaching"} {
		qs = append(qs, catalog.Question{
			ID: d + "-1", Type: catalog.TypeScale, Dimension: apest.Dimension(d),
			Weight: 1, Required: false, OrderIndex: i + 1,
			Domain: catalog.ValueDomain{Min: 1, Max: 5},
		})
	}
	cat := catalog.New("optional", "Optional", "1.0.0", qs)
	if err := cat.Validate(); err != nil {
		t.Fatalf("all-optional catalog invalid: %v", err)
	}

	// Nothing required means nothing outstanding, answered or not.
	if got := Completion(cat, nil); got != 100 {
		t.Errorf("Completion with no answers = %g, want 100", got)
	}
	records := []Record{{QuestionID: "apostolic-1", Value: fv(4)}}
	if got := Completion(cat, records); got != 100 {
		t.Errorf("Completion with one answer = %g, want 100", got)
	}
}

func TestCompletionExcludesSkipped(t *testing.T) {
	cat := catalog.Builtin() // 25 required questions
	l := New("s1")

	// Answer 10, skip 5.
	for i := 0; i < 10; i++ {
		rec, err := Check(cat, "s1", Submission{QuestionID: cat.Questions[i].ID, Value: fv(3)}, now)
		if err != nil {
			t.Fatal(err)
		}
		l.Put(rec)
	}
	for i := 10; i < 15; i++ {
		rec, err := Check(cat, "s1", Submission{QuestionID: cat.Questions[i].ID, Skipped: true}, now)
		if err != nil {
			t.Fatal(err)
		}
		l.Put(rec)
	}

	if got := Completion(cat, l.Records()); got != 40 {
		t.Errorf("Completion = %g, want 40 (10 answered of 25 required)", got)
	}
}
