package stats

import (
	"math"
	"testing"

	"github.com/jmartyn/giftwise/internal/apest"
	"github.com/jmartyn/giftwise/internal/scoring"
	"github.com/jmartyn/giftwise/internal/session"
)

func completedSession(assessmentID string, primary apest.Dimension, scores map[apest.Dimension]float64) *session.Session {
	p := &scoring.Profile{
		Normalized:  make(map[apest.Dimension]float64),
		Adjusted:    make(map[apest.Dimension]float64),
		MaxPossible: make(map[apest.Dimension]float64),
		Primary:     primary,
	}
	for d, v := range scores {
		p.Normalized[d] = v
		p.Adjusted[d] = v
		p.MaxPossible[d] = 25
	}
	return &session.Session{
		ID:           "s-" + string(primary),
		AssessmentID: assessmentID,
		State:        session.StateCompleted,
		Profile:      p,
	}
}

func TestAggregateCounts(t *testing.T) {
	sessions := []*session.Session{
		completedSession("apest-standard", apest.Teaching, map[apest.Dimension]float64{
			apest.Teaching: 90, apest.Shepherding: 70,
		}),
		completedSession("apest-standard", apest.Teaching, map[apest.Dimension]float64{
			apest.Teaching: 70, apest.Shepherding: 50,
		}),
		{ID: "open", AssessmentID: "apest-standard", State: session.StateInProgress},
	}
	sum := Aggregate("apest-standard", sessions)

	if sum.Started != 3 || sum.Completed != 2 {
		t.Fatalf("counts = %d/%d, want 3/2", sum.Started, sum.Completed)
	}
	if got, want := sum.CompletionRate, 2.0/3.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("completion rate = %v, want %v", got, want)
	}
	if got := sum.MeanScore[apest.Teaching]; got != 80 {
		t.Fatalf("mean teaching = %v, want 80", got)
	}
	if got := sum.MeanScore[apest.Shepherding]; got != 60 {
		t.Fatalf("mean shepherding = %v, want 60", got)
	}
	if got := sum.GiftDistribution[apest.Teaching]; got != 2 {
		t.Fatalf("gift distribution teaching = %d, want 2", got)
	}
}

func TestOnlyCompletedContributeScores(t *testing.T) {
	a := New("apest-standard")
	a.Add(&session.Session{ID: "x", AssessmentID: "apest-standard", State: session.StateInProgress})
	a.Add(&session.Session{ID: "y", AssessmentID: "other", State: session.StateCompleted})

	sum := a.Summary()
	if sum.Started != 1 || sum.Completed != 0 {
		t.Fatalf("counts = %d/%d, want 1/0", sum.Started, sum.Completed)
	}
	if len(sum.MeanScore) != 0 {
		t.Fatalf("mean scores from incomplete sessions: %v", sum.MeanScore)
	}
}

func TestHistogramBuckets(t *testing.T) {
	a := New("apest-standard")
	for _, score := range []float64{0, 9.9, 10, 55, 99.9, 100} {
		a.Add(completedSession("apest-standard", apest.Apostolic, map[apest.Dimension]float64{
			apest.Apostolic: score,
		}))
	}
	h := a.Summary().Histogram[apest.Apostolic]

	want := [HistogramBuckets]int{0: 2, 1: 1, 5: 1, 9: 2}
	if h != want {
		t.Fatalf("histogram = %v, want %v", h, want)
	}
}

func TestMergeAgreesWithFullRecompute(t *testing.T) {
	sessions := []*session.Session{
		completedSession("apest-standard", apest.Prophetic, map[apest.Dimension]float64{
			apest.Prophetic: 88, apest.Apostolic: 44,
		}),
		completedSession("apest-standard", apest.Apostolic, map[apest.Dimension]float64{
			apest.Prophetic: 30, apest.Apostolic: 92,
		}),
		completedSession("apest-standard", apest.Evangelistic, map[apest.Dimension]float64{
			apest.Evangelistic: 77,
		}),
		{ID: "open", AssessmentID: "apest-standard", State: session.StateInProgress},
	}

	full := Aggregate("apest-standard", sessions)

	left, right := New("apest-standard"), New("apest-standard")
	left.Add(sessions[0])
	left.Add(sessions[3])
	right.Add(sessions[1])
	right.Add(sessions[2])
	left.Merge(right)
	merged := left.Summary()

	if merged.Started != full.Started || merged.Completed != full.Completed {
		t.Fatalf("counts diverge: merged %d/%d, full %d/%d",
			merged.Started, merged.Completed, full.Started, full.Completed)
	}
	for _, d := range apest.All() {
		if math.Abs(merged.MeanScore[d]-full.MeanScore[d]) > 1e-9 {
			t.Fatalf("%s mean diverges: merged %v, full %v", d, merged.MeanScore[d], full.MeanScore[d])
		}
		if merged.Histogram[d] != full.Histogram[d] {
			t.Fatalf("%s histogram diverges", d)
		}
		if merged.GiftDistribution[d] != full.GiftDistribution[d] {
			t.Fatalf("%s gift count diverges", d)
		}
	}
}

func TestMergeRejectsForeignAccumulator(t *testing.T) {
	a := New("apest-standard")
	b := New("other")
	b.Add(completedSession("other", apest.Teaching, map[apest.Dimension]float64{apest.Teaching: 80}))
	a.Merge(b)
	if sum := a.Summary(); sum.Started != 0 {
		t.Fatalf("foreign merge leaked sessions: %+v", sum)
	}
}
