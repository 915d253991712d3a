// Package stats reduces completed session snapshots into population
// statistics. The reduction is associative and commutative, so folding
// new completions into a running accumulator and recomputing from
// scratch yield identical summaries for the same input set.
package stats

import (
	"github.com/jmartyn/giftwise/internal/apest"
	"github.com/jmartyn/giftwise/internal/session"
)

// HistogramBuckets is the number of 10-point score buckets per
// dimension. Scores of exactly 100 land in the top bucket.
const HistogramBuckets = 10

// Accumulator folds sessions into partial sums. The zero value is
// ready to use via New; accumulators for disjoint session sets may be
// merged in any order.
type Accumulator struct {
	assessmentID string
	started      int
	completed    int

	scoreSum   map[apest.Dimension]float64
	scoreCount map[apest.Dimension]int
	histogram  map[apest.Dimension]*[HistogramBuckets]int
	primary    map[apest.Dimension]int
}

// New creates an empty accumulator for one assessment.
func New(assessmentID string) *Accumulator {
	return &Accumulator{
		assessmentID: assessmentID,
		scoreSum:     make(map[apest.Dimension]float64),
		scoreCount:   make(map[apest.Dimension]int),
		histogram:    make(map[apest.Dimension]*[HistogramBuckets]int),
		primary:      make(map[apest.Dimension]int),
	}
}

// Add folds one session in. Sessions in any state are tolerated: every
// session counts toward the completion rate, but only Completed
// sessions with a profile contribute to score statistics.
func (a *Accumulator) Add(s *session.Session) {
	if s == nil || s.AssessmentID != a.assessmentID {
		return
	}
	a.started++
	if s.State != session.StateCompleted || s.Profile == nil {
		return
	}
	a.completed++

	p := s.Profile
	for _, d := range apest.All() {
		if p.MaxPossible[d] == 0 {
			continue // insufficient data, no score to count
		}
		score := p.EffectiveScore(d)
		a.scoreSum[d] += score
		a.scoreCount[d]++

		h := a.histogram[d]
		if h == nil {
			h = &[HistogramBuckets]int{}
			a.histogram[d] = h
		}
		h[bucket(score)]++
	}
	a.primary[p.Primary]++
}

// Merge folds another accumulator for the same assessment into this
// one. The other accumulator is left untouched.
func (a *Accumulator) Merge(b *Accumulator) {
	if b == nil || b.assessmentID != a.assessmentID {
		return
	}
	a.started += b.started
	a.completed += b.completed
	for _, d := range apest.All() {
		a.scoreSum[d] += b.scoreSum[d]
		a.scoreCount[d] += b.scoreCount[d]
		if bh := b.histogram[d]; bh != nil {
			h := a.histogram[d]
			if h == nil {
				h = &[HistogramBuckets]int{}
				a.histogram[d] = h
			}
			for i := range bh {
				h[i] += bh[i]
			}
		}
		a.primary[d] += b.primary[d]
	}
}

// Summary is the finalized statistics view.
type Summary struct {
	AssessmentID   string
	Started        int
	Completed      int
	CompletionRate float64 // completed / started, 0 when nothing started

	// MeanScore averages the effective (adjusted when applied) score of
	// each dimension across completed sessions that scored it.
	MeanScore map[apest.Dimension]float64

	// Histogram counts completed sessions per 10-point score bucket.
	Histogram map[apest.Dimension][HistogramBuckets]int

	// GiftDistribution counts completed sessions by primary gift.
	GiftDistribution map[apest.Dimension]int
}

// Summary finalizes the accumulated state. The accumulator remains
// usable; further Adds refine later summaries.
func (a *Accumulator) Summary() Summary {
	s := Summary{
		AssessmentID:     a.assessmentID,
		Started:          a.started,
		Completed:        a.completed,
		MeanScore:        make(map[apest.Dimension]float64),
		Histogram:        make(map[apest.Dimension][HistogramBuckets]int),
		GiftDistribution: make(map[apest.Dimension]int),
	}
	if a.started > 0 {
		s.CompletionRate = float64(a.completed) / float64(a.started)
	}
	for _, d := range apest.All() {
		if n := a.scoreCount[d]; n > 0 {
			s.MeanScore[d] = a.scoreSum[d] / float64(n)
		}
		if h := a.histogram[d]; h != nil {
			s.Histogram[d] = *h
		}
		if n := a.primary[d]; n > 0 {
			s.GiftDistribution[d] = n
		}
	}
	return s
}

// Aggregate is the one-shot reduction over a session snapshot.
func Aggregate(assessmentID string, sessions []*session.Session) Summary {
	a := New(assessmentID)
	for _, s := range sessions {
		a.Add(s)
	}
	return a.Summary()
}

func bucket(score float64) int {
	b := int(score / 10)
	if b >= HistogramBuckets {
		b = HistogramBuckets - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}
