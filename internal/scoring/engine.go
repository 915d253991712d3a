package scoring

import (
	"errors"
	"fmt"

	"github.com/jmartyn/giftwise/internal/apest"
	"github.com/jmartyn/giftwise/internal/catalog"
	"github.com/jmartyn/giftwise/internal/ledger"
)

// ErrInsufficientData is returned when too few required questions were
// answered to produce a profile. The caller decides whether that blocks
// completion or completes with a warning.
var ErrInsufficientData = errors.New("insufficient data to score assessment")

// Options tunes a single scoring run.
type Options struct {
	// Adjustment holds per-dimension cultural calibration factors.
	// A missing dimension falls back to GlobalFactor.
	Adjustment map[apest.Dimension]float64

	// GlobalFactor is the context-wide fallback factor. Zero means no
	// adjustment for dimensions without an explicit factor.
	GlobalFactor float64

	// MinAnswered is the minimum fraction of required questions that
	// must be answered before scoring proceeds. Zero means no floor.
	// Callers wanting the standard floor start from DefaultOptions.
	MinAnswered float64

	// Epsilon is the tolerance within which two dimension scores count
	// as tied during classification. Zero means exact equality only.
	Epsilon float64
}

// DefaultOptions returns the standard scoring configuration.
func DefaultOptions() Options {
	return Options{
		MinAnswered: 0.5,
		Epsilon:     0.5,
	}
}

// Score computes the profile for records against cat. It never mutates
// its inputs, so a caller may recompute or retry freely; persistence is
// someone else's job.
func Score(cat *catalog.Catalog, records []ledger.Record, opts Options) (*Profile, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	completion := ledger.Completion(cat, records)
	if completion/100 < opts.MinAnswered {
		return nil, fmt.Errorf("%w: %.0f%% of required questions answered, need %.0f%%",
			ErrInsufficientData, completion, opts.MinAnswered*100)
	}

	byQuestion := make(map[string]ledger.Record, len(records))
	for _, r := range records {
		byQuestion[r.QuestionID] = r
	}

	p := &Profile{
		RawSums:       make(map[apest.Dimension]float64),
		MaxPossible:   make(map[apest.Dimension]float64),
		Normalized:    make(map[apest.Dimension]float64),
		Adjusted:      make(map[apest.Dimension]float64),
		AnsweredCount: make(map[apest.Dimension]int),
		CompletionPct: completion,
	}

	// Dimension sums over the answered scoreable set. The max-possible
	// denominator covers the same question set, so a partially-skipped
	// run still normalizes against what was actually answerable.
	itemScores := make(map[apest.Dimension][]float64)
	for _, d := range apest.All() {
		for _, q := range cat.ForDimension(d) {
			if !q.Scoreable() {
				continue
			}
			r, ok := byQuestion[q.ID]
			if !ok || !r.Answered() || r.Value == nil {
				continue
			}
			score := itemScore(q, *r.Value)
			p.RawSums[d] += q.Weight * score
			p.MaxPossible[d] += q.Weight * q.Domain.Max
			p.AnsweredCount[d]++
			itemScores[d] = append(itemScores[d], unitScore(q, score))
		}
	}

	for _, d := range apest.All() {
		if p.MaxPossible[d] == 0 {
			p.Insufficient = append(p.Insufficient, d)
			continue
		}
		p.Normalized[d] = clamp(100*p.RawSums[d]/p.MaxPossible[d], 0, 100)
		p.TotalScore += p.RawSums[d]
		p.TotalMax += p.MaxPossible[d]
	}

	applyAdjustment(p, opts)

	if err := classify(p, opts.Epsilon); err != nil {
		return nil, err
	}

	p.Consistency = consistency(itemScores, p.AnsweredCount)
	p.Confidence = confidence(p.Consistency, completion)

	return p, nil
}

// itemScore returns the question's raw score for an answer value,
// reflecting reverse-scored items around the domain midpoint.
func itemScore(q *catalog.Question, value float64) float64 {
	if q.ReverseScored {
		return q.Domain.Min + q.Domain.Max - value
	}
	return value
}

// unitScore rescales a raw item score into [0,1] for the consistency
// statistic, so items with different domains compare fairly.
func unitScore(q *catalog.Question, score float64) float64 {
	span := q.Domain.Max - q.Domain.Min
	if span == 0 {
		return 0
	}
	return (score - q.Domain.Min) / span
}

// applyAdjustment fills Adjusted from Normalized and the calibration
// factors. Each dimension is adjusted independently; no cross-dimension
// re-normalization happens, so comparability across different factors is
// deliberately not promised.
func applyAdjustment(p *Profile, opts Options) {
	hasFactors := len(opts.Adjustment) > 0 || opts.GlobalFactor != 0
	for _, d := range apest.All() {
		if p.MaxPossible[d] == 0 {
			continue
		}
		factor, ok := opts.Adjustment[d]
		if !ok {
			factor = opts.GlobalFactor
		}
		if factor == 0 {
			p.Adjusted[d] = p.Normalized[d]
			continue
		}
		p.Adjusted[d] = clamp(p.Normalized[d]*factor, 0, 100)
	}
	p.AdjustmentApplied = hasFactors
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
