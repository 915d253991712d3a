// Package scoring turns a response set and its catalog into a score
// profile. Everything here is pure computation: no stores, no clocks,
// no side effects, and identical inputs always produce identical output.
package scoring

import (
	"fmt"

	"github.com/jmartyn/giftwise/internal/apest"
)

// Profile is the finalized, immutable scoring result for one session.
type Profile struct {
	RawSums     map[apest.Dimension]float64 `json:"rawSums"`
	MaxPossible map[apest.Dimension]float64 `json:"maxPossible"`
	Normalized  map[apest.Dimension]float64 `json:"normalized"`
	Adjusted    map[apest.Dimension]float64 `json:"adjusted"`

	// AnsweredCount is the unweighted answered-question count per
	// dimension, used by the tie-break rule.
	AnsweredCount map[apest.Dimension]int `json:"answeredCount"`

	// Insufficient lists dimensions with no scoreable answered
	// questions; they are excluded from classification.
	Insufficient []apest.Dimension `json:"insufficient,omitempty"`

	Primary       apest.Dimension   `json:"primary"`
	Secondary     apest.Dimension   `json:"secondary"`
	Complementary []apest.Dimension `json:"complementary"`

	Consistency   float64 `json:"consistency"`   // 0-1 internal consistency
	Confidence    float64 `json:"confidence"`    // 0-1, consistency x completeness
	CompletionPct float64 `json:"completionPct"` // 0-100

	TotalScore float64 `json:"totalScore"`
	TotalMax   float64 `json:"totalMax"`

	AdjustmentApplied bool `json:"adjustmentApplied"`
}

// EffectiveScore returns the score classification ran on for d: the
// adjusted score when an adjustment was applied, otherwise normalized.
func (p *Profile) EffectiveScore(d apest.Dimension) float64 {
	if p.AdjustmentApplied {
		return p.Adjusted[d]
	}
	return p.Normalized[d]
}

// InsightSummary describes the profile's shape in one or two sentences.
// A spread above 20 points between the strongest and weakest scored
// dimension reads as specialization; anything tighter reads as balance.
func (p *Profile) InsightSummary() string {
	high, low := -1.0, 101.0
	for _, d := range apest.All() {
		if p.MaxPossible[d] == 0 {
			continue
		}
		s := p.EffectiveScore(d)
		if s > high {
			high = s
		}
		if s < low {
			low = s
		}
	}

	head := fmt.Sprintf("Primary gift %s, secondary %s.",
		apest.DisplayName(p.Primary), apest.DisplayName(p.Secondary))
	if high-low > 20 {
		return head + " The profile is strongly specialized; partnering with complementary gifts will round it out."
	}
	return head + " The profile is relatively balanced across dimensions."
}
