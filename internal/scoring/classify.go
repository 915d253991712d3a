package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/jmartyn/giftwise/internal/apest"
)

// classify fills Primary, Secondary, and Complementary. Dimensions with
// no scoreable answered questions are excluded. Ordering is fully
// deterministic: score descending, then within epsilon higher
// unweighted answered count, then canonical dimension order. Profiles
// are compared across users, so this rule must never depend on map
// iteration or input order.
func classify(p *Profile, epsilon float64) error {
	eligible := make([]apest.Dimension, 0, 5)
	for _, d := range apest.All() { // canonical order is the final tie-break
		if p.MaxPossible[d] > 0 {
			eligible = append(eligible, d)
		}
	}
	if len(eligible) == 0 {
		return fmt.Errorf("%w: no dimension has scoreable answered questions", ErrInsufficientData)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		sa, sb := p.EffectiveScore(a), p.EffectiveScore(b)
		if math.Abs(sa-sb) <= epsilon {
			if p.AnsweredCount[a] != p.AnsweredCount[b] {
				return p.AnsweredCount[a] > p.AnsweredCount[b]
			}
			return apest.CanonicalIndex(a) < apest.CanonicalIndex(b)
		}
		return sa > sb
	})

	p.Primary = eligible[0]
	if len(eligible) > 1 {
		p.Secondary = eligible[1]
	} else {
		// Degenerate single-dimension profile.
		p.Secondary = eligible[0]
	}
	p.Complementary = apest.Complementary(p.Primary, p.Secondary)
	return nil
}
