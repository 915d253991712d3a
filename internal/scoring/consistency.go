package scoring

import (
	"math"

	"github.com/jmartyn/giftwise/internal/apest"
)

// maxUnitStddev is the largest population standard deviation a set of
// values in [0,1] can have (half the mass at each extreme).
const maxUnitStddev = 0.5

// consistency computes the overall internal-consistency statistic: per
// dimension, 1 - stddev(unit item scores)/maxUnitStddev clamped to
// [0,1]; overall, the answered-count-weighted mean across dimensions.
// A dimension with fewer than two answered items cannot disagree with
// itself and counts as fully consistent.
func consistency(itemScores map[apest.Dimension][]float64, answered map[apest.Dimension]int) float64 {
	var weighted, totalWeight float64
	for _, d := range apest.All() {
		n := answered[d]
		if n == 0 {
			continue
		}
		weighted += float64(n) * dimensionConsistency(itemScores[d])
		totalWeight += float64(n)
	}
	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}

func dimensionConsistency(scores []float64) float64 {
	if len(scores) < 2 {
		return 1
	}
	return clamp(1-stddev(scores)/maxUnitStddev, 0, 1)
}

// stddev is the population standard deviation.
func stddev(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// confidence combines internal consistency with completeness as a
// geometric mean, so a run that is incomplete or internally inconsistent
// is flagged low-confidence instead of silently looking authoritative.
func confidence(consistency, completionPct float64) float64 {
	return math.Sqrt(consistency * completionPct / 100)
}
