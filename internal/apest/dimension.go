// Package apest defines the five APEST gift dimensions and the static
// relationships between them. Everything here is fixed classification
// data owned by the scoring core, not user data.
package apest

import "fmt"

// Dimension is one of the five APEST gift dimensions.
type Dimension string

const (
	Apostolic    Dimension = "apostolic"
	Prophetic    Dimension = "prophetic"
	Evangelistic Dimension = "evangelistic"
	Shepherding  Dimension = "shepherding"
	Teaching     Dimension = "teaching"
)

// All returns the dimensions in canonical order. Tie-breaking and any
// iteration that must be deterministic uses this order.
func All() []Dimension {
	return []Dimension{
		Apostolic,
		Prophetic,
		Evangelistic,
		Shepherding,
		Teaching,
	}
}

// CanonicalIndex returns the position of d in the canonical ordering,
// or -1 for an unknown dimension.
func CanonicalIndex(d Dimension) int {
	for i, dim := range All() {
		if dim == d {
			return i
		}
	}
	return -1
}

// DisplayName returns a human-readable name for a dimension.
func DisplayName(d Dimension) string {
	switch d {
	case Apostolic:
		return "Apostolic"
	case Prophetic:
		return "Prophetic"
	case Evangelistic:
		return "Evangelistic"
	case Shepherding:
		return "Shepherding"
	case Teaching:
		return "Teaching"
	default:
		return string(d)
	}
}

// Parse converts a stored string back to a Dimension.
func Parse(s string) (Dimension, error) {
	d := Dimension(s)
	if CanonicalIndex(d) < 0 {
		return "", fmt.Errorf("unknown dimension %q", s)
	}
	return d, nil
}
