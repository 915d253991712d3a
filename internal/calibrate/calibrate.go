// Package calibrate supplies cultural adjustment factors: externally
// versioned multipliers correcting for known response-style bias in a
// cultural context. Absence of a factor means "no adjustment", never an
// error.
package calibrate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jmartyn/giftwise/internal/apest"
)

// Source looks up the adjustment factor for a cultural context and
// dimension. ok is false when no factor is configured.
type Source interface {
	Factor(culturalContext string, d apest.Dimension) (factor float64, ok bool)
}

// ContextFactors holds the factors for one cultural context: an optional
// context-wide global factor plus per-dimension overrides.
type ContextFactors struct {
	Global     float64                     `json:"global,omitempty"`
	Dimensions map[apest.Dimension]float64 `json:"dimensions,omitempty"`
}

// Table is a static, injectable Source. The zero value adjusts nothing.
type Table struct {
	contexts map[string]ContextFactors
}

// NewTable builds a table from per-context factors.
func NewTable(contexts map[string]ContextFactors) *Table {
	return &Table{contexts: contexts}
}

// LoadTable reads a factor table from a JSON document keyed by cultural
// context.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration table: %w", err)
	}
	var contexts map[string]ContextFactors
	if err := json.Unmarshal(raw, &contexts); err != nil {
		return nil, fmt.Errorf("decode calibration table: %w", err)
	}
	return NewTable(contexts), nil
}

// Factor implements Source. Per-dimension overrides win over the
// context's global factor.
func (t *Table) Factor(culturalContext string, d apest.Dimension) (float64, bool) {
	if t == nil || t.contexts == nil {
		return 0, false
	}
	cf, ok := t.contexts[culturalContext]
	if !ok {
		return 0, false
	}
	if f, ok := cf.Dimensions[d]; ok {
		return f, true
	}
	if cf.Global != 0 {
		return cf.Global, true
	}
	return 0, false
}

// FactorsFor gathers all configured factors for a context into the
// per-dimension map the scoring engine consumes. Nil when the context
// has no calibration.
func FactorsFor(src Source, culturalContext string) map[apest.Dimension]float64 {
	if src == nil || culturalContext == "" {
		return nil
	}
	perDim := make(map[apest.Dimension]float64)
	for _, d := range apest.All() {
		if f, ok := src.Factor(culturalContext, d); ok {
			perDim[d] = f
		}
	}
	if len(perDim) == 0 {
		return nil
	}
	return perDim
}
