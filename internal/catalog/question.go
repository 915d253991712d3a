// Package catalog holds the question definitions an assessment is scored
// against. Catalogs are authored externally and are read-only inputs at
// scoring time.
package catalog

import "github.com/jmartyn/giftwise/internal/apest"

// QuestionType describes how a question is answered.
type QuestionType string

const (
	TypeScale    QuestionType = "scale"    // Likert-style numeric response
	TypeBinary   QuestionType = "binary"   // two-valued numeric response
	TypeRanking  QuestionType = "ranking"  // ordering task, not numerically scored
	TypeFreeText QuestionType = "freetext" // prose response, never scored
)

// ValueDomain is the inclusive numeric range of valid answers for a
// scale or binary question.
type ValueDomain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Midpoint returns the reflection point used for reverse scoring.
func (v ValueDomain) Midpoint() float64 {
	return (v.Min + v.Max) / 2
}

// Contains reports whether value falls inside the domain.
func (v ValueDomain) Contains(value float64) bool {
	return value >= v.Min && value <= v.Max
}

// Question is a single catalog entry.
type Question struct {
	ID            string          `json:"id"`
	Text          string          `json:"text"`
	Type          QuestionType    `json:"type"`
	Dimension     apest.Dimension `json:"dimension"`
	Weight        float64         `json:"weight"`
	ReverseScored bool            `json:"reverseScored"`
	Required      bool            `json:"required"`
	OrderIndex    int             `json:"orderIndex"`
	Domain        ValueDomain     `json:"domain"`
}

// Scoreable reports whether answers to the question contribute to
// numeric dimension scores. Ranking and free-text questions collect
// data but never feed the scoring math.
func (q Question) Scoreable() bool {
	return q.Type == TypeScale || q.Type == TypeBinary
}
