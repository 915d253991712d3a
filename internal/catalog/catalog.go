package catalog

import (
	"fmt"
	"sort"

	"github.com/jmartyn/giftwise/internal/apest"
)

// ConfigurationError reports an authoring defect in a catalog. It is
// fatal: a catalog that fails validation must be fixed at authoring
// time, never tolerated at scoring time.
type ConfigurationError struct {
	AssessmentID string
	Reason       string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("catalog %s: %s", e.AssessmentID, e.Reason)
}

// Catalog is the full question set for one assessment version.
type Catalog struct {
	AssessmentID string
	Name         string
	Version      string // semver, "v" prefix optional in source documents
	Questions    []Question

	byID        map[string]*Question
	byDimension map[apest.Dimension][]*Question
}

// New builds a catalog with its lookup indices. Questions are kept in
// order-index order so iteration is stable.
func New(assessmentID, name, version string, questions []Question) *Catalog {
	qs := make([]Question, len(questions))
	copy(qs, questions)
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].OrderIndex < qs[j].OrderIndex })

	c := &Catalog{
		AssessmentID: assessmentID,
		Name:         name,
		Version:      version,
		Questions:    qs,
		byID:         make(map[string]*Question, len(qs)),
		byDimension:  make(map[apest.Dimension][]*Question),
	}
	for i := range c.Questions {
		q := &c.Questions[i]
		c.byID[q.ID] = q
		c.byDimension[q.Dimension] = append(c.byDimension[q.Dimension], q)
	}
	return c
}

// Question returns the catalog entry for id, or nil if absent.
func (c *Catalog) Question(id string) *Question {
	return c.byID[id]
}

// ForDimension returns the questions tagged with d in order-index order.
func (c *Catalog) ForDimension(d apest.Dimension) []*Question {
	return c.byDimension[d]
}

// RequiredCount returns the number of required questions.
func (c *Catalog) RequiredCount() int {
	n := 0
	for i := range c.Questions {
		if c.Questions[i].Required {
			n++
		}
	}
	return n
}

// Validate checks the catalog for authoring defects. It returns the
// first *ConfigurationError found, or nil for a well-formed catalog.
func (c *Catalog) Validate() error {
	if len(c.Questions) == 0 {
		return &ConfigurationError{AssessmentID: c.AssessmentID, Reason: "no questions configured"}
	}

	seen := make(map[string]bool, len(c.Questions))
	for i := range c.Questions {
		q := &c.Questions[i]
		if q.ID == "" {
			return &ConfigurationError{AssessmentID: c.AssessmentID, Reason: "question with empty id"}
		}
		if seen[q.ID] {
			return &ConfigurationError{
				AssessmentID: c.AssessmentID,
				Reason:       fmt.Sprintf("duplicate question id %q", q.ID),
			}
		}
		seen[q.ID] = true

		if apest.CanonicalIndex(q.Dimension) < 0 {
			return &ConfigurationError{
				AssessmentID: c.AssessmentID,
				Reason:       fmt.Sprintf("question %s: unknown dimension %q", q.ID, q.Dimension),
			}
		}
		if q.Weight <= 0 {
			return &ConfigurationError{
				AssessmentID: c.AssessmentID,
				Reason:       fmt.Sprintf("question %s: weight must be positive, got %g", q.ID, q.Weight),
			}
		}
		if q.Scoreable() && q.Domain.Max <= q.Domain.Min {
			return &ConfigurationError{
				AssessmentID: c.AssessmentID,
				Reason:       fmt.Sprintf("question %s: degenerate value domain [%g,%g]", q.ID, q.Domain.Min, q.Domain.Max),
			}
		}
	}

	// Every dimension needs at least one scoreable question, otherwise
	// classification can never include it and the instrument is broken.
	for _, d := range apest.All() {
		scoreable := 0
		for _, q := range c.byDimension[d] {
			if q.Scoreable() {
				scoreable++
			}
		}
		if scoreable == 0 {
			return &ConfigurationError{
				AssessmentID: c.AssessmentID,
				Reason:       fmt.Sprintf("dimension %s has no scoreable questions", d),
			}
		}
	}

	return nil
}
