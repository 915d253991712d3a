package catalog

import (
	"testing"

	"github.com/jmartyn/giftwise/internal/apest"
)

func scaleQuestion(id string, d apest.Dimension, order int) Question {
	return Question{
		ID:         id,
		Type:       TypeScale,
		Dimension:  d,
		Weight:     1,
		Required:   true,
		OrderIndex: order,
		Domain:     ValueDomain{Min: 1, Max: 5},
	}
}

// minimalQuestions returns one scoreable question per dimension.
func minimalQuestions() []Question {
	var qs []Question
	for i, d := range apest.All() {
		qs = append(qs, scaleQuestion(string(d)+"-1", d, i+1))
	}
	return qs
}

func TestValidateOK(t *testing.T) {
	c := New("a1", "Test", "1.0.0", minimalQuestions())
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Question) []Question
	}{
		{"empty catalog", func(qs []Question) []Question { return nil }},
		{"duplicate id", func(qs []Question) []Question {
			qs[1].ID = qs[0].ID
			return qs
		}},
		{"unknown dimension", func(qs []Question) []Question {
			qs[0].Dimension = "wisdom"
			return qs
		}},
		{"zero weight", func(qs []Question) []Question {
			qs[0].Weight = 0
			return qs
		}},
		{"degenerate domain", func(qs []Question) []Question {
			qs[0].Domain = ValueDomain{Min: 5, Max: 5}
			return qs
		}},
		{"dimension missing scoreable questions", func(qs []Question) []Question {
			qs[0].Type = TypeFreeText
			return qs
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("a1", "Test", "1.0.0", tt.mutate(minimalQuestions()))
			err := c.Validate()
			if err == nil {
				t.Fatal("Validate succeeded, want ConfigurationError")
			}
			if _, ok := err.(*ConfigurationError); !ok {
				t.Fatalf("Validate error type %T, want *ConfigurationError", err)
			}
		})
	}
}

func TestBuiltinIsValid(t *testing.T) {
	c := Builtin()
	if err := c.Validate(); err != nil {
		t.Fatalf("builtin catalog invalid: %v", err)
	}
	if len(c.Questions) != 25 {
		t.Fatalf("builtin catalog has %d questions, want 25", len(c.Questions))
	}
	for _, d := range apest.All() {
		if got := len(c.ForDimension(d)); got != 5 {
			t.Errorf("dimension %s has %d questions, want 5", d, got)
		}
	}
	if c.RequiredCount() != 25 {
		t.Errorf("RequiredCount = %d, want 25", c.RequiredCount())
	}
}

func TestReverseScoredMidpoint(t *testing.T) {
	d := ValueDomain{Min: 1, Max: 5}
	if got := d.Midpoint(); got != 3 {
		t.Errorf("Midpoint = %g, want 3", got)
	}
}
