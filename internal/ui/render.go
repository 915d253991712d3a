// Package ui renders profiles and statistics for terminal output.
package ui

import (
	"fmt"
	"strings"

	"github.com/jmartyn/giftwise/internal/apest"
	"github.com/jmartyn/giftwise/internal/scoring"
	"github.com/jmartyn/giftwise/internal/stats"
	"github.com/jmartyn/giftwise/internal/ui/theme"
)

const barWidth = 30

// ScoreBar renders a labeled 0-100 horizontal bar.
func ScoreBar(label string, score float64) string {
	filled := int(score / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := theme.BarFilled.Render(strings.Repeat("█", filled)) +
		theme.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %s %5.1f", theme.Label.Render(label), bar, score)
}

// RenderProfile renders a completed profile as a bordered card.
func RenderProfile(p *scoring.Profile) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("APEST Profile") + "\n\n")
	for _, d := range apest.All() {
		if p.MaxPossible[d] == 0 {
			b.WriteString(fmt.Sprintf("%s %s\n",
				theme.Label.Render(apest.DisplayName(d)),
				theme.Hint.Render("insufficient data")))
			continue
		}
		b.WriteString(ScoreBar(apest.DisplayName(d), p.EffectiveScore(d)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Label.Render("Primary") + " " + theme.Highlight.Render(apest.DisplayName(p.Primary)) + "\n")
	b.WriteString(theme.Label.Render("Secondary") + " " + theme.Body.Render(apest.DisplayName(p.Secondary)) + "\n")

	comps := make([]string, 0, len(p.Complementary))
	for _, d := range p.Complementary {
		comps = append(comps, apest.DisplayName(d))
	}
	if len(comps) > 0 {
		b.WriteString(theme.Label.Render("Partners with") + " " + theme.Body.Render(strings.Join(comps, ", ")) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Label.Render("Consistency") + " " + theme.Body.Render(fmt.Sprintf("%.2f", p.Consistency)) + "\n")
	b.WriteString(theme.Label.Render("Confidence") + " " + theme.Body.Render(fmt.Sprintf("%.2f", p.Confidence)) + "\n")
	b.WriteString(theme.Label.Render("Completion") + " " + theme.Body.Render(fmt.Sprintf("%.0f%%", p.CompletionPct)) + "\n")
	if p.AdjustmentApplied {
		b.WriteString(theme.Hint.Render("scores include cultural calibration") + "\n")
	}

	b.WriteString("\n" + theme.Subtitle.Render(p.InsightSummary()))

	return theme.Card.Render(b.String())
}

// RenderSummary renders an assessment-level statistics summary.
func RenderSummary(s stats.Summary) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Assessment Statistics") + "  " + theme.Subtitle.Render(s.AssessmentID) + "\n\n")
	b.WriteString(theme.Label.Render("Started") + " " + theme.Body.Render(fmt.Sprintf("%d", s.Started)) + "\n")
	b.WriteString(theme.Label.Render("Completed") + " " + theme.Body.Render(fmt.Sprintf("%d", s.Completed)) + "\n")
	b.WriteString(theme.Label.Render("Rate") + " " + theme.Body.Render(fmt.Sprintf("%.0f%%", s.CompletionRate*100)) + "\n")

	if s.Completed > 0 {
		b.WriteString("\n" + theme.Subtitle.Render("Mean scores") + "\n")
		for _, d := range apest.All() {
			mean, ok := s.MeanScore[d]
			if !ok {
				continue
			}
			b.WriteString(ScoreBar(apest.DisplayName(d), mean) + "\n")
		}

		b.WriteString("\n" + theme.Subtitle.Render("Primary gifts") + "\n")
		for _, d := range apest.All() {
			n := s.GiftDistribution[d]
			if n == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("%s %s %d\n",
				theme.Label.Render(apest.DisplayName(d)),
				theme.BarFilled.Render(strings.Repeat("▪", n)), n))
		}
	}

	return theme.Card.Render(strings.TrimRight(b.String(), "\n"))
}
