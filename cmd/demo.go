package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmartyn/giftwise/internal/apest"
	"github.com/jmartyn/giftwise/internal/catalog"
	"github.com/jmartyn/giftwise/internal/ledger"
	"github.com/jmartyn/giftwise/internal/session"
	"github.com/jmartyn/giftwise/internal/ui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a simulated assessment end to end",
	Long:  "Starts a session against the built-in APEST catalog, saves a full response set in batches, completes it, and renders the resulting profile.",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().String("user", "demo-user", "User id for the simulated session")
	demoCmd.Flags().String("culture", "", "Cultural context applied at completion")
}

// demoLeaning is the simulated respondent: a strong teacher-shepherd
// with modest apostolic energy.
var demoLeaning = map[apest.Dimension]float64{
	apest.Apostolic:    3,
	apest.Prophetic:    2,
	apest.Evangelistic: 2,
	apest.Shepherding:  4,
	apest.Teaching:     5,
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	mgr, err := newManager(cmd, st)
	if err != nil {
		return err
	}

	userID, _ := cmd.Flags().GetString("user")
	culture, _ := cmd.Flags().GetString("culture")
	cat := catalog.Builtin()

	s, err := mgr.Start(ctx, userID, cat.AssessmentID, culture)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	fmt.Printf("Session %s started for %s (%s v%s)\n", s.ID, userID, cat.Name, cat.Version)

	// Two batches, the way a real client saves partial progress. A
	// consistent respondent answers reverse-worded items inverted, so
	// the effective per-dimension score matches the leaning.
	subs := make([]ledger.Submission, 0, len(cat.Questions))
	for i := range cat.Questions {
		q := &cat.Questions[i]
		v := demoLeaning[q.Dimension]
		if q.ReverseScored {
			v = q.Domain.Min + q.Domain.Max - v
		}
		subs = append(subs, ledger.Submission{QuestionID: q.ID, Value: &v})
	}
	for _, batch := range [][]ledger.Submission{subs[:len(subs)/2], subs[len(subs)/2:]} {
		if s, err = mgr.SaveProgress(ctx, s.ID, batch); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		fmt.Printf("Saved %d responses, completion %.0f%%\n", len(batch), s.CompletionPct)
	}

	s, err = mgr.Complete(ctx, s.ID, session.CompleteOptions{})
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}

	fmt.Println()
	fmt.Println(ui.RenderProfile(s.Profile))
	fmt.Printf("\nInspect it again later: giftwise results %s\n", s.ID)
	return nil
}
