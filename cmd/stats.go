package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmartyn/giftwise/internal/stats"
	"github.com/jmartyn/giftwise/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats [assessment-id]",
	Short: "Show assessment-level statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assessmentID := "apest-standard"
		if len(args) == 1 {
			assessmentID = args[0]
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.Sessions().ListByAssessment(cmd.Context(), assessmentID)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Printf("No sessions recorded for %s\n", assessmentID)
			return nil
		}

		fmt.Println(ui.RenderSummary(stats.Aggregate(assessmentID, sessions)))
		return nil
	},
}
