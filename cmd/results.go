package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmartyn/giftwise/internal/session"
	"github.com/jmartyn/giftwise/internal/ui"
)

var resultsCmd = &cobra.Command{
	Use:   "results <session-id>",
	Short: "Show a completed session's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		s, err := st.Sessions().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if s.State != session.StateCompleted || s.Profile == nil {
			return fmt.Errorf("session %s is %s; no profile yet", s.ID, s.State)
		}

		fmt.Println(ui.RenderProfile(s.Profile))
		return nil
	},
}
