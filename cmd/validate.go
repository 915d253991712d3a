package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmartyn/giftwise/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate <catalog.json|dir>",
	Short: "Validate an assessment catalog document",
	Long:  "Checks a catalog JSON document (or every *.json in a directory) against the catalog schema and the authoring rules: unique ids, known dimensions, positive weights, scoreable coverage of all five dimensions.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}

		if info.IsDir() {
			cats, err := catalog.LoadDir(args[0])
			if err != nil {
				return err
			}
			for id, c := range cats {
				fmt.Printf("ok: %s v%s (%d questions)\n", id, c.Version, len(c.Questions))
			}
			return nil
		}

		c, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("ok: %s v%s (%d questions)\n", c.AssessmentID, c.Version, len(c.Questions))
		return nil
	},
}
