package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/paesprep/internal/report"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend learning nodes for the weakest cognitive tier",
	RunE: func(cmd *cobra.Command, args []string) error {
		test, err := testFlag(cmd)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.study.Recommend(cmd.Context(), a.user, test)
		if err != nil {
			return err
		}

		showMastery, _ := cmd.Flags().GetBool("mastery")
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if !showMastery {
				res.Mastery = nil
			}
			return writeJSON(cmd, res)
		}

		opts := a.reportOptions()
		out := report.Recommendation(test, res.Recommendation, opts)
		if showMastery {
			out += "\n" + report.Mastery(res.Mastery, opts)
		}
		return writeStyled(cmd, out)
	},
}

func init() {
	recommendCmd.Flags().StringP("test", "t", "", "Restrict to one PAES test")
	recommendCmd.Flags().Bool("json", false, "Print the recommendation as JSON")
	recommendCmd.Flags().Bool("mastery", false, "Also show per-skill mastery")
}
