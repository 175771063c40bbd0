package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/paesprep/internal/coach"
	"github.com/abhisek/paesprep/internal/report"
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Build a study plan from the current recommendation",
	Long: `Build a short study plan for the recommended nodes.

An LLM writes the plan when a provider is configured (llm.provider or one of
the ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY
variables); otherwise a plan is derived from the recommendation alone.`,
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

		ctx := cmd.Context()
		res, err := a.study.Recommend(ctx, a.user, test)
		if err != nil {
			return err
		}

		plan, err := a.coach(ctx).Plan(ctx, coach.Input{
			Test:           test,
			Recommendation: res.Recommendation,
			Mastery:        res.Mastery,
		})
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, plan)
		}

		opts := a.reportOptions()
		return writeStyled(cmd, report.Recommendation(test, res.Recommendation, opts)+"\n"+report.Plan(plan, opts))
	},
}

func init() {
	coachCmd.Flags().StringP("test", "t", "", "Restrict to one PAES test")
	coachCmd.Flags().Bool("json", false, "Print the plan as JSON")
}
