package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/paesprep/internal/bloom"
	"github.com/abhisek/paesprep/internal/study"
)

var attemptCmd = &cobra.Command{
	Use:   "attempt <skill|-> <correct|incorrect>",
	Short: "Record an exercise attempt",
	Long: `Record the result of one exercise.

Pass "-" as the skill together with --node to use the node's target skill.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		correct, err := parseOutcome(args[1])
		if err != nil {
			return err
		}

		in := study.AttemptInput{Correct: correct}
		if args[0] != "-" {
			skill, err := bloom.ParseSkill(args[0])
			if err != nil {
				return err
			}
			in.Skill = skill
		}
		in.NodeID, _ = cmd.Flags().GetString("node")
		in.ResponseMs, _ = cmd.Flags().GetInt("ms")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.study.RecordAttempt(cmd.Context(), a.user, in)
		if err != nil {
			return err
		}

		outcome := "incorrect"
		if rec.Correct {
			outcome = "correct"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded #%d: %s %s\n", rec.Sequence, rec.Skill, outcome)
		return nil
	},
}

func parseOutcome(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "correct", "ok", "1", "true":
		return true, nil
	case "incorrect", "wrong", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid outcome %q: must be correct or incorrect", s)
}

func init() {
	attemptCmd.Flags().String("node", "", "Learning node the exercise belongs to")
	attemptCmd.Flags().Int("ms", 0, "Response time in milliseconds")
}
