package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/paesprep/internal/recommend"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Track learning-node progress",
}

var progressSetCmd = &cobra.Command{
	Use:   "set <node-id> <not_started|in_progress|completed>",
	Short: "Set the learner's status for a node",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := recommend.ParseProgressStatus(args[1])
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.study.SetProgress(cmd.Context(), a.user, args[0], status); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], status)
		return nil
	},
}

func init() {
	progressCmd.AddCommand(progressSetCmd)
}
