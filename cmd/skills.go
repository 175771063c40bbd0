package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/paesprep/internal/bloom"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List PAES skills with their test and cognitive tier",
	RunE: func(cmd *cobra.Command, args []string) error {
		test, err := testFlag(cmd)
		if err != nil {
			return err
		}

		skills := bloom.AllSkills()
		if test != "" {
			skills = bloom.SkillsForTest(test)
		}

		testsOf := make(map[bloom.Skill][]string)
		for _, t := range bloom.AllTests() {
			for _, s := range bloom.SkillsForTest(t) {
				if !slices.Contains(testsOf[s], t.DisplayName()) {
					testsOf[s] = append(testsOf[s], t.DisplayName())
				}
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-22s  %-28s  %-22s  %s\n", "Code", "Name", "Tier", "Tests")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, s := range skills {
			tier := bloom.TierFor(s)
			fmt.Fprintf(out, "%-22s  %-28s  %-22s  %s\n",
				s, s.DisplayName(),
				fmt.Sprintf("%s (%s)", tier.DisplayName(), tier.SpanishName()),
				strings.Join(testsOf[s], ", "))
		}

		fmt.Fprintf(out, "\n%d skills\n", len(skills))
		return nil
	},
}

func init() {
	skillsCmd.Flags().StringP("test", "t", "", "Filter by PAES test (e.g. MATEMATICA_1)")
}
