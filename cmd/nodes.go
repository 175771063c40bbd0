package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/paesprep/internal/catalog"
	"github.com/abhisek/paesprep/internal/report"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Manage the learning-node catalogue",
}

var nodesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learning nodes",
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

		nodes, err := a.study.Nodes(cmd.Context(), test)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, nodes)
		}
		return writeStyled(cmd, report.Nodes(nodes, a.reportOptions()))
	},
}

var nodesImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import learning nodes from a YAML catalogue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(args[0])
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		warnings, err := a.study.ImportCatalog(cmd.Context(), c)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, w := range warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		fmt.Fprintf(out, "Imported %d nodes from %s\n", len(c.Nodes), args[0])
		return nil
	},
}

func init() {
	nodesListCmd.Flags().StringP("test", "t", "", "Filter by PAES test")
	nodesListCmd.Flags().Bool("json", false, "Print JSON")

	nodesCmd.AddCommand(nodesListCmd)
	nodesCmd.AddCommand(nodesImportCmd)
}
