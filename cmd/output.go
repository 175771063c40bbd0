package cmd

import (
	"encoding/json"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeStyled prints rendered output, downsampling colours to what the
// destination supports.
func writeStyled(cmd *cobra.Command, s string) error {
	_, err := lipgloss.Fprint(cmd.OutOrStdout(), s)
	return err
}
