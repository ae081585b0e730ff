package cmd

import (
	"github.com/spf13/cobra"

	"github.com/justin0804nitsuj/memo/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many files of each type are cataloged",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		counts, err := a.Catalog.Stats(cmd.Context())
		if err != nil {
			return err
		}
		return output.WriteStats(cmd.OutOrStdout(), outputFormat(a), counts)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
