package cmd

import (
	"github.com/spf13/cobra"

	"github.com/justin0804nitsuj/memo/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every cataloged file",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		entries, err := a.Catalog.List(cmd.Context())
		if err != nil {
			return err
		}
		return output.WriteEntries(cmd.OutOrStdout(), outputFormat(a), entries)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
