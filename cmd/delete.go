package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justin0804nitsuj/memo/internal/core"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Remove files from the catalog",
	Long:    `Delete removes catalog records. The files themselves are left alone.`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if err := a.Catalog.DeleteFiles(cmd.Context(), core.DeleteFilesRequest{IDs: ids}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d record(s)\n", len(ids))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
