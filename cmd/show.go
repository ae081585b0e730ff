package cmd

import (
	"github.com/spf13/cobra"

	"github.com/justin0804nitsuj/memo/internal/output"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one cataloged file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		rec, found, err := a.Catalog.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !found {
			return pkgerrors.NewNotFoundError("file", args[0])
		}
		return output.WriteRecord(cmd.OutOrStdout(), outputFormat(a), rec)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
