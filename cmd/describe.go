package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justin0804nitsuj/memo/internal/core"
)

var describeCmd = &cobra.Command{
	Use:   "describe <id> [description...]",
	Short: "Replace a file's description",
	Long: `Describe replaces the description of the record with the given id.
Leaving the description out clears it. Unknown ids are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		description := strings.Join(args[1:], " ")
		if err := a.Catalog.EditDescription(cmd.Context(), core.EditDescriptionRequest{ID: id, Description: description}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated description of %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
