package cmd

import (
	"github.com/spf13/cobra"

	"github.com/justin0804nitsuj/memo/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Browse the catalog interactively",
	Long: `Open the interactive browser.

Keys: / search, a add, e edit description, x mark, d delete,
enter preview, r reload, q quit.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	return tui.Run(cmd.Context(), a.Catalog, a.Dispatcher)
}
