package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/justin0804nitsuj/memo/internal/core"
	"github.com/justin0804nitsuj/memo/models"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

var (
	watchExtensions  []string
	watchDescription string
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Add new files below a directory as they appear",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		root, err := filepath.Abs(args[0])
		if err != nil {
			return pkgerrors.NewIOError("resolve", args[0], err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s for new files. Press Ctrl+C to stop.\n", root)
		return a.Catalog.Watch(cmd.Context(), core.WatchRequest{
			Root:        root,
			Extensions:  watchExtensions,
			Description: watchDescription,
			Settle:      a.Config.WatchSettle,
			OnAdd: func(rec models.FileRecord) {
				fmt.Fprintf(out, "%d\t%s\t%s\n", rec.ID, rec.FileType, rec.FilePath)
			},
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringSliceVarP(&watchExtensions, "ext", "e", nil, "only add files with these extensions")
	watchCmd.Flags().StringVarP(&watchDescription, "description", "d", "", "description given to every added file")
}
