package cmd

import (
	"github.com/spf13/cobra"

	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
	"github.com/justin0804nitsuj/memo/pkg/preview"
)

var (
	previewCols int
	previewRows int
)

var previewCmd = &cobra.Command{
	Use:   "preview <id>",
	Short: "Preview a cataloged file",
	Long: `Preview shows images as colored blocks and text files as text.
Videos and other files are opened with the system's default program.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		surface := &preview.WriterSurface{W: cmd.OutOrStdout(), Cols: previewCols, Rows: previewRows}
		_, found, err := a.Catalog.Preview(cmd.Context(), id, a.Dispatcher, surface)
		if err != nil {
			return err
		}
		if !found {
			return pkgerrors.NewNotFoundError("file", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVar(&previewCols, "cols", 60, "image width in terminal cells")
	previewCmd.Flags().IntVar(&previewRows, "rows", 30, "image height in terminal cells")
}
