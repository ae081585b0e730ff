package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/justin0804nitsuj/memo/internal/core"
	"github.com/justin0804nitsuj/memo/internal/output"
	"github.com/justin0804nitsuj/memo/models"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

var addDescription string

var addCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Add files to the catalog",
	Long: `Add records each file's name, absolute path and type along with an
optional description. The file type is chosen from the extension.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)

		added := make([]models.FileEntry, 0, len(args))
		for _, arg := range args {
			path, err := filepath.Abs(arg)
			if err != nil {
				return pkgerrors.NewIOError("resolve", arg, err)
			}
			if _, err := os.Stat(path); err != nil {
				a.Logger.Warn().Str("path", path).Msg("file does not exist, adding anyway")
			}

			rec, err := a.Catalog.AddFile(cmd.Context(), core.AddFileRequest{Path: path, Description: addDescription})
			if err != nil {
				return err
			}
			added = append(added, rec.Entry())
		}
		return output.WriteEntries(cmd.OutOrStdout(), outputFormat(a), added)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "description of the file")
}
