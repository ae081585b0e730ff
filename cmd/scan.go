package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/justin0804nitsuj/memo/internal/core"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

var (
	scanExtensions  []string
	scanDescription string
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Add every file below a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		root, err := filepath.Abs(args[0])
		if err != nil {
			return pkgerrors.NewIOError("resolve", args[0], err)
		}

		result, err := a.Catalog.Scan(cmd.Context(), core.ScanRequest{
			Root:        root,
			Extensions:  scanExtensions,
			Description: scanDescription,
		})
		out := cmd.OutOrStdout()
		for _, rec := range result.Added {
			fmt.Fprintf(out, "%d\t%s\t%s\n", rec.ID, rec.FileType, rec.FilePath)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %d file(s), skipped %d\n", len(result.Added), result.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringSliceVarP(&scanExtensions, "ext", "e", nil, "only add files with these extensions (e.g. jpg,txt)")
	scanCmd.Flags().StringVarP(&scanDescription, "description", "d", "", "description given to every added file")
}
