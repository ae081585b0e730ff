package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dedupeConfirm bool

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Find records that point at the same file",
	Long: `Dedupe lists paths cataloged more than once. With --confirm the
newer records are deleted and the oldest one is kept. Files on disk are
never removed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		out := cmd.OutOrStdout()

		sets, err := a.Catalog.Duplicates(cmd.Context())
		if err != nil {
			return err
		}
		extra := 0
		for _, set := range sets {
			extra += len(set.Extra)
		}
		fmt.Fprintf(out, "Found %d duplicated path(s), %d extra record(s)\n", len(sets), extra)
		if len(sets) == 0 {
			return nil
		}

		if !dedupeConfirm {
			for _, set := range sets {
				fmt.Fprintf(out, "\n%s\n  Keep:   %d\n", set.Path, set.Keep.ID)
				for _, e := range set.Extra {
					fmt.Fprintf(out, "  Remove: %d\n", e.ID)
				}
			}
			fmt.Fprintln(out, "\nRun with --confirm to remove the extra records")
			return nil
		}

		removed, err := a.Catalog.RemoveDuplicates(cmd.Context(), sets)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d record(s)\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dedupeCmd)
	dedupeCmd.Flags().BoolVar(&dedupeConfirm, "confirm", false, "delete the extra records")
}
