package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/justin0804nitsuj/memo/internal/core"
	"github.com/justin0804nitsuj/memo/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search [keyword...]",
	Short: "Find files whose name or description contains a keyword",
	Long: `Search matches the keyword as a substring of the file name or the
description. Several words are searched as one phrase; no keyword lists
everything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		keyword := strings.Join(args, " ")

		entries, err := a.Catalog.Search(cmd.Context(), core.SearchRequest{Keyword: keyword})
		if err != nil {
			return err
		}
		a.Logger.Debug().Str("keyword", keyword).Int("results", len(entries)).Msg("search done")
		return output.WriteEntries(cmd.OutOrStdout(), outputFormat(a), entries)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
