package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/justin0804nitsuj/memo/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the memo database and a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)

		path := cfgFile
		if path == "" {
			path = filepath.Join(config.Dir(), "config.yaml")
		}
		written, err := config.WriteDefault(settings, path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if written {
			fmt.Fprintln(out, "Wrote config:", path)
		} else {
			fmt.Fprintln(out, "Config exists:", path)
		}
		fmt.Fprintln(out, "Database:", a.Config.DatabasePath)
		fmt.Fprintln(out, "memo initialized successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
