package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/justin0804nitsuj/memo/internal/app"
	"github.com/justin0804nitsuj/memo/internal/config"
	"github.com/justin0804nitsuj/memo/internal/output"
	"github.com/justin0804nitsuj/memo/pkg/logging"
	"github.com/justin0804nitsuj/memo/pkg/preview"
)

var (
	cfgFile string
	verbose bool
	quiet   bool

	// settings is rebuilt by setup on every run.
	settings *viper.Viper

	// launcher replaces the system viewer when set.
	launcher preview.Launcher
)

var rootCmd = &cobra.Command{
	Use:   "memo",
	Short: "Catalog local files with descriptions, search and preview them",
	Long: `memo keeps a small catalog of local files in an SQLite database.
Each entry stores the file's name, path, type and a free-text description.

Run without a subcommand to open the interactive browser.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runUI,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run executes args and closes the catalog the command opened.
func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if cmd != nil && cmd.Context() != nil {
		if cerr := app.FromContext(cmd.Context()).Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./config.yaml or $HOME/.memo/config.yaml)")
	flags.String("db", "", "database file (default $HOME/.memo/my_files.db)")
	flags.StringP("output", "o", "", "output format: table, wide, json, yaml (default auto)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	flags.BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// newSettings returns a fresh viper instance with the persistent flags bound
// over their config keys.
func newSettings(flags *pflag.FlagSet) *viper.Viper {
	v := config.New()
	_ = v.BindPFlag("database.path", flags.Lookup("db"))
	_ = v.BindPFlag("output", flags.Lookup("output"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	return v
}

// setup loads the configuration, builds the logger and opens the catalog,
// creating the database file and files table on first use.
func setup(cmd *cobra.Command, args []string) error {
	settings = newSettings(cmd.Root().PersistentFlags())
	cfg, err := config.Load(settings, cfgFile)
	if err != nil {
		return err
	}
	if _, err := output.ParseFormat(cfg.Output); err != nil {
		return err
	}

	logCfg := &logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Output:     cfg.LogOutput,
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	switch {
	case cmd.Flags().Changed("log-level"):
	case verbose:
		logCfg.Level = "debug"
	case quiet:
		logCfg.Level = "error"
	}
	// The terminal belongs to the browser while it runs.
	if usesTerminal(cmd) && (cfg.LogOutput == "" || cfg.LogOutput == "stderr" || cfg.LogOutput == "stdout") {
		logCfg.Output = "discard"
	}
	logger := logging.NewLoggerFromConfig(logCfg)
	logger.Debug().Str("config", cfg.ConfigFile).Str("database", cfg.DatabasePath).Msg("configuration loaded")

	a, err := app.New(cmd.Context(), cfg, logger, app.WithLauncher(launcher))
	if err != nil {
		return err
	}
	cmd.SetContext(app.WithApp(cmd.Context(), a))
	return nil
}

// usesTerminal reports whether cmd runs the full-screen browser.
func usesTerminal(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "ui"
}

// appFrom returns the App opened by setup.
func appFrom(cmd *cobra.Command) *app.App {
	return app.FromContext(cmd.Context())
}

// outputFormat resolves the -o flag, falling back to auto-detection.
func outputFormat(a *app.App) output.Format {
	return output.DetectFormat(a.Config.Output)
}
