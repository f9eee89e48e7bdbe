package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/systmms/dataseeder/cmd/dataseeder/commands"
	"github.com/systmms/dataseeder/internal/config"
	"github.com/systmms/dataseeder/internal/logging"
	"github.com/systmms/dataseeder/internal/secure"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := run()
	secure.Purge()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
		timeout    time.Duration
	)

	cfg := &config.Config{}
	deps := commands.DefaultDeps()

	rootCmd := &cobra.Command{
		Use:   "dataseeder",
		Short: "Seed and manage auction items in MongoDB",
		Long: `dataseeder adds, imports, lists and deletes auction items in a MongoDB
collection. Connection details are kept in the operating system keyring;
run 'dataseeder setup' first.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Logger = logging.New(debug, noColor)
			cfg.Path = configFile
			cfg.PathExplicit = cmd.Flags().Changed("config")
			if err := cfg.Load(); err != nil {
				return err
			}
			// --timeout wins over timeout_ms in the preferences file
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Preferences file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", config.DefaultTimeout, "Timeout for each MongoDB operation")

	rootCmd.AddCommand(
		commands.NewSetupCommand(cfg, deps),
		commands.NewAddCommand(cfg, deps),
		commands.NewImportCommand(cfg, deps),
		commands.NewGetAllCommand(cfg, deps),
		commands.NewDeleteCommand(cfg, deps),
	)

	return rootCmd.Execute()
}
