package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/dataseeder/internal/config"
	"github.com/systmms/dataseeder/internal/seeder"
)

func NewSetupCommand(cfg *config.Config, deps *Deps) *cobra.Command {
	var (
		getSettings bool
		showSecrets bool
		reset       bool
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Configure the MongoDB connection",
		Long: `Store the MongoDB connection string, database name and collection name
in the operating system keyring.

Each prompt shows the current value; press Enter to keep it.

Examples:
  # Interactive setup
  dataseeder setup

  # Show the stored settings with credentials masked
  dataseeder setup --get-settings

  # Show the stored settings including credentials
  dataseeder setup --get-settings --show-secrets

  # Forget the stored settings
  dataseeder setup --reset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := seeder.NewSetup(deps.Secrets, cmd.InOrStdin(), cmd.OutOrStdout())

			switch {
			case reset:
				return s.Reset()
			case getSettings || showSecrets:
				return s.Show(showSecrets)
			default:
				return s.Configure()
			}
		},
	}

	cmd.Flags().BoolVar(&getSettings, "get-settings", false, "Print the stored settings")
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print the connection string unmasked (implies --get-settings)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete the stored settings")
	cmd.MarkFlagsMutuallyExclusive("reset", "get-settings")
	cmd.MarkFlagsMutuallyExclusive("reset", "show-secrets")

	return cmd
}
