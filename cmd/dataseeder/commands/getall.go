package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/systmms/dataseeder/internal/config"
	"github.com/systmms/dataseeder/internal/seeder"
)

func NewGetAllCommand(cfg *config.Config, deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "getAll",
		Short: "Print every auction item",
		Long: `Print every document of the configured collection, one JSON object
per line with _id as a hex string.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, cfg, deps, "", func(ctx context.Context, svc *seeder.Service) error {
				_, err := svc.GetAll(ctx)
				return err
			})
		},
	}
}
