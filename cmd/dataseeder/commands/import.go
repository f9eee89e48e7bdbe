package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/systmms/dataseeder/internal/config"
	dserrors "github.com/systmms/dataseeder/internal/errors"
	"github.com/systmms/dataseeder/internal/seeder"
)

func NewImportCommand(cfg *config.Config, deps *Deps) *cobra.Command {
	var (
		file       string
		collection string
		wrapperKey string
	)

	cmd := &cobra.Command{
		Use:   "import-file",
		Short: "Bulk import auction items from a JSON file",
		Long: `Insert every record of a JSON file in a single bulk insert.

The file is a JSON array of objects. When a wrapper key is set, the file is
an object and the array is read from that member instead:

  {"auction_items": [{"title": "..."}, ...]}

The wrapper key comes from --wrapper-key or import.wrapper_key in the
preferences file. Nothing is inserted if the file is missing or does not
have the expected shape.

Examples:
  dataseeder import-file -f items.json
  dataseeder import-file -f export.json --wrapper-key auction_items
  dataseeder import-file -f items.json --collection staging_items`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return dserrors.UserError{
					Message:    "Import file is required",
					Suggestion: "Use --file <path> to name the JSON file to import",
				}
			}

			key := cfg.Preferences.Import.WrapperKey
			if cmd.Flags().Changed("wrapper-key") {
				key = wrapperKey
			}

			return withService(cmd, cfg, deps, collection, func(ctx context.Context, svc *seeder.Service) error {
				_, err := svc.Import(ctx, file, key)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file to import (required)")
	cmd.Flags().StringVar(&collection, "collection", "", "Import into this collection instead of the configured one")
	cmd.Flags().StringVar(&wrapperKey, "wrapper-key", "", "Member of the top-level object holding the item array")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
