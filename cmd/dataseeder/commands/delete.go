package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/systmms/dataseeder/internal/auction"
	"github.com/systmms/dataseeder/internal/config"
	dserrors "github.com/systmms/dataseeder/internal/errors"
	"github.com/systmms/dataseeder/internal/seeder"
)

func NewDeleteCommand(cfg *config.Config, deps *Deps) *cobra.Command {
	var (
		multi     bool
		valueType string
	)

	cmd := &cobra.Command{
		Use:   "delete <field> <value>",
		Short: "Delete auction items matching field = value",
		Long: `Delete the first item whose field equals value, or every such item
with --multi.

Values are matched as strings unless --type int is given; the store
compares types, so 100 and "100" are different values.

A value starting with "-" must follow "--" so it is not read as a flag.

Examples:
  dataseeder delete title "Vintage Watch"
  dataseeder delete start_price 100 --type int --multi
  dataseeder delete --type int -- start_price -5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := auction.ParseValueKind(valueType)
			if err != nil {
				return dserrors.UserError{
					Message:    "Invalid value type",
					Details:    err.Error(),
					Suggestion: "Use --type string or --type int",
				}
			}
			value, err := auction.ParseValue(args[1], kind)
			if err != nil {
				return dserrors.UserError{
					Message:    "Invalid value",
					Details:    err.Error(),
					Suggestion: "Drop --type int to match the value as a string",
				}
			}

			filter := auction.NewFilter(args[0], value)
			return withService(cmd, cfg, deps, "", func(ctx context.Context, svc *seeder.Service) error {
				_, err := svc.Delete(ctx, filter, multi)
				return err
			})
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if strings.HasPrefix(err.Error(), "unknown shorthand flag") {
			return dserrors.UserError{
				Message:    "Could not parse arguments",
				Details:    err.Error(),
				Suggestion: "Put a value starting with '-' after '--', e.g. dataseeder delete --type int -- start_price -5",
				Err:        err,
			}
		}
		return err
	})

	cmd.Flags().BoolVarP(&multi, "multi", "m", false, "Delete every matching item")
	cmd.Flags().StringVar(&valueType, "type", "string", "Value type: string or int")

	return cmd
}
