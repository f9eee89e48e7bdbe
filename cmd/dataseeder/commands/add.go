package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/systmms/dataseeder/internal/auction"
	"github.com/systmms/dataseeder/internal/config"
	dserrors "github.com/systmms/dataseeder/internal/errors"
	"github.com/systmms/dataseeder/internal/seeder"
)

func NewAddCommand(cfg *config.Config, deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title> <description> <start_price> <reserve_price>",
		Short: "Add a single auction item",
		Long: `Insert one auction item into the configured collection.

Prices are whole numbers. They are stored as given; the reserve price is not
compared with the start price. Negative prices are accepted, so global flags
such as --debug must come before the arguments.

Examples:
  dataseeder add "Vintage Watch" "1950s wristwatch" 100 250
  dataseeder --debug add "Odd lot" "misc" -5 10`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			startPrice, err := parsePrice("start_price", args[2])
			if err != nil {
				return err
			}
			reservePrice, err := parsePrice("reserve_price", args[3])
			if err != nil {
				return err
			}

			item := auction.NewItem(args[0], args[1], startPrice, reservePrice)
			return withService(cmd, cfg, deps, "", func(ctx context.Context, svc *seeder.Service) error {
				_, err := svc.Add(ctx, item)
				return err
			})
		},
	}

	// arguments after the title are never flags, so "-5" stays a price
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func parsePrice(name, raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, dserrors.UserError{
			Message:    fmt.Sprintf("%s must be a whole number", name),
			Details:    fmt.Sprintf("got %q", raw),
			Suggestion: "Pass prices as integers, e.g. 100",
			Err:        err,
		}
	}
	return n, nil
}
