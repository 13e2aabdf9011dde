package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-harbor/backend/config"
	"github.com/pageza/recipe-harbor/backend/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the recipe collection indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			if cfg.StoreDriver != config.DriverMongo {
				return fmt.Errorf("migrate needs the %s store driver, got %q", config.DriverMongo, cfg.StoreDriver)
			}

			client, coll, err := database.Connect(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer disconnect(client, log)()

			names, err := database.EnsureIndexes(cmd.Context(), coll)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexes ensured: %s\n", strings.Join(names, ", "))
			return nil
		},
	}
}
