package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the seed recipes when the store is empty",
		Long: `Insert the seed recipes when the store is empty.

SEED_SOURCE selects the document: empty for the bundled recipes, a local
path, or s3://bucket/key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(cmd)
			if err != nil {
				return err
			}

			st, closeStore, err := openStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := seedStore(cmd.Context(), cfg, st, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d recipes\n", n)
			return nil
		},
	}
}
