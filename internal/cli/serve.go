package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-harbor/backend/internal/database"
	"github.com/pageza/recipe-harbor/backend/internal/middleware"
	"github.com/pageza/recipe-harbor/backend/internal/router"
	"github.com/pageza/recipe-harbor/backend/internal/server"
	"github.com/pageza/recipe-harbor/backend/internal/service"
)

func newServeCommand(version string) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, closeStore, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			if seed {
				if _, err := seedStore(ctx, cfg, st, log); err != nil {
					return err
				}
			}

			var writeLimiter *middleware.RateLimiter
			if cfg.RateLimitPerMinute > 0 {
				redisClient, err := database.NewRedisClient(ctx, cfg, log)
				if err != nil {
					return err
				}
				if redisClient != nil {
					defer redisClient.Close()
				}
				writeLimiter = middleware.NewWriteRateLimiter(redisClient, cfg.RateLimitPerMinute)
			}

			handler := router.SetupRouter(service.NewRecipeService(st, log), router.Options{
				Config:       cfg,
				Logger:       log,
				WriteLimiter: writeLimiter,
				Version:      version,
			})

			log.Info("starting recipeharbor", "version", version, "environment", cfg.Environment)
			return server.New(cfg.Addr(), handler, log).Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "seed the store from SEED_SOURCE when it is empty")
	return cmd
}
