package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-harbor/backend/config"
	"github.com/pageza/recipe-harbor/backend/internal/logger"
)

// NewRootCommand builds the recipeharbor command tree
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:          "recipeharbor",
		Short:        "Recipe Harbor API server and maintenance tasks",
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand(version))
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedCommand())
	return root
}

// bootstrap loads the configuration and installs the process logger.
// Logs go to the command's stderr.
func bootstrap(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := logger.InitWriter(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}, cmd.ErrOrStderr())
	log.Debug("configuration loaded", "environment", cfg.Environment, "store_driver", cfg.StoreDriver)
	return cfg, log, nil
}
