package cli

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pageza/recipe-harbor/backend/config"
	"github.com/pageza/recipe-harbor/backend/internal/database"
	"github.com/pageza/recipe-harbor/backend/internal/store"
)

// openStore builds the configured store wrapped with metrics. close releases
// the underlying connection.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn("using the in-memory store, data is lost on exit")
		return store.Instrument(store.NewMemoryStore()), func() {}, nil
	case config.DriverMongo:
		client, coll, err := database.Connect(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return store.Instrument(store.NewMongoStore(coll)), disconnect(client, log), nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func disconnect(client *mongo.Client, log *slog.Logger) func() {
	return func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("failed to disconnect from mongo", "error", err)
		}
	}
}

// seedStore loads SEED_SOURCE and inserts it when the store is empty
func seedStore(ctx context.Context, cfg *config.Config, s store.Store, log *slog.Logger) (int, error) {
	var fetcher database.Fetcher
	if _, _, ok := config.ParseS3URI(cfg.SeedSource); ok {
		s3cfg, err := config.NewS3Config(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		fetcher = s3cfg
	}

	data, err := database.LoadSeedData(ctx, cfg.SeedSource, fetcher)
	if err != nil {
		return 0, err
	}
	recipes, err := database.ParseSeed(data)
	if err != nil {
		return 0, err
	}
	return database.Seed(ctx, s, recipes, log)
}
