package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pageza/recipe-harbor/backend/config"
)

const connectTimeout = 10 * time.Second

// Connect opens the Mongo client and returns the recipe collection.
// The caller owns the client and must Disconnect it.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Client, *mongo.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetAppName("recipeharbor").
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("error connecting to mongo: %w", err)
	}

	logger.Info("connected to mongo", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)
	return client, client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection), nil
}
