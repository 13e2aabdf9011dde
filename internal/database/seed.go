package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/recipe-harbor/backend/config"
	"github.com/pageza/recipe-harbor/backend/internal/model"
	"github.com/pageza/recipe-harbor/backend/internal/store"
)

//go:embed seed/recipes.json
var bundledRecipes []byte

// Fetcher downloads an object from blob storage
type Fetcher interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

// LoadSeedData returns the seed document for source: the bundled recipes when
// source is empty, an S3 object for s3://bucket/key, otherwise a local file.
func LoadSeedData(ctx context.Context, source string, fetcher Fetcher) ([]byte, error) {
	if source == "" {
		return bundledRecipes, nil
	}
	if bucket, key, ok := config.ParseS3URI(source); ok {
		if fetcher == nil {
			return nil, fmt.Errorf("seed source %s needs an S3 client", source)
		}
		return fetcher.Fetch(ctx, bucket, key)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return data, nil
}

// ParseSeed decodes a JSON array of recipes. Ids in the document are ignored.
func ParseSeed(data []byte) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	for i := range recipes {
		if recipes[i].Name == "" {
			return nil, fmt.Errorf("seed recipe %d has no name", i)
		}
		recipes[i].ID = primitive.NilObjectID
	}
	return recipes, nil
}

// Seed inserts recipes when the store is empty and returns how many were written.
// A store that already holds documents is left untouched.
func Seed(ctx context.Context, s store.Store, recipes []model.Recipe, logger *slog.Logger) (int, error) {
	existing, err := s.Count(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		logger.Info("store already populated, skipping seed", "documents", existing)
		return 0, nil
	}

	// created_at is the only sort key; distinct stamps keep paging stable.
	// File order becomes newest-first order.
	now := time.Now().UTC().Truncate(time.Millisecond)
	var errs []error
	inserted := 0
	for i := range recipes {
		r := recipes[i]
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now.Add(-time.Duration(i) * time.Millisecond)
		}
		if _, err := s.InsertOne(ctx, &r); err != nil {
			errs = append(errs, fmt.Errorf("insert %q: %w", r.Name, err))
			continue
		}
		inserted++
	}

	logger.Info("seeded recipes", "inserted", inserted, "failed", len(errs))
	return inserted, errors.Join(errs...)
}
