package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pageza/recipe-harbor/backend/internal/model"
)

// Indexes lists the secondary indexes the search filters rely on
func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: model.FieldName, Value: 1}}, Options: options.Index().SetName("name_1")},
		{Keys: bson.D{{Key: model.FieldVegetarian, Value: 1}}, Options: options.Index().SetName("vegetarian_1")},
		{Keys: bson.D{{Key: model.FieldServings, Value: 1}}, Options: options.Index().SetName("servings_1")},
		{Keys: bson.D{{Key: model.FieldIngredientNames, Value: 1}}, Options: options.Index().SetName("ingredients_name_1")},
		{Keys: bson.D{{Key: model.FieldCreatedAt, Value: -1}}, Options: options.Index().SetName("created_at_-1")},
	}
}

// EnsureIndexes creates any missing index. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) ([]string, error) {
	names, err := coll.Indexes().CreateMany(ctx, Indexes())
	if err != nil {
		return nil, fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
	}
	return names, nil
}
