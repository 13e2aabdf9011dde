package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pageza/recipe-harbor/backend/internal/model"
)

// MongoStore keeps recipes in a MongoDB collection
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over coll
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Find returns the matching documents in sort order, skipping skip and returning at most limit.
func (s *MongoStore) Find(ctx context.Context, filter bson.D, sort bson.D, skip, limit int64) ([]model.Recipe, error) {
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrap("find", err)
	}
	defer cur.Close(ctx)

	recipes := []model.Recipe{}
	if err := cur.All(ctx, &recipes); err != nil {
		return nil, wrap("find", err)
	}
	return recipes, nil
}

func (s *MongoStore) Count(ctx context.Context, filter bson.D) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrap("count", err)
	}
	return n, nil
}

// InsertOne inserts the recipe and returns it with the id the driver assigned.
func (s *MongoStore) InsertOne(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	doc := *recipe
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, wrap("insert", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return &doc, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.coll.FindOne(ctx, ByID(id)).Decode(&recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("find_by_id", err)
	}
	return &recipe, nil
}

// Save replaces the document with the recipe's id, inserting it if missing.
func (s *MongoStore) Save(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if !recipe.IsPersisted() {
		return s.InsertOne(ctx, recipe)
	}
	doc := *recipe
	_, err := s.coll.ReplaceOne(ctx, ByID(doc.ID), doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, wrap("save", err)
	}
	return &doc, nil
}

func (s *MongoStore) DeleteByFilter(ctx context.Context, filter bson.D) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, wrap("delete", err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) HealthCheck(ctx context.Context) error {
	return wrap("ping", s.coll.Database().Client().Ping(ctx, readpref.Primary()))
}
