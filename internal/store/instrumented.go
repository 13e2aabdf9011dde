package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/recipe-harbor/backend/internal/metrics"
	"github.com/pageza/recipe-harbor/backend/internal/model"
)

// Instrumented records Prometheus timings for every call on the wrapped store.
type Instrumented struct {
	next Store
}

// Instrument wraps s
func Instrument(s Store) *Instrumented {
	return &Instrumented{next: s}
}

func (s *Instrumented) Find(ctx context.Context, filter bson.D, sort bson.D, skip, limit int64) ([]model.Recipe, error) {
	start := time.Now()
	recipes, err := s.next.Find(ctx, filter, sort, skip, limit)
	metrics.ObserveStoreOp("find", start, err)
	return recipes, err
}

func (s *Instrumented) Count(ctx context.Context, filter bson.D) (int64, error) {
	start := time.Now()
	n, err := s.next.Count(ctx, filter)
	metrics.ObserveStoreOp("count", start, err)
	return n, err
}

func (s *Instrumented) InsertOne(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	start := time.Now()
	r, err := s.next.InsertOne(ctx, recipe)
	metrics.ObserveStoreOp("insert", start, err)
	return r, err
}

func (s *Instrumented) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	start := time.Now()
	r, err := s.next.FindByID(ctx, id)
	// a miss is an answer, not a failed round trip
	if errors.Is(err, ErrNotFound) {
		metrics.ObserveStoreOp("find_by_id", start, nil)
	} else {
		metrics.ObserveStoreOp("find_by_id", start, err)
	}
	return r, err
}

func (s *Instrumented) Save(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	start := time.Now()
	r, err := s.next.Save(ctx, recipe)
	metrics.ObserveStoreOp("save", start, err)
	return r, err
}

func (s *Instrumented) DeleteByFilter(ctx context.Context, filter bson.D) (int64, error) {
	start := time.Now()
	n, err := s.next.DeleteByFilter(ctx, filter)
	metrics.ObserveStoreOp("delete", start, err)
	return n, err
}

func (s *Instrumented) HealthCheck(ctx context.Context) error {
	return s.next.HealthCheck(ctx)
}
