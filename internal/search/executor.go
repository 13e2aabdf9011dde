package search

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/recipe-harbor/backend/internal/model"
)

// Finder is the slice of the document store the executor needs
type Finder interface {
	Find(ctx context.Context, filter Filter, sort bson.D, skip, limit int64) ([]model.Recipe, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

// NewestFirst is the fixed result order: created_at descending.
func NewestFirst() bson.D {
	return bson.D{{Key: model.FieldCreatedAt, Value: -1}}
}

// Executor runs a compiled filter as a windowed find plus an independent count.
//
// The two reads are separate round trips against the same filter and are not
// taken from one snapshot, so a concurrent write can make TotalElements and
// the content length disagree for that one response.
type Executor struct {
	store Finder
}

// NewExecutor creates an Executor over the given store
func NewExecutor(store Finder) *Executor {
	return &Executor{store: store}
}

// Execute returns page pageNumber (zero based) of size pageSize.
// A page past the end is not an error; it comes back empty with the real total.
// Store errors are returned as-is.
func (e *Executor) Execute(ctx context.Context, filter Filter, pageNumber, pageSize int) (*Page[model.Recipe], error) {
	if err := ValidatePage(pageNumber, pageSize); err != nil {
		return nil, err
	}

	skip := int64(pageNumber) * int64(pageSize)
	limit := int64(pageSize)

	var (
		content []model.Recipe
		total   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := e.store.Find(gctx, filter, NewestFirst(), skip, limit)
		if err != nil {
			return err
		}
		content = res
		return nil
	})
	g.Go(func() error {
		n, err := e.store.Count(gctx, filter)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewPage(content, pageNumber, pageSize, total), nil
}
