package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/recipe-harbor/backend/internal/model"
)

// ErrNotFound is returned by FindByID when no document has the id
var ErrNotFound = errors.New("document not found")

// Store is the document-store capability the recipe service consumes.
// Implementations must be safe for concurrent use.
type Store interface {
	Find(ctx context.Context, filter bson.D, sort bson.D, skip, limit int64) ([]model.Recipe, error)
	Count(ctx context.Context, filter bson.D) (int64, error)
	InsertOne(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error)
	Save(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	DeleteByFilter(ctx context.Context, filter bson.D) (int64, error)
	HealthCheck(ctx context.Context) error
}

// OpError reports a failed store round trip. It is never retried here.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsOpError reports whether err came from a failed store call
func IsOpError(err error) bool {
	var opErr *OpError
	return errors.As(err, &opErr)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// ByID is the filter selecting a single document by identity
func ByID(id primitive.ObjectID) bson.D {
	return bson.D{{Key: model.FieldID, Value: id}}
}
