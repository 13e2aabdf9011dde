package service

import (
	"errors"
	"fmt"

	"github.com/pageza/recipe-harbor/backend/internal/search"
	"github.com/pageza/recipe-harbor/backend/internal/store"
)

// ErrRecipeNotFound matches every NotFoundError via errors.Is
var ErrRecipeNotFound = errors.New("recipe not found")

// NotFoundError is returned by get, update and delete for an unknown id
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Recipe with id '%s' not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrRecipeNotFound
}

// ValidationError is the search input error type
type ValidationError = search.ValidationError

// IsValidation reports whether err was raised before reaching the store
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// StoreError wraps a failed store round trip
type StoreError = store.OpError

// IsStoreFailure reports whether err came from a failed store round trip
func IsStoreFailure(err error) bool {
	return store.IsOpError(err)
}
