package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/recipe-harbor/backend/internal/metrics"
	"github.com/pageza/recipe-harbor/backend/internal/model"
	"github.com/pageza/recipe-harbor/backend/internal/search"
	"github.com/pageza/recipe-harbor/backend/internal/store"
)

// RecipeService handles recipe operations.
// It keeps no per-request state; every call is its own store round trip.
type RecipeService struct {
	store    store.Store
	executor *search.Executor
	logger   *slog.Logger
	now      func() time.Time
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(s store.Store, logger *slog.Logger) *RecipeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeService{
		store:    s,
		executor: search.NewExecutor(s),
		logger:   logger,
		now:      time.Now,
	}
}

// CreateRecipe stores a new recipe. Any id or created_at on the input is discarded.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	r := *recipe
	r.ID = primitive.NilObjectID
	// stored timestamps have millisecond precision
	r.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	saved, err := s.store.InsertOne(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	s.logger.InfoContext(ctx, "recipe created", "id", saved.ID.Hex())
	return saved, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	recipe, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "recipe found", "id", id)
	return recipe, nil
}

// UpdateRecipe replaces every mutable field with the payload.
// The stored id and created_at always win over whatever the payload carries.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, recipe *model.Recipe) (*model.Recipe, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	r := *recipe
	r.ID = existing.ID
	r.CreatedAt = existing.CreatedAt

	updated, err := s.store.Save(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "recipe updated", "id", id)
	return updated, nil
}

// DeleteRecipe deletes a recipe; NotFound when the store reports nothing deleted.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		s.logger.ErrorContext(ctx, "recipe not found", "id", id)
		return &NotFoundError{ID: id}
	}

	deleted, err := s.store.DeleteByFilter(ctx, store.ByID(oid))
	if err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}
	if deleted == 0 {
		s.logger.ErrorContext(ctx, "recipe not found", "id", id)
		return &NotFoundError{ID: id}
	}
	s.logger.InfoContext(ctx, "recipe deleted", "id", id)
	return nil
}

// SearchRecipes validates the criteria and window, compiles the filter and
// returns the requested page, newest first.
func (s *RecipeService) SearchRecipes(ctx context.Context, criteria search.Criteria, page, size int) (*search.Page[model.Recipe], error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if err := search.ValidatePage(page, size); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "searching recipes", "criteria", criteria.String(), "page", page, "size", size)
	filter := search.Compile(criteria)

	result, err := s.executor.Execute(ctx, filter, page, size)
	if err != nil {
		return nil, err
	}

	metrics.SearchResults.Observe(float64(result.TotalElements))
	s.logger.InfoContext(ctx, "found recipes matching the search criteria",
		"count", result.NumberOfElements, "total", result.TotalElements)
	return result, nil
}

// HealthCheck checks if the store is reachable
func (s *RecipeService) HealthCheck(ctx context.Context) error {
	return s.store.HealthCheck(ctx)
}

// load resolves id to the stored recipe. Ids that are not ObjectIDs cannot exist, so they are NotFound too.
func (s *RecipeService) load(ctx context.Context, id string) (*model.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		s.logger.ErrorContext(ctx, "recipe not found", "id", id)
		return nil, &NotFoundError{ID: id}
	}

	recipe, err := s.store.FindByID(ctx, oid)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.ErrorContext(ctx, "recipe not found", "id", id)
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	return recipe, nil
}
