package service

import (
	"context"

	"github.com/pageza/recipe-harbor/backend/internal/model"
	"github.com/pageza/recipe-harbor/backend/internal/search"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, recipe *model.Recipe) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	SearchRecipes(ctx context.Context, criteria search.Criteria, page, size int) (*search.Page[model.Recipe], error)
	HealthCheck(ctx context.Context) error
}
