package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-harbor/backend/internal/model"
)

// Inserter is satisfied by every store implementation
type Inserter interface {
	InsertOne(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
}

// NewRecipe builds a recipe with one unit of each ingredient and numbered steps
func NewRecipe(name string, servings int, vegetarian bool, ingredients []string, steps ...string) *model.Recipe {
	r := &model.Recipe{Name: name, Servings: servings, Vegetarian: vegetarian}
	for _, ing := range ingredients {
		r.Ingredients = append(r.Ingredients, model.Ingredient{Name: ing, Quantity: 1, Unit: "pc"})
	}
	for i, s := range steps {
		r.Instructions = append(r.Instructions, model.Step{StepNumber: i + 1, Description: s})
	}
	return r
}

// ScenarioRecipes is a fixed catalogue: four recipes serve two, three of those
// contain Onions and two of those three include the step "Take this and do that".
// Index order is also creation order.
func ScenarioRecipes() []*model.Recipe {
	return []*model.Recipe{
		NewRecipe("Onion Tart", 2, true, []string{"Onions", "Flour"}, "Take this and do that", "Bake"),
		NewRecipe("Onion Soup", 2, true, []string{"Onions", "Stock"}, "Chop", "take THIS and do that again"),
		NewRecipe("Onion Rings", 2, true, []string{"Onions", "Oil"}, "Fry"),
		NewRecipe("Salmon Plate", 2, false, []string{"Salmon"}, "Take this and do that"),
		NewRecipe("Family Curry", 6, true, []string{"Onions", "Rice"}, "Take this and do that"),
		NewRecipe("Steak Dinner", 4, false, []string{"Steak", "Potatoes"}, "Grill"),
	}
}

// SeedRecipes inserts recipes one hour apart starting 2024-01-01 UTC and returns the stored copies.
func SeedRecipes(t *testing.T, s Inserter, recipes []*model.Recipe) []*model.Recipe {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*model.Recipe, 0, len(recipes))
	for i, r := range recipes {
		r.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		saved, err := s.InsertOne(context.Background(), r)
		require.NoError(t, err)
		out = append(out, saved)
	}
	return out
}
