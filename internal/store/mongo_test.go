package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/recipe-harbor/backend/internal/search"
	"github.com/pageza/recipe-harbor/backend/internal/testhelpers"
)

func TestMongoStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := testhelpers.SetupTestMongo(t)
	s := NewMongoStore(db.Collection("recipes"))
	ctx := context.Background()

	require.NoError(t, s.HealthCheck(ctx))
	stored := testhelpers.SeedRecipes(t, s, testhelpers.ScenarioRecipes())
	require.Len(t, stored, 6)

	t.Run("search scenario", func(t *testing.T) {
		servings := 2
		text := "Take this and do that"
		filter := search.Compile(search.Criteria{
			Servings:           &servings,
			IncludeIngredients: []string{"Onions"},
			InstructionsText:   &text,
		})

		page, err := search.NewExecutor(s).Execute(ctx, filter, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.TotalElements)
		require.Len(t, page.Content, 2)
		assert.Equal(t, "Onion Soup", page.Content[0].Name)
		assert.Equal(t, "Onion Tart", page.Content[1].Name)
	})

	t.Run("exclude", func(t *testing.T) {
		filter := search.Compile(search.Criteria{ExcludeIngredients: []string{"Onions", "Salmon"}})
		got, err := s.Find(ctx, filter, search.NewestFirst(), 0, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Steak Dinner", got[0].Name)
	})

	t.Run("save and delete", func(t *testing.T) {
		r := stored[5]
		r.Servings = 8
		_, err := s.Save(ctx, r)
		require.NoError(t, err)

		found, err := s.FindByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, found.Servings)
		assert.True(t, found.CreatedAt.Equal(r.CreatedAt))

		n, err := s.DeleteByFilter(ctx, ByID(r.ID))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = s.FindByID(ctx, r.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
