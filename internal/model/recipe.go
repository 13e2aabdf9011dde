package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document field names shared by the store, the search compiler and the index migrations.
const (
	FieldID              = "_id"
	FieldName            = "name"
	FieldVegetarian      = "vegetarian"
	FieldServings        = "servings"
	FieldIngredients     = "ingredients"
	FieldIngredientNames = "ingredients.name"
	FieldInstructions    = "instructions"
	FieldStepDescription = "description"
	FieldCreatedAt       = "created_at"
)

// Ingredient is a single line of a recipe's ingredient list
type Ingredient struct {
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
	Unit     string `bson:"unit" json:"unit"`
}

// Step is one numbered instruction
type Step struct {
	StepNumber  int    `bson:"step_number" json:"step_number"`
	Description string `bson:"description" json:"description"`
}

// Recipe is the persisted recipe document.
// ID is zero until the store assigns one on insert.
type Recipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Vegetarian   bool               `bson:"vegetarian" json:"vegetarian"`
	Servings     int                `bson:"servings" json:"servings"`
	Ingredients  []Ingredient       `bson:"ingredients" json:"ingredients"`
	Instructions []Step             `bson:"instructions" json:"instructions"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// IsPersisted reports whether the recipe carries a store-assigned identity
func (r *Recipe) IsPersisted() bool {
	return !r.ID.IsZero()
}

// IngredientNames returns the ingredient names in list order
func (r *Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}
	return names
}
