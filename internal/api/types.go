package api

import "time"

// IngredientRequest is one ingredient line in a recipe payload
type IngredientRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"gte=0"`
	Unit     string `json:"unit"`
}

// StepRequest is one instruction in a recipe payload
type StepRequest struct {
	StepNumber  int    `json:"step_number" binding:"gte=0"`
	Description string `json:"description" binding:"required"`
}

// RecipeRequest is the body of create and update. Any id or created_at sent by
// the client is ignored.
type RecipeRequest struct {
	Name         string              `json:"name" binding:"required,min=5,max=30"`
	Vegetarian   *bool               `json:"vegetarian" binding:"required"`
	Servings     int                 `json:"servings" binding:"required,min=1,max=20"`
	Ingredients  []IngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
	Instructions []StepRequest       `json:"instructions" binding:"required,min=1,dive"`
}

// IngredientResponse is an ingredient line as returned by the API
type IngredientResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

// StepResponse is an instruction as returned by the API
type StepResponse struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
}

// RecipeResponse represents the response structure for recipe-related API endpoints
type RecipeResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Vegetarian   bool                 `json:"vegetarian"`
	Servings     int                  `json:"servings"`
	Ingredients  []IngredientResponse `json:"ingredients"`
	Instructions []StepResponse       `json:"instructions"`
	CreatedAt    time.Time            `json:"created_at"`
}
