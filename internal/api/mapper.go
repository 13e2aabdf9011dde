package api

import "github.com/pageza/recipe-harbor/backend/internal/model"

func toRecipe(req *RecipeRequest) *model.Recipe {
	r := &model.Recipe{
		Name:         req.Name,
		Servings:     req.Servings,
		Ingredients:  make([]model.Ingredient, 0, len(req.Ingredients)),
		Instructions: make([]model.Step, 0, len(req.Instructions)),
	}
	if req.Vegetarian != nil {
		r.Vegetarian = *req.Vegetarian
	}
	for _, ing := range req.Ingredients {
		r.Ingredients = append(r.Ingredients, model.Ingredient{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit})
	}
	for _, step := range req.Instructions {
		r.Instructions = append(r.Instructions, model.Step{StepNumber: step.StepNumber, Description: step.Description})
	}
	return r
}

func toResponse(r model.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:           r.ID.Hex(),
		Name:         r.Name,
		Vegetarian:   r.Vegetarian,
		Servings:     r.Servings,
		Ingredients:  make([]IngredientResponse, 0, len(r.Ingredients)),
		Instructions: make([]StepResponse, 0, len(r.Instructions)),
		CreatedAt:    r.CreatedAt,
	}
	for _, ing := range r.Ingredients {
		resp.Ingredients = append(resp.Ingredients, IngredientResponse{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit})
	}
	for _, step := range r.Instructions {
		resp.Instructions = append(resp.Instructions, StepResponse{StepNumber: step.StepNumber, Description: step.Description})
	}
	return resp
}
