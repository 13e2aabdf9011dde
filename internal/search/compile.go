package search

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/pageza/recipe-harbor/backend/internal/model"
)

// Filter is a MongoDB query document.
type Filter = bson.D

// clauseBuilder returns the clause for one criteria field, or false when the field is absent.
type clauseBuilder func(Criteria) (bson.E, bool)

// clauseBuilders run in this order; the compiled $and keeps it.
var clauseBuilders = []clauseBuilder{
	vegetarianClause,
	servingsClause,
	includeIngredientsClause,
	excludeIngredientsClause,
	instructionsTextClause,
}

// Compile turns criteria into a conjunction of the clauses for every set field.
// It has no side effects and never fails; validation happens before it runs.
func Compile(c Criteria) Filter {
	clauses := Clauses(c)
	switch len(clauses) {
	case 0:
		return Filter{}
	case 1:
		return Filter{clauses[0]}
	}

	and := make(bson.A, 0, len(clauses))
	for _, clause := range clauses {
		and = append(and, bson.D{clause})
	}
	return Filter{{Key: "$and", Value: and}}
}

// Clauses returns the individual clauses Compile combines
func Clauses(c Criteria) []bson.E {
	clauses := make([]bson.E, 0, len(clauseBuilders))
	for _, build := range clauseBuilders {
		if clause, ok := build(c); ok {
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

func vegetarianClause(c Criteria) (bson.E, bool) {
	if c.Vegetarian == nil {
		return bson.E{}, false
	}
	return bson.E{Key: model.FieldVegetarian, Value: *c.Vegetarian}, true
}

func servingsClause(c Criteria) (bson.E, bool) {
	if c.Servings == nil {
		return bson.E{}, false
	}
	return bson.E{Key: model.FieldServings, Value: *c.Servings}, true
}

// includeIngredientsClause requires every listed name to be present.
func includeIngredientsClause(c Criteria) (bson.E, bool) {
	if len(c.IncludeIngredients) == 0 {
		return bson.E{}, false
	}
	return bson.E{Key: model.FieldIngredientNames, Value: bson.D{{Key: "$all", Value: names(c.IncludeIngredients)}}}, true
}

// excludeIngredientsClause rejects recipes containing any listed name.
func excludeIngredientsClause(c Criteria) (bson.E, bool) {
	if len(c.ExcludeIngredients) == 0 {
		return bson.E{}, false
	}
	return bson.E{Key: model.FieldIngredientNames, Value: bson.D{{Key: "$nin", Value: names(c.ExcludeIngredients)}}}, true
}

// instructionsTextClause matches when at least one step description matches the text
// case-insensitively. The text is used as a regular expression without escaping.
func instructionsTextClause(c Criteria) (bson.E, bool) {
	if c.InstructionsText == nil {
		return bson.E{}, false
	}
	return bson.E{Key: model.FieldInstructions, Value: bson.D{{Key: "$elemMatch", Value: bson.D{
		{Key: model.FieldStepDescription, Value: bson.D{
			{Key: "$regex", Value: *c.InstructionsText},
			{Key: "$options", Value: "i"},
		}},
	}}}}, true
}

func names(in []string) bson.A {
	out := make(bson.A, 0, len(in))
	for _, n := range in {
		out = append(out, n)
	}
	return out
}
