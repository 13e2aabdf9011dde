package search

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Criteria describes a recipe search. Nil fields are not applied.
// Empty ingredient lists are treated the same as nil.
type Criteria struct {
	Vegetarian         *bool    `json:"vegetarian,omitempty"`
	Servings           *int     `json:"servings,omitempty"`
	IncludeIngredients []string `json:"includeIngredients,omitempty"`
	ExcludeIngredients []string `json:"excludeIngredients,omitempty"`
	InstructionsText   *string  `json:"instructionsText,omitempty"`
}

// ValidationError is returned for search input that must not reach the store
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const criteriaObject = "searchCriteria"

// MsgAtLeastOneField is reported when no criteria field is set.
const MsgAtLeastOneField = "At least one field must be specified or is misspelled."

// IsEmpty reports whether no field would contribute a filter clause
func (c Criteria) IsEmpty() bool {
	return c.Vegetarian == nil &&
		c.Servings == nil &&
		len(c.IncludeIngredients) == 0 &&
		len(c.ExcludeIngredients) == 0 &&
		c.InstructionsText == nil
}

// Validate enforces the at-least-one-field rule.
func (c Criteria) Validate() error {
	if c.IsEmpty() {
		return &ValidationError{Field: criteriaObject, Message: MsgAtLeastOneField}
	}
	return nil
}

// ValidatePage checks the requested window before any store round trip.
func ValidatePage(pageNumber, pageSize int) error {
	if pageNumber < 0 {
		return &ValidationError{Field: "page", Message: "page number must not be negative"}
	}
	if pageSize <= 0 {
		return &ValidationError{Field: "size", Message: "page size must be greater than zero"}
	}
	// pageNumber*pageSize is the store skip and must fit in an int64
	if int64(pageNumber) > math.MaxInt64/int64(pageSize) {
		return &ValidationError{Field: "page", Message: "page number is out of range for the page size"}
	}
	return nil
}

// String renders the set fields for log lines
func (c Criteria) String() string {
	var parts []string
	if c.Vegetarian != nil {
		parts = append(parts, "vegetarian="+strconv.FormatBool(*c.Vegetarian))
	}
	if c.Servings != nil {
		parts = append(parts, "servings="+strconv.Itoa(*c.Servings))
	}
	if len(c.IncludeIngredients) > 0 {
		parts = append(parts, "includeIngredients=["+strings.Join(c.IncludeIngredients, ",")+"]")
	}
	if len(c.ExcludeIngredients) > 0 {
		parts = append(parts, "excludeIngredients=["+strings.Join(c.ExcludeIngredients, ",")+"]")
	}
	if c.InstructionsText != nil {
		parts = append(parts, "instructionsText="+strconv.Quote(*c.InstructionsText))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
