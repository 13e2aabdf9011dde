package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipe-harbor/backend/internal/middleware"
	"github.com/pageza/recipe-harbor/backend/internal/search"
	"github.com/pageza/recipe-harbor/backend/internal/service"
)

// fieldMessages gives the client message for a failed rule, keyed by "field.tag"
var fieldMessages = map[string]string{
	"name.required":         "Name of the recipe is required",
	"name.min":              "The length name should be between 5 and 30",
	"name.max":              "The length name should be between 5 and 30",
	"vegetarian.required":   "Veg/Non-veg information is required",
	"servings.required":     "Number of servings must be a positive integer",
	"servings.min":          "Number of servings must be a positive integer",
	"servings.max":          "Number of servings cannot exceed 20",
	"ingredients.required":  "Ingredients of the recipe are required",
	"ingredients.min":       "At least one ingredient is required",
	"instructions.required": "Instructions for the recipe are required",
	"instructions.min":      "At least one instruction is required",
}

func init() {
	// report json names instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindingErrors converts a ShouldBindJSON failure into a field -> message map
func bindingErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["request"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		field := fieldPath(fe)
		if msg, ok := fieldMessages[field+"."+fe.Tag()]; ok {
			out[field] = msg
			continue
		}
		out[field] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
	return out
}

// fieldPath drops the top level struct name from the validator namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// respondError maps a service error to its status and body
func respondError(c *gin.Context, err error) {
	var nf *service.NotFoundError
	var verr *search.ValidationError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"ErrorMessage": nf.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{verr.Field: verr.Message})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"error", err,
			"request_id", c.GetString(middleware.RequestIDKey),
			"path", c.Request.URL.Path,
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, middleware.NewErrorResponse(c, err.Error()))
	}
}
