package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jestfeed/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate(req).
type RequestValidator struct {
	validate *validator.Validate
}

// NewValidator creates a RequestValidator with the domain's custom tags
// registered.
func NewValidator() *RequestValidator {
	v := validator.New()

	// humortag: one of the fixed humor style labels
	_ = v.RegisterValidation("humortag", func(fl validator.FieldLevel) bool {
		tag := fl.Field().String()
		for _, t := range models.HumorTags {
			if t == tag {
				return true
			}
		}
		return false
	})

	// reactiontype: one of the fixed reaction labels
	_ = v.RegisterValidation("reactiontype", func(fl validator.FieldLevel) bool {
		return models.IsValidReactionType(fl.Field().String())
	})

	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator. Validation failures map to 400 before
// any mutation is attempted.
func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
