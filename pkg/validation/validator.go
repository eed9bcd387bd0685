package validation

import (
	"employee-system/pkg/customvalidator"

	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Engine exposes the underlying validator for callers outside the HTTP layer.
func (cv *CustomValidator) Engine() *validator.Validate {
	return cv.validator
}

// New builds the validator with null type support and the custom rules.
// It panics when a rule cannot be registered: the server must not start without them.
func New() *CustomValidator {
	v := validator.New()
	registerNullTypes(v)

	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		panic("failed to register validation rules: " + err.Error())
	}
	return &CustomValidator{validator: v}
}
