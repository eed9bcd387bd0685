package customvalidator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	empNoRegex  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-/]{0,49}$`)
	digits6     = regexp.MustCompile(`^\d{6}$`)
	bloodGroups = map[string]struct{}{
		"A+": {}, "A-": {}, "B+": {}, "B-": {}, "AB+": {}, "AB-": {}, "O+": {}, "O-": {}, "NA": {},
	}
)

// RegisterCustomValidations registers the project's struct tag rules on v.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"empno":       isEmpNo,
		"blood_group": isBloodGroup,
		"digits6":     isSixDigits,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isEmpNo(fl validator.FieldLevel) bool {
	return empNoRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func isBloodGroup(fl validator.FieldLevel) bool {
	_, ok := bloodGroups[strings.ToUpper(strings.TrimSpace(fl.Field().String()))]
	return ok
}

func isSixDigits(fl validator.FieldLevel) bool {
	return digits6.MatchString(fl.Field().String())
}
