package utils

import (
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags on v and reports the first failing
// field as a validation error.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) && len(validationErr) > 0 {
		first := validationErr[0]
		field := toSnake(first.Field())
		switch first.Tag() {
		case "required":
			return apperror.Validation(fmt.Sprintf("%s is required", field))
		case "email":
			return apperror.Validation(fmt.Sprintf("%s must be a valid email", field))
		case "min", "gte":
			return apperror.Validation(fmt.Sprintf("%s must be at least %s", field, first.Param()))
		case "max", "lte":
			return apperror.Validation(fmt.Sprintf("%s must be at most %s", field, first.Param()))
		case "oneof":
			return apperror.Validation(fmt.Sprintf("%s must be one of [%s]", field, first.Param()))
		}
		return apperror.Validation(fmt.Sprintf("%s is invalid", field))
	}

	return apperror.Validation(err.Error())
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
