package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ExtractValidationErrors converte erros do binding do Gin (validator/v10)
// em uma lista de ValidationError para a resposta RFC 7807
func ExtractValidationErrors(err error) []ValidationError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	result := make([]ValidationError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		result = append(result, ValidationError{
			Field:   fieldErr.Field(),
			Message: validationMessage(fieldErr),
			Tag:     fieldErr.Tag(),
			Value:   fmt.Sprintf("%v", fieldErr.Value()),
		})
	}
	return result
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldErr.Param())
	case "uuid":
		return "must be a valid uuid"
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}
