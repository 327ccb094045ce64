// internal/utils/validator.go
package utils

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("trimmed_min", validateTrimmedMin)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateTrimmedMin is min= measured in runes after trimming whitespace.
func validateTrimmedMin(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len([]rune(strings.TrimSpace(fl.Field().String()))) >= min
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

// FailedOn reports whether err is a validation error raised by tag.
func FailedOn(err error, tag string) bool {
	for _, e := range GetValidationErrors(err) {
		if e.Tag == tag {
			return true
		}
	}
	return false
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "trimmed_min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	default:
		return e.Field() + " is invalid"
	}
}
