package utils

import (
	"errors"
	"fmt"
	"strings"

	apperrors "inventory-backend/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct checks s against its validate tags. Field failures are
// reported together in one validation error.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		messages = append(messages, describe(e))
	}
	return apperrors.NewValidationError(strings.Join(messages, "; "))
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "required_if":
		// Param is "<Field> <value>"
		return fmt.Sprintf("%s is required when %s", e.Field(), strings.Replace(e.Param(), " ", " is ", 1))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s failed %s", e.Field(), e.Tag())
	}
}
