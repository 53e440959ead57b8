package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// StructFields validates the validate tags on a request payload and returns
// a map of field name to failed rule, suitable for the error response body.
func StructFields(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldErrors[fieldError.Field()] = fieldError.Tag()
	}

	return fmt.Errorf("validation failed: %v", fieldErrors)
}
