package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"sidewalksafe/pkg/e"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	RegisterCustomValidations(validate)
}

// ValidateStruct runs the registered rules over a request struct. A
// "required" failure maps to e.ErrMissingField so callers can surface it as
// a submission-validation result rather than a generic 400.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return fmt.Errorf("%s: %w", fe.Field(), e.ErrMissingField)
			}
		}
		return fmt.Errorf("%s: %w", verrs[0].Field(), e.ErrInvalidInput)
	}
	return err
}
