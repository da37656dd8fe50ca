package task

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ErrInvalidTitle is wrapped by every title validation failure.
var ErrInvalidTitle = errors.New("invalid title")

// ValidationError describes why an input was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTitle
}

type titleInput struct {
	Title string `validate:"required,notblank"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ValidateTitle checks that title is non-empty and not only whitespace.
// The title itself is stored untouched; trimming only applies to the check.
func ValidateTitle(title string) error {
	err := validate.Struct(titleInput{Title: title})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Tag() {
		case "required":
			return &ValidationError{Field: "title", Message: "must not be empty"}
		case "notblank":
			return &ValidationError{Field: "title", Message: "must not be blank"}
		}
	}
	return &ValidationError{Field: "title", Message: err.Error()}
}
