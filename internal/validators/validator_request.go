package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bcryptMaxBytes is the longest input bcrypt hashes without truncation.
const bcryptMaxBytes = 72

// RequestValidator implements [Validator] for request DTOs declared with
// `validate` struct tags.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator constructs a validator with the custom "bcryptlen" rule
// registered and JSON field names used in messages.
func NewRequestValidator() Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	// registration only fails for empty tags or nil functions
	_ = validate.RegisterValidation("bcryptlen", validateBcryptLength)

	return &RequestValidator{validate: validate}
}

// Validate checks value against its struct tags. When fields are given, only
// those (Go field names) are checked.
func (v *RequestValidator) Validate(ctx context.Context, value any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, value, fields...)
	} else {
		err = v.validate.StructCtx(ctx, value)
	}
	if err == nil {
		return nil
	}

	var invalidErr *validator.InvalidValidationError
	if errors.As(err, &invalidErr) {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, formatFieldError(fieldError))
	}

	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(messages, "; "))
}

// validateBcryptLength limits strings to what bcrypt can hash: 72 bytes,
// not runes.
func validateBcryptLength(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= bcryptMaxBytes
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "bcryptlen":
		return fmt.Sprintf("%s must be at most %d bytes", field, bcryptMaxBytes)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
